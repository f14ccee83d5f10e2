package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimatorWithinBudget(t *testing.T) {
	est := EstimateCall(100, 50, 30, 20, 200)
	assert.Equal(t, 400, est.Total)
	assert.Empty(t, SuggestDowngrades(est, 500))
}

func TestEstimatorOverBudget(t *testing.T) {
	est := EstimateCall(100, 50, 200, 50, 500)
	suggestions := SuggestDowngrades(est, 400)
	assert.NotEmpty(t, suggestions)
	last := suggestions[len(suggestions)-1]
	assert.Equal(t, DowngradeModel, last.Kind)
}

func TestEstimatorTrimsMemoryFirst(t *testing.T) {
	est := EstimateCall(0, 0, 200, 0, 0)
	suggestions := SuggestDowngrades(est, 50)
	assert.Equal(t, TrimMemory, suggestions[0].Kind)
	assert.Equal(t, 50, suggestions[0].Target)
}

func TestSaturatingSubNeverNegative(t *testing.T) {
	assert.Equal(t, 0, saturatingSub(10, 50))
	assert.Equal(t, 40, saturatingSub(50, 10))
}
