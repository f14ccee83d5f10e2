// Package configio loads AgentTemplate and UserAgentConfig values from YAML
// files or decoded maps, in two passes: a structural decode into the target
// struct, then a strict pass that reports any input key with no matching
// struct field. This is a loader-level concern distinct from the runtime's
// JsonSchema validation, which governs skill input/output, not config shape.
package configio

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/agenthub/runtime/pkg/compiler"
	"github.com/agenthub/runtime/pkg/memory"
	"github.com/agenthub/runtime/pkg/skill"
	"github.com/agenthub/runtime/pkg/template"
)

// UnknownFieldError reports one input key with no matching destination
// field, optionally with a best-effort suggestion.
type UnknownFieldError struct {
	Field      string
	Suggestion string
}

func (e *UnknownFieldError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown field %q (did you mean %q?)", e.Field, e.Suggestion)
	}
	return fmt.Sprintf("unknown field %q", e.Field)
}

// StrictError aggregates every unknown field found in one decode pass.
type StrictError struct {
	Fields []*UnknownFieldError
}

func (e *StrictError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return "config: " + strings.Join(msgs, "; ")
}

// rawTemplateFile is the on-disk shape of a template YAML document.
type rawTemplateFile struct {
	Templates []rawTemplate `yaml:"templates" mapstructure:"templates"`
}

type rawTemplate struct {
	ID                string         `yaml:"id" mapstructure:"id"`
	AllowedSkills     []string       `yaml:"allowed_skills" mapstructure:"allowed_skills"`
	DefaultMemoryTier string         `yaml:"default_memory_tier" mapstructure:"default_memory_tier"`
	ResponseMode      string         `yaml:"response_mode" mapstructure:"response_mode"`
	MaxBudget         int            `yaml:"max_budget" mapstructure:"max_budget"`
	SystemInstruction string         `yaml:"system_instruction" mapstructure:"system_instruction"`
	OutputSchema      map[string]any `yaml:"output_schema" mapstructure:"output_schema"`
}

// LoadTemplates reads a YAML document of agent templates from path,
// validating it strictly against rawTemplateFile's shape before converting
// each entry to a template.AgentTemplate.
func LoadTemplates(path string) ([]template.AgentTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	var parsed rawTemplateFile
	if err := DecodeStrict(raw, &parsed); err != nil {
		return nil, err
	}

	out := make([]template.AgentTemplate, 0, len(parsed.Templates))
	for _, t := range parsed.Templates {
		out = append(out, template.AgentTemplate{
			ID:                t.ID,
			AllowedSkills:     t.AllowedSkills,
			DefaultMemoryTier: memory.Tier(t.DefaultMemoryTier),
			ResponseMode:      skill.ResponseMode(t.ResponseMode),
			MaxBudget:         t.MaxBudget,
			SystemInstruction: t.SystemInstruction,
			OutputSchema:      t.OutputSchema,
		})
	}
	return out, nil
}

// rawAgentConfig is the on-disk shape of one UserAgentConfig.
type rawAgentConfig struct {
	Name               string        `yaml:"name" mapstructure:"name"`
	BaseTemplate       string        `yaml:"base_template" mapstructure:"base_template"`
	SelectedSkills     []string      `yaml:"selected_skills" mapstructure:"selected_skills"`
	MemoryTierOverride string        `yaml:"memory_tier_override" mapstructure:"memory_tier_override"`
	BudgetLimit        *int          `yaml:"budget_limit" mapstructure:"budget_limit"`
	SkillDependencies  []rawSkillDep `yaml:"skill_dependencies" mapstructure:"skill_dependencies"`
}

type rawSkillDep struct {
	SkillID   string   `yaml:"skill_id" mapstructure:"skill_id"`
	DependsOn string   `yaml:"depends_on" mapstructure:"depends_on"`
	Fields    []string `yaml:"fields" mapstructure:"fields"`
}

// LoadAgentConfig reads one UserAgentConfig from a YAML file at path.
func LoadAgentConfig(path string) (compiler.UserAgentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return compiler.UserAgentConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return compiler.UserAgentConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	var parsed rawAgentConfig
	if err := DecodeStrict(raw, &parsed); err != nil {
		return compiler.UserAgentConfig{}, err
	}

	deps := make([]compiler.SkillDep, 0, len(parsed.SkillDependencies))
	for _, d := range parsed.SkillDependencies {
		deps = append(deps, compiler.SkillDep{SkillID: d.SkillID, DependsOn: d.DependsOn, Fields: d.Fields})
	}

	cfg := compiler.UserAgentConfig{
		Name:              parsed.Name,
		BaseTemplate:      parsed.BaseTemplate,
		SelectedSkills:    parsed.SelectedSkills,
		BudgetLimit:       parsed.BudgetLimit,
		SkillDependencies: deps,
	}
	if parsed.MemoryTierOverride != "" {
		tier := memory.Tier(parsed.MemoryTierOverride)
		cfg.MemoryTierOverride = &tier
	}
	return cfg, nil
}

// DecodeStrict decodes raw into dst via mapstructure, then reports any
// top-level or nested map key with no matching field on dst as a
// StrictError. dst must be a pointer.
func DecodeStrict(raw map[string]any, dst any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("config: build decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return toStrictError(err, reflect.TypeOf(dst))
	}
	return nil
}

func toStrictError(err error, destType reflect.Type) error {
	const marker = "invalid keys: "
	validNames := fieldNames(destType, make(map[reflect.Type]bool))

	strictErr := &StrictError{}
	for _, line := range strings.Split(err.Error(), "\n") {
		idx := strings.Index(line, marker)
		if idx == -1 {
			continue
		}
		for _, key := range strings.Split(line[idx+len(marker):], ",") {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			strictErr.Fields = append(strictErr.Fields, &UnknownFieldError{
				Field:      key,
				Suggestion: closestMatch(leafSegment(key), validNames),
			})
		}
	}
	if len(strictErr.Fields) == 0 {
		return fmt.Errorf("config: %w", err)
	}
	return strictErr
}

// fieldNames collects every mapstructure tag name reachable from t, walking
// into nested structs, slices, and pointers so a misspelled nested field
// (e.g. inside a slice of structs) can still be matched against its sibling
// names. seen guards against self-referential types.
func fieldNames(t reflect.Type, seen map[reflect.Type]bool) []string {
	for t != nil && (t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice || t.Kind() == reflect.Array) {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct || seen[t] {
		return nil
	}
	seen[t] = true

	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		name := strings.Split(tag, ",")[0]
		if name != "" && name != "-" {
			names = append(names, name)
		}
		names = append(names, fieldNames(field.Type, seen)...)
	}
	return names
}

// leafSegment returns the last path component of a dotted, possibly
// index-suffixed mapstructure key such as "templates[0].max_budgt".
func leafSegment(key string) string {
	if i := strings.LastIndexByte(key, '.'); i != -1 {
		key = key[i+1:]
	}
	if i := strings.IndexByte(key, '['); i != -1 {
		key = key[:i]
	}
	return key
}

func closestMatch(typo string, candidates []string) string {
	best := ""
	bestDistance := -1
	for _, c := range candidates {
		d := levenshtein(typo, c)
		if bestDistance == -1 || d < bestDistance {
			best, bestDistance = c, d
		}
	}
	if bestDistance >= 0 && bestDistance <= 3 {
		return best
	}
	return ""
}

func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr := make([]int, len(b)+1)
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev = curr
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
