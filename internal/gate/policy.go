package gate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Action is the terminal verdict a policy or a single rule can produce.
type Action string

const (
	ActionAllow Action = "allow"
	ActionDeny  Action = "deny"
)

// RuleName identifies one of the built-in predicate families a Policy can
// enable. RuleOrder controls the sequence rules are checked in; a rule not
// present in RuleOrder is not evaluated even if its threshold is set.
type RuleName string

const (
	RuleMinConfidence RuleName = "min_confidence"
	RuleCostCeiling   RuleName = "cost_ceiling"
	RuleRequireFields RuleName = "require_fields"
	RuleNoSecrets     RuleName = "no_secrets"
)

// defaultRuleOrder is used when a Policy does not declare one explicitly.
var defaultRuleOrder = []RuleName{RuleMinConfidence, RuleCostCeiling, RuleRequireFields, RuleNoSecrets}

// Policy is a resolved, immutable value object: thresholds, structural
// predicates, a declared rule order, and a default action. A Policy is
// produced once (by LoadPolicy or by a caller constructing it directly) and
// never mutated by Evaluate.
type Policy struct {
	Version string `yaml:"version"`

	// MinConfidence denies when the evaluated confidence falls below this
	// value. Nil disables the rule regardless of RuleOrder.
	MinConfidence *float64 `yaml:"min_confidence,omitempty"`

	// CostCeiling denies when the evaluated cost exceeds this value. Nil
	// disables the rule.
	CostCeiling *float64 `yaml:"cost_ceiling,omitempty"`

	// RequireFields lists field names that must be present and non-empty in
	// Input.Fields. Empty disables the rule.
	RequireFields []string `yaml:"require_fields,omitempty"`

	// NoSecrets, when true, denies if any string value in Input.Fields looks
	// like a credential or key material.
	NoSecrets bool `yaml:"no_secrets,omitempty"`

	// RuleOrder declares the sequence rules are checked in. Defaults to
	// defaultRuleOrder when empty.
	RuleOrder []RuleName `yaml:"rule_order,omitempty"`

	// DefaultAction decides the outcome when every enabled rule passes.
	DefaultAction Action `yaml:"default_action"`
}

// order returns p.RuleOrder, or defaultRuleOrder if p did not declare one.
func (p Policy) order() []RuleName {
	if len(p.RuleOrder) > 0 {
		return p.RuleOrder
	}
	return defaultRuleOrder
}

// LoadPolicy reads and parses a YAML policy document from path. It performs
// no semantic validation beyond what Evaluate itself tolerates (a nil
// threshold simply disables that rule).
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("gate.LoadPolicy: read %q: %w", path, err)
	}
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("gate.LoadPolicy: parse %q: %w", path, err)
	}
	if p.DefaultAction == "" {
		p.DefaultAction = ActionDeny
	}
	return p, nil
}
