package gate

import "decisionengine/internal/decision"

// DenyReason is a stable, machine-readable explanation for a deny verdict.
type DenyReason string

const (
	ReasonBelowMinConfidence DenyReason = "below_min_confidence"
	ReasonExceedsCostCeiling DenyReason = "exceeds_cost_ceiling"
	ReasonMissingField       DenyReason = "missing_required_field"
	ReasonSecretDetected     DenyReason = "secret_detected"
)

// Input is everything Evaluate reads. Result is the kernel's output; the
// remaining fields are scalars and structural data the caller derives from
// its own domain (the engine contract has no notion of "confidence" or
// "cost" as first-class fields, so the gate does not reach into the kernel
// to compute them).
type Input struct {
	Result decision.DecisionResult

	// Confidence is a caller-supplied scalar, typically derived from
	// Result.Trace.Scores (e.g. the recommended action's margin over the
	// runner-up), checked against Policy.MinConfidence.
	Confidence float64

	// Cost is a caller-supplied scalar for the recommended action, checked
	// against Policy.CostCeiling.
	Cost float64

	// Fields holds arbitrary structural data (e.g. a marshaled snapshot
	// envelope) that RequireFields and NoSecrets inspect. Evaluate never
	// writes to this map.
	Fields map[string]any
}

// Decision is the gate's verdict. Allow and Reasons are never both set
// inconsistently: Allow is false iff Reasons is non-empty.
type Decision struct {
	Allow   bool
	Reasons []DenyReason
}

// Evaluate applies policy to in and returns a verdict. Rules run in
// policy.order(); the first one that fails terminates evaluation with a
// single-reason deny. If every enabled rule passes, policy.DefaultAction
// decides and Reasons is empty either way.
//
// Evaluate never mutates in.Result or in.Fields.
func Evaluate(policy Policy, in Input) Decision {
	for _, name := range policy.order() {
		if reason, failed := checkRule(name, policy, in); failed {
			return Decision{Allow: false, Reasons: []DenyReason{reason}}
		}
	}
	return Decision{Allow: policy.DefaultAction == ActionAllow}
}

func checkRule(name RuleName, policy Policy, in Input) (DenyReason, bool) {
	switch name {
	case RuleMinConfidence:
		if policy.MinConfidence != nil && in.Confidence < *policy.MinConfidence {
			return ReasonBelowMinConfidence, true
		}
	case RuleCostCeiling:
		if policy.CostCeiling != nil && in.Cost > *policy.CostCeiling {
			return ReasonExceedsCostCeiling, true
		}
	case RuleRequireFields:
		if missing := firstMissingField(policy.RequireFields, in.Fields); missing != "" {
			return ReasonMissingField, true
		}
	case RuleNoSecrets:
		if policy.NoSecrets && containsSecret(in.Fields) {
			return ReasonSecretDetected, true
		}
	}
	return "", false
}

func firstMissingField(required []string, fields map[string]any) string {
	for _, name := range required {
		v, ok := fields[name]
		if !ok {
			return name
		}
		if s, isString := v.(string); isString && s == "" {
			return name
		}
	}
	return ""
}
