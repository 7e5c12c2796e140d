package decision

// Algorithm is the closed set of decision-theoretic criteria the kernel supports.
//
// Adding a criterion is a type-level change: extend this set and the kernel's
// dispatch switch, never a runtime string lookup in the hot evaluation path.
type Algorithm string

const (
	AlgorithmMinimaxRegret Algorithm = "minimax_regret"
	AlgorithmSavage        Algorithm = "savage" // alias of minimax_regret
	AlgorithmMaximin       Algorithm = "maximin"
	AlgorithmWald          Algorithm = "wald" // alias of maximin
	AlgorithmWeightedSum   Algorithm = "weighted_sum"
	AlgorithmSoftmax       Algorithm = "softmax"
	AlgorithmHurwicz       Algorithm = "hurwicz"
	AlgorithmLaplace       Algorithm = "laplace"
	AlgorithmStarr         Algorithm = "starr"
	AlgorithmHodgesLehmann Algorithm = "hodges_lehmann"
	AlgorithmBrownRobinson Algorithm = "brown_robinson"
	AlgorithmNash          Algorithm = "nash"
	AlgorithmPareto        Algorithm = "pareto"
)

// Canonical returns the tag used for dispatch, collapsing documented aliases
// onto their primary criterion. The original tag (not the canonical one) is
// what travels in the spec and the fingerprint; Canonical is for routing only.
func (a Algorithm) Canonical() Algorithm {
	switch a {
	case AlgorithmSavage:
		return AlgorithmMinimaxRegret
	case AlgorithmWald:
		return AlgorithmMaximin
	default:
		return a
	}
}

// Known reports whether a is a member of the closed algorithm set.
func (a Algorithm) Known() bool {
	switch a {
	case AlgorithmMinimaxRegret, AlgorithmSavage, AlgorithmMaximin, AlgorithmWald,
		AlgorithmWeightedSum, AlgorithmSoftmax, AlgorithmHurwicz, AlgorithmLaplace,
		AlgorithmStarr, AlgorithmHodgesLehmann, AlgorithmBrownRobinson, AlgorithmNash,
		AlgorithmPareto:
		return true
	default:
		return false
	}
}

// AlgorithmParams is the algorithm-specific configuration for one evaluation.
//
// Only the fields relevant to the selected Algorithm are consulted; unused
// fields are ignored by the kernel but still travel with the spec so that a
// caller can reuse one params object across a sweep of algorithms.
//
// Invariants (enforced by the kernel, not by this type):
//   - Weights: state -> real in [0,1]. Strict mode requires the sum to equal
//     1 within 1e-9; non-strict mode normalizes by the sum unless it is zero.
//   - Temperature must be > 0 (softmax).
//   - Optimism must be in [0,1] (hurwicz).
//   - Confidence must be in [0,1] (hodges_lehmann).
//   - Iterations must be > 0 (brown_robinson).
type AlgorithmParams struct {
	Weights     map[string]float64 `json:"weights,omitempty"`
	Temperature float64            `json:"temperature,omitempty"`
	Optimism    float64            `json:"optimism,omitempty"`
	Confidence  float64            `json:"confidence,omitempty"`
	Iterations  int                `json:"iterations,omitempty"`
}

// Clone returns a deep copy so the kernel can normalize weights without
// mutating the caller's params (the spec is consumed by value; never mutated).
func (p AlgorithmParams) Clone() AlgorithmParams {
	out := p
	if p.Weights != nil {
		out.Weights = make(map[string]float64, len(p.Weights))
		for k, v := range p.Weights {
			out.Weights[k] = v
		}
	}
	return out
}

// DecisionSpec is the caller-owned description of one evaluation.
//
// A DecisionSpec is created by the caller and consumed by the kernel by
// value; the kernel never mutates it.
type DecisionSpec struct {
	// Actions is the ordered sequence of distinct non-empty candidate identifiers.
	Actions []string `json:"actions"`

	// States is the ordered sequence of distinct non-empty world identifiers.
	States []string `json:"states"`

	// Outcomes maps action -> state -> utility. Missing entries are an error
	// in strict mode and treated as 0 in non-strict mode.
	Outcomes map[string]map[string]float64 `json:"outcomes"`

	// Algorithm selects the decision criterion from the closed set above.
	Algorithm Algorithm `json:"algorithm"`

	// Params is the algorithm-specific configuration.
	Params AlgorithmParams `json:"params"`

	// Strict selects exact input validation over corrective normalization.
	Strict bool `json:"strict"`
}

// Clone returns a deep copy of the spec.
func (s DecisionSpec) Clone() DecisionSpec {
	out := s
	out.Actions = append([]string(nil), s.Actions...)
	out.States = append([]string(nil), s.States...)
	out.Params = s.Params.Clone()
	if s.Outcomes != nil {
		out.Outcomes = make(map[string]map[string]float64, len(s.Outcomes))
		for a, row := range s.Outcomes {
			cp := make(map[string]float64, len(row))
			for st, v := range row {
				cp[st] = v
			}
			out.Outcomes[a] = cp
		}
	}
	return out
}

// DecisionResult is the output of one kernel evaluation, owned by the caller
// after it is returned.
type DecisionResult struct {
	// RecommendedAction is one identifier from Actions; it always equals Ranking[0].
	RecommendedAction string `json:"recommended_action"`

	// Ranking is a permutation of Actions, best to worst under the selected criterion.
	Ranking []string `json:"ranking"`

	// Trace binds the algorithm, its scores, and the fingerprint.
	Trace Trace `json:"trace"`
}

// Trace is the immutable record of how a DecisionResult was produced.
//
// Scores is algorithm-specific (e.g. regrets for minimax_regret, empirical
// frequencies for brown_robinson) and is part of the fingerprint's result_core;
// Fingerprint itself is computed last, over the sealed trace.
type Trace struct {
	Algorithm   Algorithm          `json:"algorithm"`
	Scores      map[string]float64 `json:"scores"`
	Fingerprint string             `json:"fingerprint"`
}
