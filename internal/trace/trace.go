package trace

import (
	"decisionengine/internal/canon"
	"decisionengine/internal/decision"
	"decisionengine/internal/fingerprint"
)

// Input carries everything Build needs to assemble a sealed decision.Trace.
// It is built by the kernel immediately after scoring and ranking; nothing
// in this package re-derives scores or re-runs an algorithm.
type Input struct {
	Spec              decision.DecisionSpec
	Params            decision.AlgorithmParams
	Algorithm         decision.Algorithm
	Scores            map[string]float64
	RecommendedAction string
	Ranking           []string
}

// Build composes Input into a decision.Trace whose Fingerprint covers
// exactly the fields the protocol specifies: the algorithm tag, the input
// shape, the parameters relevant to that algorithm, and the result core.
// Everything else about a run (run id, timestamps, engine metadata) lives
// outside the trace and is never hashed.
func Build(in Input) (decision.Trace, error) {
	subject := map[string]any{
		"algorithm": string(in.Algorithm),
		"actions":   toAnySlice(in.Spec.Actions),
		"states":    toAnySlice(in.Spec.States),
		"outcomes":  outcomesAsAny(in.Spec.Outcomes),
		"params":    relevantParams(in.Algorithm, in.Spec, in.Params),
		"result": map[string]any{
			"recommended_action": in.RecommendedAction,
			"ranking":            toAnySlice(in.Ranking),
			"scores":             scoresAsAny(in.Scores),
		},
	}

	canonical, err := canon.Canonicalize(subject)
	if err != nil {
		return decision.Trace{}, err
	}

	return decision.Trace{
		Algorithm:   in.Algorithm,
		Scores:      in.Scores,
		Fingerprint: string(fingerprint.Compute(canonical)),
	}, nil
}

func outcomesAsAny(outcomes map[string]map[string]float64) map[string]any {
	out := make(map[string]any, len(outcomes))
	for action, row := range outcomes {
		out[action] = scoresAsAny(row)
	}
	return out
}

func scoresAsAny(scores map[string]float64) map[string]any {
	out := make(map[string]any, len(scores))
	for k, v := range scores {
		out[k] = v
	}
	return out
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// relevantParams restricts AlgorithmParams to the fields that actually
// influence the selected algorithm, per the fingerprint scope contract. Two
// runs that differ only in an irrelevant parameter (e.g. a softmax
// temperature supplied alongside a maximin run) must fingerprint identically.
func relevantParams(algo decision.Algorithm, spec decision.DecisionSpec, params decision.AlgorithmParams) map[string]any {
	out := map[string]any{"strict": spec.Strict}
	switch algo {
	case decision.AlgorithmWeightedSum, decision.AlgorithmStarr:
		if len(params.Weights) > 0 {
			out["weights"] = scoresAsAny(params.Weights)
		}
	case decision.AlgorithmSoftmax:
		if len(params.Weights) > 0 {
			out["weights"] = scoresAsAny(params.Weights)
		}
		out["temperature"] = params.Temperature
	case decision.AlgorithmHurwicz:
		out["optimism"] = params.Optimism
	case decision.AlgorithmHodgesLehmann:
		out["confidence"] = params.Confidence
	case decision.AlgorithmBrownRobinson:
		out["iterations"] = float64(params.Iterations)
	}
	return out
}
