package kernel

import (
	"math"

	"decisionengine/internal/decision"
	"decisionengine/internal/trace"
)

// Evaluate runs spec.Algorithm over spec and params and returns a sealed
// DecisionResult whose Trace carries a fingerprint over the fields defined
// by the trace builder. seed is only consumed by algorithms that are not
// seed-free; today none of the closed algorithm set requires one, so seed
// is accepted for forward compatibility and otherwise ignored.
func Evaluate(spec decision.DecisionSpec, params decision.AlgorithmParams, seed []byte) (decision.DecisionResult, error) {
	algo := spec.Algorithm.Canonical()

	if err := validateParams(algo, params); err != nil {
		return decision.DecisionResult{}, err
	}

	m, err := buildMatrix(spec, params)
	if err != nil {
		return decision.DecisionResult{}, err
	}

	scores, ranking, err := dispatch(m, algo, params)
	if err != nil {
		return decision.DecisionResult{}, err
	}

	recommended := ranking[0]

	tr, err := trace.Build(trace.Input{
		Spec:              spec,
		Params:            params,
		Algorithm:         algo,
		Scores:            scores,
		RecommendedAction: recommended,
		Ranking:           ranking,
	})
	if err != nil {
		return decision.DecisionResult{}, err
	}

	return decision.DecisionResult{
		RecommendedAction: recommended,
		Ranking:           ranking,
		Trace:             tr,
	}, nil
}

func dispatch(m *matrix, algo decision.Algorithm, params decision.AlgorithmParams) (scores map[string]float64, ranking []string, err error) {
	switch algo {
	case decision.AlgorithmMinimaxRegret:
		scores = m.minimaxRegret()
		ranking = m.rankByScore(scores, false)
	case decision.AlgorithmMaximin:
		scores = m.maximin()
		ranking = m.rankByScore(scores, true)
	case decision.AlgorithmWeightedSum:
		scores = m.weightedSum()
		ranking = m.rankByScore(scores, true)
	case decision.AlgorithmSoftmax:
		scores = m.softmax(params.Temperature)
		ranking = m.rankByScore(scores, true)
	case decision.AlgorithmHurwicz:
		scores = m.hurwicz(params.Optimism)
		ranking = m.rankByScore(scores, true)
	case decision.AlgorithmLaplace:
		scores = m.laplace()
		ranking = m.rankByScore(scores, true)
	case decision.AlgorithmStarr:
		scores = m.starr()
		ranking = m.rankByScore(scores, false)
	case decision.AlgorithmHodgesLehmann:
		scores = m.hodgesLehmann(params.Confidence)
		ranking = m.rankByScore(scores, true)
	case decision.AlgorithmBrownRobinson:
		result := m.brownRobinson(params.Iterations)
		scores = result.frequencies
		ranking = m.rankByScore(scores, true)
	case decision.AlgorithmNash:
		var saddle string
		scores, saddle = m.nash()
		ranking = m.rankByScore(scores, true)
		if saddle != "" {
			ranking = moveToFront(ranking, saddle)
		}
	case decision.AlgorithmPareto:
		frontier, dominated, dominance := m.paretoFrontier()
		scores = dominance
		ranking = append(append([]string{}, frontier...), dominated...)
	default:
		return nil, nil, decision.NewAlgorithmError("kernel.unreachable_dispatch", "algorithm %q reached dispatch without a case", algo)
	}
	return scores, ranking, nil
}

func moveToFront(ranking []string, id string) []string {
	out := make([]string, 0, len(ranking))
	out = append(out, id)
	for _, a := range ranking {
		if a != id {
			out = append(out, a)
		}
	}
	return out
}

// validateParams enforces the per-algorithm parameter invariants from the
// data model unconditionally; these are not relaxed in non-strict mode
// because, unlike outcome gaps or weight normalization, there is no sensible
// corrective default for e.g. a non-positive softmax temperature.
func validateParams(algo decision.Algorithm, params decision.AlgorithmParams) error {
	switch algo {
	case decision.AlgorithmSoftmax:
		if params.Temperature <= 0 || math.IsNaN(params.Temperature) {
			return decision.NewInvalidParams("kernel.invalid_temperature", "temperature must be > 0 for softmax, got %v", params.Temperature)
		}
	case decision.AlgorithmHurwicz:
		if params.Optimism < 0 || params.Optimism > 1 || math.IsNaN(params.Optimism) {
			return decision.NewInvalidParams("kernel.invalid_optimism", "optimism must be in [0,1] for hurwicz, got %v", params.Optimism)
		}
	case decision.AlgorithmHodgesLehmann:
		if params.Confidence < 0 || params.Confidence > 1 || math.IsNaN(params.Confidence) {
			return decision.NewInvalidParams("kernel.invalid_confidence", "confidence must be in [0,1] for hodges_lehmann, got %v", params.Confidence)
		}
	case decision.AlgorithmBrownRobinson:
		if params.Iterations <= 0 {
			return decision.NewInvalidParams("kernel.invalid_iterations", "iterations must be > 0 for brown_robinson, got %d", params.Iterations)
		}
	}
	return nil
}
