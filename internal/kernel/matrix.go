package kernel

import (
	"math"
	"sort"

	"decisionengine/internal/decision"
)

// tolerance is the absolute tolerance used for every tie-break and
// sum-equality comparison in the kernel.
const tolerance = 1e-9

// matrix is the validated, dense form of a DecisionSpec: U[i][j] is the
// utility of actions[i] in states[j]. Building a matrix is the only place
// outcomes are looked up by name; every algorithm below works on indices.
type matrix struct {
	actions []string
	states  []string
	u       [][]float64
	weights []float64 // aligned with states, always present (uniform if unweighted)
}

func buildMatrix(spec decision.DecisionSpec, params decision.AlgorithmParams) (*matrix, error) {
	if err := validateShape(spec); err != nil {
		return nil, err
	}

	u := make([][]float64, len(spec.Actions))
	for i, a := range spec.Actions {
		row := make([]float64, len(spec.States))
		outcomesForA, haveRow := spec.Outcomes[a]
		for j, s := range spec.States {
			v, ok := outcomesForA[s]
			if !ok || !haveRow {
				if spec.Strict {
					return nil, decision.NewMissingOutcome("kernel.missing_outcome", "no outcome recorded for action %q in state %q", a, s).
						WithDetails(map[string]any{"action": a, "state": s})
				}
				v = 0
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, decision.NewInvalidNumeric("kernel.non_finite_outcome", "outcome for action %q state %q is not finite", a, s).
					WithDetails(map[string]any{"action": a, "state": s})
			}
			row[j] = v
		}
		u[i] = row
	}

	weights, err := resolveWeights(spec, params)
	if err != nil {
		return nil, err
	}

	return &matrix{actions: spec.Actions, states: spec.States, u: u, weights: weights}, nil
}

func validateShape(spec decision.DecisionSpec) error {
	if len(spec.Actions) == 0 {
		return decision.NewInvalidInput("kernel.empty_actions", "actions must be non-empty")
	}
	if len(spec.States) == 0 {
		return decision.NewInvalidInput("kernel.empty_states", "states must be non-empty")
	}
	if err := requireDistinctNonEmpty(spec.Actions, "action"); err != nil {
		return err
	}
	if err := requireDistinctNonEmpty(spec.States, "state"); err != nil {
		return err
	}
	if !spec.Algorithm.Known() {
		return decision.NewInvalidInput("kernel.unknown_algorithm", "unknown algorithm tag %q", spec.Algorithm).
			WithDetails(map[string]any{"algorithm": string(spec.Algorithm)})
	}
	return nil
}

func requireDistinctNonEmpty(ids []string, label string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			return decision.NewInvalidInput("kernel.empty_identifier", "%s identifiers must be non-empty", label)
		}
		if seen[id] {
			return decision.NewInvalidInput("kernel.duplicate_identifier", "duplicate %s identifier %q", label, id).
				WithDetails(map[string]any{label: id})
		}
		seen[id] = true
	}
	return nil
}

// resolveWeights produces a per-state weight vector aligned with spec.States.
// Unweighted algorithms still get a uniform vector so laplace and similar
// criteria can share code with weighted_sum's reduction.
func resolveWeights(spec decision.DecisionSpec, params decision.AlgorithmParams) ([]float64, error) {
	n := len(spec.States)
	if len(params.Weights) == 0 {
		uniform := make([]float64, n)
		for i := range uniform {
			uniform[i] = 1.0 / float64(n)
		}
		return uniform, nil
	}

	weights := make([]float64, n)
	var sum float64
	for j, s := range spec.States {
		w, ok := params.Weights[s]
		if !ok {
			if spec.Strict {
				return nil, decision.NewInvalidParams("kernel.missing_weight", "no weight supplied for state %q", s).
					WithDetails(map[string]any{"state": s})
			}
			w = 0
		}
		if w < 0 || w > 1 || math.IsNaN(w) {
			return nil, decision.NewInvalidParams("kernel.weight_out_of_range", "weight for state %q must be in [0,1], got %v", s, w).
				WithDetails(map[string]any{"state": s, "weight": w})
		}
		weights[j] = w
		sum += w
	}

	if spec.Strict {
		if math.Abs(sum-1.0) > tolerance {
			return nil, decision.NewInvalidParams("kernel.weights_not_normalized", "weights must sum to 1 in strict mode, got %v", sum).
				WithDetails(map[string]any{"sum": sum})
		}
		return weights, nil
	}

	if sum == 0 {
		uniform := make([]float64, n)
		for i := range uniform {
			uniform[i] = 1.0 / float64(n)
		}
		return uniform, nil
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights, nil
}

// rowUtility returns U(a,s) for action index i, state index j.
func (m *matrix) at(i, j int) float64 { return m.u[i][j] }

func (m *matrix) numActions() int { return len(m.actions) }
func (m *matrix) numStates() int  { return len(m.states) }

// columnMax returns, for each state j, max_a U(a,j).
func (m *matrix) columnMax() []float64 {
	out := make([]float64, m.numStates())
	for j := 0; j < m.numStates(); j++ {
		best := math.Inf(-1)
		for i := 0; i < m.numActions(); i++ {
			if m.u[i][j] > best {
				best = m.u[i][j]
			}
		}
		out[j] = best
	}
	return out
}

// rankByScore sorts actions descending by score if maximize is true,
// ascending otherwise, breaking ties by lexicographic action id. score is
// keyed by action id, matching every score producer in this package.
func (m *matrix) rankByScore(score map[string]float64, maximize bool) []string {
	ranking := make([]string, m.numActions())
	copy(ranking, m.actions)
	sort.Slice(ranking, func(a, b int) bool {
		sa, sb := score[ranking[a]], score[ranking[b]]
		if math.Abs(sa-sb) < tolerance {
			return ranking[a] < ranking[b]
		}
		if maximize {
			return sa > sb
		}
		return sa < sb
	})
	return ranking
}
