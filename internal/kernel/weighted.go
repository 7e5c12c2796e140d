package kernel

import "math"

// weightedSum scores each action by the state-weighted expectation of its
// utility row. States are summed in input order, never in a data-dependent
// order, so the result is reproducible regardless of map iteration.
func (m *matrix) weightedSum() map[string]float64 {
	scores := make(map[string]float64, m.numActions())
	for i, a := range m.actions {
		var total float64
		for j := 0; j < m.numStates(); j++ {
			total += m.weights[j] * m.u[i][j]
		}
		scores[a] = total
	}
	return scores
}

// softmax converts the weighted-sum scores to a probability distribution via
// a numerically stable softmax (subtracting the max before exponentiating),
// then selects the action of greatest probability.
func (m *matrix) softmax(temperature float64) map[string]float64 {
	weighted := m.weightedSum()

	max := math.Inf(-1)
	for _, a := range m.actions {
		if weighted[a] > max {
			max = weighted[a]
		}
	}

	var z float64
	exp := make(map[string]float64, m.numActions())
	for _, a := range m.actions {
		e := math.Exp((weighted[a] - max) / temperature)
		exp[a] = e
		z += e
	}

	probs := make(map[string]float64, m.numActions())
	for _, a := range m.actions {
		probs[a] = exp[a] / z
	}
	return probs
}
