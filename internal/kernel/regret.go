package kernel

// regret computes, for each action i, max_s (max_a' U(a',s) - U(a,s)): the
// worst-case opportunity cost of choosing i. Shared by minimax_regret and
// starr, which differ only in whether the per-state regret is weighted.
func (m *matrix) regretMatrix() [][]float64 {
	colMax := m.columnMax()
	out := make([][]float64, m.numActions())
	for i := 0; i < m.numActions(); i++ {
		row := make([]float64, m.numStates())
		for j := 0; j < m.numStates(); j++ {
			row[j] = colMax[j] - m.u[i][j]
		}
		out[i] = row
	}
	return out
}

// minimaxRegret scores each action by its worst-case regret and selects the
// action minimizing that worst case (the Savage criterion).
func (m *matrix) minimaxRegret() map[string]float64 {
	regret := m.regretMatrix()
	scores := make(map[string]float64, m.numActions())
	for i, a := range m.actions {
		worst := regret[i][0]
		for j := 1; j < m.numStates(); j++ {
			if regret[i][j] > worst {
				worst = regret[i][j]
			}
		}
		scores[a] = worst
	}
	return scores
}

// starr scores each action by its weighted total regret across states and
// selects the minimum, the same argmin direction as minimax_regret but using
// an expectation instead of a worst case.
func (m *matrix) starr() map[string]float64 {
	regret := m.regretMatrix()
	scores := make(map[string]float64, m.numActions())
	for i, a := range m.actions {
		var total float64
		for j := 0; j < m.numStates(); j++ {
			total += m.weights[j] * regret[i][j]
		}
		scores[a] = total
	}
	return scores
}
