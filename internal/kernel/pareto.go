package kernel

import "sort"

// dominates reports whether row i strictly dominates row k: greater utility
// in every state, beyond tolerance. A tie in even one state is enough for
// neither row to dominate the other there.
func (m *matrix) dominates(i, k int) bool {
	for j := 0; j < m.numStates(); j++ {
		if m.u[i][j] <= m.u[k][j]+tolerance {
			return false
		}
	}
	return true
}

// paretoFrontier partitions actions into the non-dominated frontier and the
// dominated remainder, and scores every action by the count of actions that
// dominate it (0 for every frontier member).
func (m *matrix) paretoFrontier() (frontier, dominated []string, dominanceCount map[string]float64) {
	dominanceCount = make(map[string]float64, m.numActions())
	for i, a := range m.actions {
		count := 0
		for k := range m.actions {
			if k == i {
				continue
			}
			if m.dominates(k, i) {
				count++
			}
		}
		dominanceCount[a] = float64(count)
		if count == 0 {
			frontier = append(frontier, a)
		} else {
			dominated = append(dominated, a)
		}
	}
	sort.Strings(frontier)
	sort.Strings(dominated)
	return frontier, dominated, dominanceCount
}
