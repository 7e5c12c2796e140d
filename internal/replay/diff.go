package replay

import "decisionengine/internal/decision"

// Diff is the structured comparison emitted for a MISMATCH classification:
// what changed between the snapshot's stored result and the freshly
// re-evaluated one.
type Diff struct {
	RecommendedBefore string             `json:"recommended_before"`
	RecommendedAfter  string             `json:"recommended_after"`
	RankingBefore     []string           `json:"ranking_before,omitempty"`
	RankingAfter      []string           `json:"ranking_after,omitempty"`
	ScoreDeltas       map[string]float64 `json:"score_deltas,omitempty"`
	FingerprintBefore string             `json:"fingerprint_before"`
	FingerprintAfter  string             `json:"fingerprint_after"`
}

// buildDiff compares stored against fresh and reports only the deltas that
// exceed the kernel's tie-break tolerance, so float noise below 1e-9 never
// shows up as a reported change.
func buildDiff(stored, fresh decision.DecisionResult) Diff {
	d := Diff{
		RecommendedBefore: stored.RecommendedAction,
		RecommendedAfter:  fresh.RecommendedAction,
		FingerprintBefore: stored.Trace.Fingerprint,
		FingerprintAfter:  fresh.Trace.Fingerprint,
	}

	if !equalRanking(stored.Ranking, fresh.Ranking) {
		d.RankingBefore = stored.Ranking
		d.RankingAfter = fresh.Ranking
	}

	deltas := make(map[string]float64)
	seen := make(map[string]bool)
	for k := range stored.Trace.Scores {
		seen[k] = true
	}
	for k := range fresh.Trace.Scores {
		seen[k] = true
	}
	for k := range seen {
		before, after := stored.Trace.Scores[k], fresh.Trace.Scores[k]
		delta := after - before
		if delta < 0 {
			delta = -delta
		}
		if delta > tolerance {
			deltas[k] = after - before
		}
	}
	if len(deltas) > 0 {
		d.ScoreDeltas = deltas
	}

	return d
}

const tolerance = 1e-9

func equalRanking(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
