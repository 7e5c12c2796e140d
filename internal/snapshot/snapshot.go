package snapshot

import (
	"decisionengine/internal/decision"
	"decisionengine/internal/fingerprint"
)

// Version is the snapshot schema version, bumped only on a wire-incompatible
// change to the Snapshot shape.
const Version = "1"

// Snapshot is a self-contained, immutable record of one evaluation,
// sufficient to reproduce it. Snapshots are never mutated after Append.
type Snapshot struct {
	Version          string                  `json:"version"`
	RunID            string                  `json:"run_id"`
	EngineVersion    string                  `json:"engine_version"`
	ProtocolVersion  string                  `json:"protocol_version"`
	ContractVersion  string                  `json:"contract_version"`
	IDCounterOffset  uint64                  `json:"id_counter_offset"`
	Spec             decision.DecisionSpec   `json:"spec"`
	Params           decision.AlgorithmParams `json:"params"`
	Result           decision.DecisionResult `json:"result"`
}

// canonicalSubject is the sub-structure a snapshot's integrity fingerprint
// covers: everything needed to reproduce and re-verify the run, excluding
// nothing the way the trace's fingerprint deliberately excludes wall clock.
func (s Snapshot) canonicalSubject() map[string]any {
	return map[string]any{
		"version":           s.Version,
		"run_id":            s.RunID,
		"engine_version":    s.EngineVersion,
		"protocol_version":  s.ProtocolVersion,
		"contract_version":  s.ContractVersion,
		"id_counter_offset": float64(s.IDCounterOffset),
		"spec": map[string]any{
			"actions":   toAny(s.Spec.Actions),
			"states":    toAny(s.Spec.States),
			"outcomes":  outcomesToAny(s.Spec.Outcomes),
			"algorithm": string(s.Spec.Algorithm),
			"strict":    s.Spec.Strict,
		},
		"result": map[string]any{
			"recommended_action": s.Result.RecommendedAction,
			"ranking":             toAny(s.Result.Ranking),
			"fingerprint":         s.Result.Trace.Fingerprint,
		},
	}
}

// Fingerprint returns the integrity fingerprint for s, independent of the
// trace fingerprint embedded in s.Result.Trace: this one covers the whole
// persisted envelope (run id, versions, spec, result identity), while the
// trace fingerprint covers only the algorithm's inputs and outputs.
func (s Snapshot) Fingerprint() (fingerprint.Digest, error) {
	return fingerprint.Of(s.canonicalSubject())
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func outcomesToAny(outcomes map[string]map[string]float64) map[string]any {
	out := make(map[string]any, len(outcomes))
	for action, row := range outcomes {
		rowAny := make(map[string]any, len(row))
		for state, v := range row {
			rowAny[state] = v
		}
		out[action] = rowAny
	}
	return out
}
