package replay

import (
	"errors"

	"decisionengine/internal/decision"
	"decisionengine/internal/kernel"
	"decisionengine/internal/snapshot"
)

// EngineInfo identifies the engine binary performing the replay, compared
// against the snapshot's recorded versions to decide PASS vs DRIFT and to
// detect an incompatible engine up front.
type EngineInfo struct {
	EngineVersion   string
	ProtocolVersion string
	ContractVersion string
}

// Report is the outcome of a single Verify call.
type Report struct {
	Classification Classification
	Diff           *Diff  // set only for MISMATCH
	Reason         string // set only for DEGRADED
}

// Verify re-runs the kernel on snap's spec and params and classifies the
// result against what snap has stored. It never mutates snap.
func Verify(snap snapshot.Snapshot, current EngineInfo) Report {
	if current.ContractVersion != "" && snap.ContractVersion != "" && current.ContractVersion != snap.ContractVersion {
		return Report{Classification: DEGRADED, Reason: "incompatible contract_version: snapshot=" + snap.ContractVersion + " engine=" + current.ContractVersion}
	}

	fresh, err := kernel.Evaluate(snap.Spec, snap.Params, nil)
	if err != nil {
		return Report{Classification: DEGRADED, Reason: describeEvalError(err)}
	}

	if fresh.Trace.Fingerprint != snap.Result.Trace.Fingerprint {
		diff := buildDiff(snap.Result, fresh)
		return Report{Classification: MISMATCH, Diff: &diff}
	}

	if !equalRanking(snap.Result.Ranking, fresh.Ranking) || snap.Result.RecommendedAction != fresh.RecommendedAction {
		// The fingerprint contract binds ranking and recommended_action, so
		// this branch indicates a hash unification bug rather than a real
		// divergence; it is surfaced as MISMATCH rather than silently PASSing.
		diff := buildDiff(snap.Result, fresh)
		return Report{Classification: MISMATCH, Diff: &diff}
	}

	if nonFingerprintFieldsDiffer(snap, current) {
		return Report{Classification: DRIFT}
	}

	return Report{Classification: PASS}
}

func nonFingerprintFieldsDiffer(snap snapshot.Snapshot, current EngineInfo) bool {
	if current.EngineVersion != "" && snap.EngineVersion != "" && current.EngineVersion != snap.EngineVersion {
		return true
	}
	if current.ProtocolVersion != "" && snap.ProtocolVersion != "" && current.ProtocolVersion != snap.ProtocolVersion {
		return true
	}
	return false
}

func describeEvalError(err error) string {
	var de *decision.Error
	if errors.As(err, &de) {
		return string(de.Kind) + ": " + de.Message
	}
	return err.Error()
}
