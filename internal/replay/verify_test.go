package replay

import (
	"testing"

	"decisionengine/internal/decision"
	"decisionengine/internal/kernel"
	"decisionengine/internal/snapshot"
)

func buildSnapshot(t *testing.T) snapshot.Snapshot {
	t.Helper()
	spec := decision.DecisionSpec{
		Actions:   []string{"a1", "a2"},
		States:    []string{"s1", "s2"},
		Outcomes:  map[string]map[string]float64{"a1": {"s1": 10, "s2": 5}, "a2": {"s1": 0, "s2": 20}},
		Algorithm: decision.AlgorithmWeightedSum,
	}
	params := decision.AlgorithmParams{Weights: map[string]float64{"s1": 0.6, "s2": 0.4}}
	res, err := kernel.Evaluate(spec, params, nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return snapshot.Snapshot{
		Version:         snapshot.Version,
		RunID:           "run-1",
		EngineVersion:   "0.1.0",
		ProtocolVersion: "1",
		ContractVersion: "1",
		Spec:            spec,
		Params:          params,
		Result:          res,
	}
}

func TestVerifyPass(t *testing.T) {
	snap := buildSnapshot(t)
	report := Verify(snap, EngineInfo{EngineVersion: "0.1.0", ProtocolVersion: "1", ContractVersion: "1"})
	if report.Classification != PASS {
		t.Fatalf("classification = %v, want PASS", report.Classification)
	}
}

func TestVerifyDriftOnEngineVersionChange(t *testing.T) {
	snap := buildSnapshot(t)
	report := Verify(snap, EngineInfo{EngineVersion: "0.2.0", ProtocolVersion: "1", ContractVersion: "1"})
	if report.Classification != DRIFT {
		t.Fatalf("classification = %v, want DRIFT", report.Classification)
	}
}

func TestVerifyMismatchOnOutcomeChange(t *testing.T) {
	snap := buildSnapshot(t)
	snap.Spec.Outcomes["a1"]["s1"] = 999
	report := Verify(snap, EngineInfo{EngineVersion: "0.1.0", ProtocolVersion: "1", ContractVersion: "1"})
	if report.Classification != MISMATCH {
		t.Fatalf("classification = %v, want MISMATCH", report.Classification)
	}
	if report.Diff == nil {
		t.Fatal("expected a diff for MISMATCH")
	}
	if report.Diff.FingerprintBefore == report.Diff.FingerprintAfter {
		t.Fatal("expected differing fingerprints in diff")
	}
}

func TestVerifyDegradedOnContractVersionMismatch(t *testing.T) {
	snap := buildSnapshot(t)
	report := Verify(snap, EngineInfo{ContractVersion: "2"})
	if report.Classification != DEGRADED {
		t.Fatalf("classification = %v, want DEGRADED", report.Classification)
	}
	if report.Reason == "" {
		t.Fatal("expected a reason for DEGRADED")
	}
}

func TestVerifyDegradedOnUnreadableSpec(t *testing.T) {
	snap := buildSnapshot(t)
	snap.Spec.Actions = nil // unevaluable
	report := Verify(snap, EngineInfo{})
	if report.Classification != DEGRADED {
		t.Fatalf("classification = %v, want DEGRADED", report.Classification)
	}
}

func TestTextNormalizerScrubsNoise(t *testing.T) {
	n := NewTextNormalizer()
	a := "failed reading /tmp/run-8213/spec.json at pid 4821"
	b := "failed reading /tmp/run-555/spec.json at pid 99"
	if !n.EqualModuloNoise(a, b) {
		t.Fatalf("expected normalized equality: %q vs %q", n.Normalize(a), n.Normalize(b))
	}
}
