package ledger

import (
	"testing"
	"time"

	"decisionengine/internal/decision"
	"decisionengine/internal/gate"
	"decisionengine/internal/replay"
)

func sampleRun(runID string) RunRecord {
	return RunRecord{
		RunID:             runID,
		CreatedAt:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EngineVersion:     "0.1.0",
		ProtocolVersion:   "1",
		ContractVersion:   "1",
		Algorithm:         decision.AlgorithmMaximin,
		RecommendedAction: "a2",
		Fingerprint:       "deadbeef",
		GateAllowed:       true,
	}
}

func TestCreateAndLoadRun(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	run := sampleRun("run-1")
	if err := store.CreateRun(run); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	got, err := store.LoadRun("run-1")
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if got.RecommendedAction != run.RecommendedAction || got.Fingerprint != run.Fingerprint {
		t.Fatalf("loaded record mismatch: %#v", got)
	}
}

func TestCreateRunRejectsDuplicate(t *testing.T) {
	store, _ := NewStore(t.TempDir())
	run := sampleRun("run-1")
	if err := store.CreateRun(run); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if err := store.CreateRun(run); err != ErrRunExists {
		t.Fatalf("expected ErrRunExists, got %v", err)
	}
}

func TestLoadRunMissing(t *testing.T) {
	store, _ := NewStore(t.TempDir())
	if _, err := store.LoadRun("nope"); err != ErrRunNotFound {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestAppendReplayHistoryOrdering(t *testing.T) {
	store, _ := NewStore(t.TempDir())
	run := sampleRun("run-1")
	if err := store.CreateRun(run); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	records := []ReplayRecord{
		{RunID: "run-1", CheckedAt: base, Classification: replay.PASS},
		{RunID: "run-1", CheckedAt: base.Add(time.Hour), Classification: replay.DRIFT},
		{RunID: "run-1", CheckedAt: base.Add(2 * time.Hour), Classification: replay.MISMATCH},
	}
	for _, rec := range records {
		if err := store.AppendReplay(rec); err != nil {
			t.Fatalf("AppendReplay: %v", err)
		}
	}

	history, err := store.LoadReplayHistory("run-1")
	if err != nil {
		t.Fatalf("LoadReplayHistory: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 records, got %d", len(history))
	}
	for i, want := range records {
		if history[i].Classification != want.Classification {
			t.Fatalf("record %d: classification = %v, want %v", i, history[i].Classification, want.Classification)
		}
	}
}

func TestAppendReplayRequiresExistingRun(t *testing.T) {
	store, _ := NewStore(t.TempDir())
	err := store.AppendReplay(ReplayRecord{RunID: "ghost", CheckedAt: time.Now(), Classification: replay.PASS})
	if err == nil {
		t.Fatal("expected error appending replay for unknown run")
	}
}

func TestRunRecordValidateRequiresReasonsWhenDenied(t *testing.T) {
	run := sampleRun("run-1")
	run.GateAllowed = false
	run.GateReasons = nil
	if err := run.Validate(); err == nil {
		t.Fatal("expected validation error for denied run with no reasons")
	}
	run.GateReasons = []gate.DenyReason{gate.ReasonBelowMinConfidence}
	if err := run.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReplayRecordValidateRequiresReasonWhenDegraded(t *testing.T) {
	rec := ReplayRecord{RunID: "run-1", CheckedAt: time.Now(), Classification: replay.DEGRADED}
	if err := rec.Validate(); err == nil {
		t.Fatal("expected validation error for DEGRADED with no reason")
	}
}
