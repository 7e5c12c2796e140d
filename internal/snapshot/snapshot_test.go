package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"decisionengine/internal/decision"
	"decisionengine/internal/kernel"
)

func sampleSnapshot(t *testing.T, runID string) Snapshot {
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
	return Snapshot{
		Version:         Version,
		RunID:           runID,
		EngineVersion:   "0.1.0",
		ProtocolVersion: "1",
		ContractVersion: "1",
		Spec:            spec,
		Params:          params,
		Result:          res,
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	snap := sampleSnapshot(t, "run-1")

	path, err := store.Append(snap)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if filepath.Base(path) != "run-1.snapshot.json" {
		t.Fatalf("unexpected path: %s", path)
	}

	got, err := store.Load("run-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.RunID != snap.RunID || got.Result.RecommendedAction != snap.Result.RecommendedAction {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, snap)
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := NewFileStore(t.TempDir())
	if _, err := store.Load("nope"); err == nil {
		t.Fatal("expected error loading missing run id")
	}
}

func TestFileStoreDetectsTampering(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	snap := sampleSnapshot(t, "run-2")
	path, err := store.Append(snap)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	data, err := readAndCorrupt(path)
	if err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := store.Load("run-2"); err == nil {
		t.Fatal("expected fingerprint mismatch after tampering")
	}
}

func TestFileStoreList(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	for _, id := range []string{"run-a", "run-b", "other-c"} {
		if _, err := store.Append(sampleSnapshot(t, id)); err != nil {
			t.Fatalf("Append(%s): %v", id, err)
		}
	}
	ids, err := store.List("run-", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 2 || ids[0] != "run-a" || ids[1] != "run-b" {
		t.Fatalf("unexpected list result: %v", ids)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	snap := sampleSnapshot(t, "mem-1")
	if _, err := store.Append(snap); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, err := store.Load("mem-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.RunID != "mem-1" {
		t.Fatalf("got run id %q", got.RunID)
	}
}

func readAndCorrupt(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	for i := range data {
		if data[i] == '1' {
			data[i] = '9'
			break
		}
	}
	return data, nil
}
