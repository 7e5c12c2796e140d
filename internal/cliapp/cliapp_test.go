package cliapp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"decisionengine/internal/decision"
)

func writeSpec(t *testing.T, dir string) string {
	t.Helper()
	spec := decision.DecisionSpec{
		Actions:   []string{"a1", "a2"},
		States:    []string{"s1", "s2"},
		Outcomes:  map[string]map[string]float64{"a1": {"s1": 10, "s2": 0}, "a2": {"s1": 5, "s2": 5}},
		Algorithm: decision.AlgorithmMaximin,
	}
	data, err := json.Marshal(spec)
	if err != nil {
		t.Fatalf("marshal spec: %v", err)
	}
	path := filepath.Join(dir, "spec.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	return path
}

func TestRunEvaluateThenReplay(t *testing.T) {
	dir := t.TempDir()
	specPath := writeSpec(t, dir)
	snapDir := filepath.Join(dir, "snapshots")
	ledgerDir := filepath.Join(dir, "ledger")

	evalRes, err := Run(context.Background(), []string{
		"evaluate",
		"--spec", specPath,
		"--snapshot-dir", snapDir,
		"--ledger-dir", ledgerDir,
		"--run-id", "run-a",
		"--log-json=false",
	})
	if err != nil {
		t.Fatalf("evaluate run: %v", err)
	}
	if evalRes.ExitCode != ExitSuccess {
		t.Fatalf("evaluate exit = %d, want %d", evalRes.ExitCode, ExitSuccess)
	}
	outcome, ok := evalRes.Outcome.(EvaluateOutcome)
	if !ok {
		t.Fatalf("unexpected outcome type %T", evalRes.Outcome)
	}
	if outcome.Result.RecommendedAction != "a2" {
		t.Fatalf("recommended_action = %q, want a2", outcome.Result.RecommendedAction)
	}

	replayRes, err := Run(context.Background(), []string{
		"replay",
		"--snapshot-dir", snapDir,
		"--ledger-dir", ledgerDir,
		"--run-id", "run-a",
		"--log-json=false",
	})
	if err != nil {
		t.Fatalf("replay run: %v", err)
	}
	if replayRes.ExitCode != ExitSuccess {
		t.Fatalf("replay exit = %d, want %d", replayRes.ExitCode, ExitSuccess)
	}
	replayOutcome, ok := replayRes.Outcome.(ReplayOutcome)
	if !ok {
		t.Fatalf("unexpected outcome type %T", replayRes.Outcome)
	}
	if replayOutcome.Report.Classification != "PASS" {
		t.Fatalf("classification = %v, want PASS", replayOutcome.Report.Classification)
	}
}

func TestRunEvaluateGateDeny(t *testing.T) {
	dir := t.TempDir()
	specPath := writeSpec(t, dir)
	snapDir := filepath.Join(dir, "snapshots")
	policyPath := filepath.Join(dir, "policy.yaml")
	if err := os.WriteFile(policyPath, []byte("min_confidence: 1.5\ndefault_action: allow\n"), 0o644); err != nil {
		t.Fatalf("write policy: %v", err)
	}

	res, err := Run(context.Background(), []string{
		"evaluate",
		"--spec", specPath,
		"--snapshot-dir", snapDir,
		"--policy", policyPath,
		"--run-id", "run-b",
		"--log-json=false",
	})
	if err != nil {
		t.Fatalf("evaluate run: %v", err)
	}
	if res.ExitCode != ExitPolicyDeny {
		t.Fatalf("exit = %d, want %d (policy deny)", res.ExitCode, ExitPolicyDeny)
	}
}

func TestParseArgsRejectsUnknownSubcommand(t *testing.T) {
	_, _, err := ParseArgs([]string{"bogus"})
	if err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
	if ExitCodeForInvocationError(err) != ExitInvalidInput {
		t.Fatalf("exit code = %d, want %d", ExitCodeForInvocationError(err), ExitInvalidInput)
	}
}

func TestParseEvaluateInvocationRequiresSpec(t *testing.T) {
	_, err := ParseEvaluateInvocation([]string{"--snapshot-dir", "/tmp/x"})
	if err == nil {
		t.Fatal("expected error for missing --spec")
	}
}
