package cliapp

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"decisionengine/internal/ledger"
	"decisionengine/internal/replay"
	"decisionengine/internal/snapshot"
)

// ReplayOutcome is the JSON document printed to stdout by `replay`.
type ReplayOutcome struct {
	RunID  string             `json:"run_id"`
	Report replay.Report      `json:"report"`
}

// Replay runs the `replay` subcommand: load a snapshot, verify it, record
// the classification in the ledger, and map it to an exit code.
func Replay(ctx context.Context, inv ReplayInvocation) (Result, error) {
	log, err := newLogger(inv.LogJSON, inv.LogLevel)
	if err != nil {
		return Result{ExitCode: ExitGenericError}, fmt.Errorf("cliapp: building logger: %w", err)
	}
	defer log.Sync()

	store := snapshot.NewFileStore(inv.SnapshotDir)
	snap, err := store.Load(inv.RunID)
	if err != nil {
		log.Error("loading snapshot", zap.Error(err))
		return Result{ExitCode: ExitGenericError}, err
	}

	report := replay.Verify(snap, replay.EngineInfo{
		EngineVersion:   inv.EngineVersion,
		ProtocolVersion: inv.ProtocolVersion,
		ContractVersion: inv.ContractVersion,
	})
	log.Info("replay classified", zap.String("run_id", inv.RunID), zap.String("classification", string(report.Classification)))

	if inv.LedgerDir != "" {
		if err := recordReplay(inv.LedgerDir, inv.RunID, report); err != nil {
			log.Warn("recording replay in ledger", zap.Error(err))
		}
	}

	outcome := ReplayOutcome{RunID: inv.RunID, Report: report}
	return Result{ExitCode: exitCodeForClassification(report.Classification), Outcome: outcome}, nil
}

func recordReplay(ledgerDir, runID string, report replay.Report) error {
	store, err := ledger.NewStore(ledgerDir)
	if err != nil {
		return err
	}
	return store.AppendReplay(ledger.FromReplayReport(runID, time.Now().UTC(), report))
}

func exitCodeForClassification(c replay.Classification) int {
	switch c {
	case replay.PASS, replay.DRIFT:
		return ExitSuccess
	case replay.MISMATCH:
		return ExitDeterminismMismatch
	default: // DEGRADED
		return ExitGenericError
	}
}
