package cliapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"decisionengine/internal/decision"
	"decisionengine/internal/gate"
	"decisionengine/internal/kernel"
	"decisionengine/internal/ledger"
	"decisionengine/internal/snapshot"
	"decisionengine/internal/telemetry"
)

// EvaluateOutcome is the JSON document printed to stdout by `evaluate`.
type EvaluateOutcome struct {
	RunID  string                   `json:"run_id"`
	Result decision.DecisionResult  `json:"result"`
	Gate   *EvaluateGateOutcome     `json:"gate,omitempty"`
}

// EvaluateGateOutcome reports the gate verdict, when a policy was supplied.
type EvaluateGateOutcome struct {
	Allow      bool               `json:"allow"`
	Reasons    []gate.DenyReason  `json:"reasons,omitempty"`
	Confidence float64            `json:"confidence"`
}

// Result is the outcome of running a cliapp command end to end.
type Result struct {
	ExitCode int
	Outcome  any
}

// Evaluate runs the `evaluate` subcommand: read a spec, call the kernel,
// persist a snapshot, optionally gate the result, optionally record the
// ledger entry.
func Evaluate(ctx context.Context, inv EvaluateInvocation) (Result, error) {
	log, err := newLogger(inv.LogJSON, inv.LogLevel)
	if err != nil {
		return Result{ExitCode: ExitGenericError}, fmt.Errorf("cliapp: building logger: %w", err)
	}
	defer log.Sync()

	var metrics *telemetry.Metrics
	if inv.MetricsAddr != "" {
		metrics = telemetry.NewMetrics()
		go func() {
			if err := metrics.ServeMetrics(ctx, inv.MetricsAddr); err != nil {
				log.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	spec, err := readSpec(inv.SpecPath)
	if err != nil {
		log.Error("reading spec", zap.Error(err))
		return Result{ExitCode: ExitInvalidInput}, err
	}

	res, err := kernel.Evaluate(spec, spec.Params, nil)
	if err != nil {
		var de *decision.Error
		code := ExitGenericError
		if errors.As(err, &de) {
			code = exitCodeForKind(de.Kind)
			if metrics != nil {
				metrics.RunErrorsTotal.WithLabelValues(string(de.Kind)).Inc()
			}
		}
		log.Error("kernel evaluation failed", zap.Error(err))
		return Result{ExitCode: code}, err
	}
	if metrics != nil {
		metrics.RunsEvaluatedTotal.WithLabelValues(string(res.Trace.Algorithm)).Inc()
	}

	store := snapshot.NewFileStore(inv.SnapshotDir)
	snap := snapshot.Snapshot{
		Version:         snapshot.Version,
		RunID:           inv.RunID,
		EngineVersion:   Version,
		ProtocolVersion: ProtocolVersion,
		ContractVersion: ContractVersion,
		Spec:            spec,
		Params:          spec.Params,
		Result:          res,
	}
	path, err := store.Append(snap)
	if err != nil {
		log.Error("persisting snapshot", zap.Error(err))
		return Result{ExitCode: ExitGenericError}, err
	}
	runID := inv.RunID
	if runID == "" {
		// FileStore.Append generates one internally when RunID is empty;
		// recover it from the returned path rather than threading a second
		// return value through the Store interface.
		runID = strings.TrimSuffix(filepath.Base(path), ".snapshot.json")
	}
	log.Info("snapshot persisted", zap.String("path", path), zap.String("run_id", runID))

	outcome := EvaluateOutcome{RunID: runID, Result: res}

	verdict := gate.Decision{Allow: true}
	confidence := confidenceOf(res)
	if inv.PolicyPath != "" {
		policy, err := gate.LoadPolicy(inv.PolicyPath)
		if err != nil {
			log.Error("loading policy", zap.Error(err))
			return Result{ExitCode: ExitInvalidInput}, err
		}
		verdict = gate.Evaluate(policy, gate.Input{
			Result:     res,
			Confidence: confidence,
			Cost:       inv.AssumedCost,
			Fields: map[string]any{
				"run_id":      runID,
				"fingerprint": res.Trace.Fingerprint,
			},
		})
		outcome.Gate = &EvaluateGateOutcome{Allow: verdict.Allow, Reasons: verdict.Reasons, Confidence: confidence}
		if metrics != nil {
			metrics.GateDecisionsTotal.WithLabelValues(fmt.Sprintf("%t", verdict.Allow)).Inc()
			for _, r := range verdict.Reasons {
				metrics.GateDenialsTotal.WithLabelValues(string(r)).Inc()
			}
		}
	}

	if inv.LedgerDir != "" {
		if err := recordRun(inv.LedgerDir, runID, res, verdict); err != nil {
			log.Warn("recording ledger entry", zap.Error(err))
		}
	}

	if !verdict.Allow {
		return Result{ExitCode: ExitPolicyDeny, Outcome: outcome}, nil
	}
	return Result{ExitCode: ExitSuccess, Outcome: outcome}, nil
}

func recordRun(ledgerDir, runID string, res decision.DecisionResult, verdict gate.Decision) error {
	store, err := ledger.NewStore(ledgerDir)
	if err != nil {
		return err
	}
	rec := ledger.FromResult(runID, time.Now().UTC(), ledger.EngineVersions{
		EngineVersion:   Version,
		ProtocolVersion: ProtocolVersion,
		ContractVersion: ContractVersion,
	}, res, verdict)
	return store.CreateRun(rec)
}

func readSpec(path string) (decision.DecisionSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return decision.DecisionSpec{}, fmt.Errorf("reading %q: %w", path, err)
	}
	var spec decision.DecisionSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return decision.DecisionSpec{}, fmt.Errorf("parsing %q: %w", path, err)
	}
	return spec, nil
}

func exitCodeForKind(k decision.Kind) int {
	switch k {
	case decision.KindInvalidInput, decision.KindInvalidNumeric, decision.KindInvalidParams, decision.KindMissingOutcome:
		return ExitInvalidInput
	default:
		return ExitGenericError
	}
}

// confidenceOf derives a [0,1] confidence scalar from the margin between the
// top two ranked actions' scores. It is a gate-layer convenience, not part
// of the kernel's contract: the kernel has no notion of "confidence".
func confidenceOf(res decision.DecisionResult) float64 {
	if len(res.Ranking) < 2 {
		return 1
	}
	top := res.Trace.Scores[res.Ranking[0]]
	second := res.Trace.Scores[res.Ranking[1]]
	margin := math.Abs(top - second)
	denom := math.Abs(top) + math.Abs(second)
	if denom == 0 {
		return 0
	}
	confidence := margin / denom
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

func newLogger(jsonFormat bool, level string) (*zap.Logger, error) {
	return telemetry.NewLogger(jsonFormat, level)
}
