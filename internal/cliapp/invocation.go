// Package cliapp is the thin CLI driver atop the engine: flag parsing,
// reading a spec/policy file, calling into kernel/gate/replay/snapshot/
// ledger, and mapping the outcome to one of the engine's exit codes. It
// never influences engine determinism; it is the one place in the repo
// allowed to read files, touch the clock, and log.
package cliapp

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Exit codes, per the engine's external-interface contract.
const (
	ExitSuccess             = 0
	ExitGenericError        = 1
	ExitInvalidInput        = 2
	ExitDeterminismMismatch = 3
	ExitPolicyDeny          = 4
)

// Command identifies which subcommand was invoked.
type Command string

const (
	CommandEvaluate Command = "evaluate"
	CommandReplay   Command = "replay"
)

// EvaluateInvocation is the canonicalized description of an `evaluate` run.
type EvaluateInvocation struct {
	SpecPath     string
	SnapshotDir  string
	PolicyPath   string // empty disables gating
	LedgerDir    string // empty disables ledger recording
	RunID        string // empty: the snapshot store generates one
	AssumedCost  float64
	LogJSON      bool
	LogLevel     string
	MetricsAddr  string // empty disables the metrics endpoint
}

// ReplayInvocation is the canonicalized description of a `replay` run.
type ReplayInvocation struct {
	SnapshotDir     string
	LedgerDir       string // empty disables ledger recording
	RunID           string
	EngineVersion   string
	ProtocolVersion string
	ContractVersion string
	LogJSON         bool
	LogLevel        string
}

// InvocationError carries the exit code a malformed invocation should
// produce, mirroring the engine's stable-exit-code contract at the CLI
// boundary.
type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// ParseArgs splits argv (excluding argv[0]) into a Command and the
// remaining flag arguments.
func ParseArgs(args []string) (Command, []string, error) {
	if len(args) == 0 {
		return "", nil, invalidf("a subcommand is required: evaluate|replay")
	}
	switch Command(args[0]) {
	case CommandEvaluate, CommandReplay:
		return Command(args[0]), args[1:], nil
	default:
		return "", nil, invalidf("unknown subcommand %q (expected evaluate|replay)", args[0])
	}
}

// ParseEvaluateInvocation parses the flags for `evaluate`.
func ParseEvaluateInvocation(args []string) (EvaluateInvocation, error) {
	fs := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var inv EvaluateInvocation
	fs.StringVar(&inv.SpecPath, "spec", "", "Path to a DecisionSpec JSON document. Required.")
	fs.StringVar(&inv.SnapshotDir, "snapshot-dir", "", "Directory snapshots are persisted under. Required.")
	fs.StringVar(&inv.PolicyPath, "policy", "", "Path to a YAML gate policy document (optional).")
	fs.StringVar(&inv.LedgerDir, "ledger-dir", "", "Directory the audit ledger is persisted under (optional).")
	fs.StringVar(&inv.RunID, "run-id", "", "Explicit run id (optional; generated if omitted).")
	fs.Float64Var(&inv.AssumedCost, "cost", 0, "Cost value checked against the policy's cost_ceiling, if any.")
	fs.BoolVar(&inv.LogJSON, "log-json", true, "Emit logs as JSON instead of console text.")
	fs.StringVar(&inv.LogLevel, "log-level", "info", "Minimum log level.")
	fs.StringVar(&inv.MetricsAddr, "metrics-addr", "", "Bind address for a /metrics endpoint (optional; disabled if empty).")

	if err := fs.Parse(args); err != nil {
		return EvaluateInvocation{}, invalidf("%v", err)
	}
	if fs.NArg() != 0 {
		return EvaluateInvocation{}, invalidf("unexpected positional arguments: %q", strings.Join(fs.Args(), " "))
	}
	if inv.SpecPath == "" {
		return EvaluateInvocation{}, invalidf("--spec is required")
	}
	if inv.SnapshotDir == "" {
		return EvaluateInvocation{}, invalidf("--snapshot-dir is required")
	}
	inv.SpecPath = filepath.Clean(inv.SpecPath)
	inv.SnapshotDir = filepath.Clean(inv.SnapshotDir)
	return inv, nil
}

// ParseReplayInvocation parses the flags for `replay`.
func ParseReplayInvocation(args []string) (ReplayInvocation, error) {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var inv ReplayInvocation
	fs.StringVar(&inv.SnapshotDir, "snapshot-dir", "", "Directory snapshots are read from. Required.")
	fs.StringVar(&inv.LedgerDir, "ledger-dir", "", "Directory the audit ledger is persisted under (optional).")
	fs.StringVar(&inv.RunID, "run-id", "", "Run id to replay. Required.")
	fs.StringVar(&inv.EngineVersion, "engine-version", Version, "This engine's version, compared against the snapshot.")
	fs.StringVar(&inv.ProtocolVersion, "protocol-version", ProtocolVersion, "This engine's protocol version.")
	fs.StringVar(&inv.ContractVersion, "contract-version", ContractVersion, "This engine's contract version.")
	fs.BoolVar(&inv.LogJSON, "log-json", true, "Emit logs as JSON instead of console text.")
	fs.StringVar(&inv.LogLevel, "log-level", "info", "Minimum log level.")

	if err := fs.Parse(args); err != nil {
		return ReplayInvocation{}, invalidf("%v", err)
	}
	if fs.NArg() != 0 {
		return ReplayInvocation{}, invalidf("unexpected positional arguments: %q", strings.Join(fs.Args(), " "))
	}
	if inv.SnapshotDir == "" {
		return ReplayInvocation{}, invalidf("--snapshot-dir is required")
	}
	if inv.RunID == "" {
		return ReplayInvocation{}, invalidf("--run-id is required")
	}
	inv.SnapshotDir = filepath.Clean(inv.SnapshotDir)
	return inv, nil
}

// ExitCodeForInvocationError extracts the semantic exit code for an error
// returned from argument parsing.
func ExitCodeForInvocationError(err error) int {
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr != nil {
		if invErr.ExitCode != 0 {
			return invErr.ExitCode
		}
		return ExitInvalidInput
	}
	if err == nil {
		return ExitSuccess
	}
	return ExitGenericError
}
