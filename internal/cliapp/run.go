package cliapp

import "context"

// Run is the single entrypoint suitable for black-box testing and for
// cmd/decisionctl: parse argv, dispatch to the right subcommand, and return
// the exit code plus any error.
func Run(ctx context.Context, args []string) (Result, error) {
	cmd, rest, err := ParseArgs(args)
	if err != nil {
		return Result{ExitCode: ExitCodeForInvocationError(err)}, err
	}

	switch cmd {
	case CommandEvaluate:
		inv, err := ParseEvaluateInvocation(rest)
		if err != nil {
			return Result{ExitCode: ExitCodeForInvocationError(err)}, err
		}
		return Evaluate(ctx, inv)
	case CommandReplay:
		inv, err := ParseReplayInvocation(rest)
		if err != nil {
			return Result{ExitCode: ExitCodeForInvocationError(err)}, err
		}
		return Replay(ctx, inv)
	default:
		return Result{ExitCode: ExitInvalidInput}, &InvocationError{ExitCode: ExitInvalidInput, Message: "unknown subcommand"}
	}
}
