// Package output provides structured output handling for the wf CLI.
//
// Every command writes through a Printer so that it works both for a person
// at a terminal and for scripts reading --json output.
//
// # Printer
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//
//	printer.Success(map[string]any{"message": "Saved 1204 nodes", "path": path})
//	printer.Table([]string{"NAME", "NODES"}, rows)
//	printer.Error(err)
//
// # JSON Mode
//
// With --json, results and errors are single JSON documents on stdout:
//
//	// Success: {"message": "...", "path": "...", ...}
//	// Error: {"error": "message", "code": N, "hint": "..."}
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: Success
//	output.ExitUserError   // 1: Bad args, unreadable input file, invalid pattern
//	output.ExitSystemError // 2: Network, HTTP status, filesystem
//	output.ExitAuthError   // 3: Session missing or rejected
//
// Errors built with NewUserError, NewSystemError and NewAuthError carry the
// code used for both the JSON error body and the process exit status.
//
// # Spinner
//
// NewSpinner animates on a terminal and degrades to a single progress line
// when stderr is redirected.
package output
