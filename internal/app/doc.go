// Package app wires the preprocess command together.
//
// A Dispatcher runs one invocation end to end:
//
//	validate arguments -> validate input file -> select operation ->
//	validate method -> load -> transform -> write -> envelope
//
// Any step's failure ends the run with an error envelope. The Outcome
// carries the envelope to emit and the process exit code.
package app
