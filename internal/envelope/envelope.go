// Package envelope defines the single JSON object written per invocation:
// a success record on standard output or an error record on standard error.
package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Envelope is either a Success or a Failure.
type Envelope interface {
	IsError() bool
}

// Success reports the derived output file and the operation summary.
type Success struct {
	FilePath string      `json:"file_path"`
	Summary  interface{} `json:"summary"`
}

// IsError returns false
func (Success) IsError() bool { return false }

// Failure carries a single-line error message.
type Failure struct {
	Error string `json:"error"`
}

// IsError returns true
func (Failure) IsError() bool { return true }

// NewFailure builds a Failure from err.
func NewFailure(err error) Failure {
	if err == nil {
		return Failure{Error: "unknown error"}
	}
	return Failure{Error: err.Error()}
}

// Encode writes env as one line of UTF-8 JSON. Non-ASCII text is kept as
// is and invalid UTF-8 is replaced with U+FFFD.
func Encode(w io.Writer, env Envelope) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write envelope: %w", err)
	}
	return nil
}

// Emit writes a Success to stdout and a Failure to stderr.
func Emit(stdout, stderr io.Writer, env Envelope) error {
	if env.IsError() {
		return Encode(stderr, env)
	}
	return Encode(stdout, env)
}
