package engine

import "errors"

// CompileError is raised by Compile when a pattern or its flags cannot be
// turned into a well-defined operation tree.
type CompileError struct {
	Kind    string // "InvalidFlags" or "Syntax"
	Message string
}

func (e *CompileError) Error() string { return e.Kind + ": " + e.Message }

func invalidFlags(msg string) error { return &CompileError{Kind: "InvalidFlags", Message: msg} }
func syntaxErr(msg string) error    { return &CompileError{Kind: "Syntax", Message: msg} }

// ErrBacktrackLimit is the sentinel a Sequence records in the matcher's err
// field when its backtracking count exceeds Program.BacktrackLimit; the
// Sequence then reports no further matches. The compiler leaves
// BacktrackLimit at 0, which means no limit, and nothing reads the recorded
// error, so no query operation returns it.
var ErrBacktrackLimit = errors.New("engine: backtracking limit exceeded")
