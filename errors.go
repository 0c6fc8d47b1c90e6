package regexml

import (
	"errors"

	"github.com/coregx/regexml/internal/engine"
)

// InvalidFlagsError is returned by Compile when the flag string carries an
// unrecognized letter in its main (pre-";") segment, or a flag the
// selected Dialect forbids (e.g. "q" under XSD).
type InvalidFlagsError struct {
	Message string
}

func (e *InvalidFlagsError) Error() string { return "regexml: invalid flags: " + e.Message }

// SyntaxError is returned by Compile when the pattern cannot be parsed
// into a well-defined operation tree: malformed quantifiers, unterminated
// groups or classes, forbidden escapes, invalid back-references, illegal
// hyphens in character classes, unknown categories or blocks, and so on.
type SyntaxError struct {
	Message string
}

func (e *SyntaxError) Error() string { return "regexml: syntax error: " + e.Message }

// InvalidReplacementStringError is returned by ReplaceAll when the
// replacement string contains a malformed "\" or "$" escape.
type InvalidReplacementStringError struct {
	Message string
}

func (e *InvalidReplacementStringError) Error() string {
	return "regexml: invalid replacement string: " + e.Message
}

// ErrMatchesEmptyString is returned by ReplaceAll and Tokenize when the
// compiled program can match the empty string, since both operations'
// semantics (advance past each match, split on each match) are ill-defined
// for a pattern that can match zero-width input at any position.
var ErrMatchesEmptyString = errors.New("regexml: program matches the empty string")

// ErrBacktrackLimit names the engine's backtracking-limit error. No
// operation of this package returns it: Compile sets no backtracking-step
// limit and the API offers no way to set one, so matching is unbounded.
var ErrBacktrackLimit = engine.ErrBacktrackLimit

// convertCompileError adapts the internal engine's compile-time error
// variant into the public InvalidFlagsError/SyntaxError taxonomy.
func convertCompileError(err error) error {
	var ce *engine.CompileError
	if errors.As(err, &ce) {
		switch ce.Kind {
		case "InvalidFlags":
			return &InvalidFlagsError{Message: ce.Message}
		default:
			return &SyntaxError{Message: ce.Message}
		}
	}
	return err
}
