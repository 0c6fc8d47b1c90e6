package regexml

import "github.com/coregx/regexml/internal/engine"

// Dialect selects which regular-expression grammar Compile accepts: XPath
// (XPath 3.1 / XQuery regular expressions: reluctant quantifiers,
// non-capturing groups, an escapable "$") or XSD (XML Schema 1.1 Part 2
// Appendix F: neither of those, and "q" is rejected).
type Dialect int

const (
	XPath Dialect = Dialect(engine.XPath)
	XSD   Dialect = Dialect(engine.XSD)
)

func (d Dialect) String() string {
	if d == XSD {
		return "XSD"
	}
	return "XPath"
}

// Program is the compiled, immutable form of a pattern: the pattern text,
// its flags and dialect, and the static analysis (group count, fixed
// length, hoisted prefix/initial class, preconditions, nesting table)
// internal/engine performs once at compile time. A Program is safe for
// concurrent use by any number of callers; each query instantiates its own
// matcher internally.
type Program struct {
	core    *engine.Program
	pattern string
	flags   string
	dialect Dialect
}

// compile parses pattern under flagStr and dialect into a Program, or
// returns an *InvalidFlagsError or *SyntaxError.
func compile(pattern, flagStr string, dialect Dialect) (*Program, error) {
	core, err := engine.Compile(pattern, flagStr, engine.Dialect(dialect))
	if err != nil {
		return nil, convertCompileError(err)
	}
	return &Program{core: core, pattern: pattern, flags: flagStr, dialect: dialect}, nil
}

// String returns the source pattern text used to compile p.
func (p *Program) String() string { return p.pattern }

// Flags returns the flag string used to compile p.
func (p *Program) Flags() string { return p.flags }

// Dialect returns the grammar dialect used to compile p.
func (p *Program) Dialect() Dialect { return p.dialect }

// NumSubexp returns the number of capturing groups in the pattern (not
// counting group 0, the whole match).
func (p *Program) NumSubexp() int { return p.core.GroupCount }

// MinLength returns the minimum number of code points any match of p can
// consume.
func (p *Program) MinLength() int { return p.core.MinLength }

// FixedLength returns the exact number of code points every match of p
// consumes, and true, if p's match length never varies.
func (p *Program) FixedLength() (int, bool) { return p.core.FixedLength, p.core.HasFixedLength }

// MatchesEmptyString reports whether p can match the zero-length string,
// per the precomputed concrete check spec.md §7 describes (run once,
// against the empty input, at compile time).
func (p *Program) MatchesEmptyString() bool {
	return p.core.MatchesEmptyStatus != engine.ZLSNever
}

// CompilationNotes returns a trace of which static optimizations fired
// while compiling p (fixed-length lifts, unambiguous-repeat rewrites,
// prefix/initial-class hoisting, precondition extraction, prefilter
// construction), in the order they were recorded. It carries no semantic
// weight; it exists so callers and tests can assert which optimization
// applied to a given pattern without reaching into internals.
func (p *Program) CompilationNotes() []string {
	return append([]string(nil), p.core.CompilationNotes...)
}
