package colorexpr

import (
	"errors"
	"fmt"

	"github.com/gogpu/colorexpr/syntax"
)

// Error kinds. Every compilation failure is an *Error whose Kind is one of
// these, so callers can test with errors.Is.
var (
	// ErrUnresolvedName reports an identifier that is neither a variable nor
	// a function in the current scope.
	ErrUnresolvedName = errors.New("unresolved name")

	// ErrOverloadMismatch reports a call whose argument count or component
	// counts match no overload.
	ErrOverloadMismatch = errors.New("no matching overload")

	// ErrOperandMismatch reports a * or / with no scalar operand, or a + or -
	// whose operands differ in component count.
	ErrOperandMismatch = errors.New("invalid term")

	// ErrChannelBudget reports an expression list producing more than four
	// channels.
	ErrChannelBudget = errors.New("expression produces more than 4 channels")

	// ErrMalformed reports a parse tree that violates the grammar's shape,
	// such as a nil child or an empty expression list.
	ErrMalformed = errors.New("malformed parse tree")

	// ErrNotEvaluable reports a program that cannot run on the CPU because a
	// function or fill has no CPU form.
	ErrNotEvaluable = errors.New("program is not evaluable on the CPU")

	// ErrSyntax reports input the parser rejected.
	ErrSyntax = syntax.ErrSyntax
)

// Error is a compilation diagnostic.
type Error struct {
	// Kind is one of the Err* sentinels.
	Kind error
	// Pos is the byte offset in the expression the diagnostic refers to,
	// or -1 when it applies to the whole expression.
	Pos int
	// Msg describes the failure for the author.
	Msg string
}

func (e *Error) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("colorexpr: %s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("colorexpr: offset %d: %s: %s", e.Pos, e.Kind, e.Msg)
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error { return e.Kind }

func errorf(kind error, pos int, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
