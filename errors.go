package blend

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind discriminates the error taxonomy described in the design's
// error-handling section. Every failure path in this package produces
// an *Error tagged with one of these.
type Kind int

const (
	KindContainer Kind = iota
	KindHeader
	KindBlock
	KindSDNA
	KindDecode
	KindPointer
	KindPath
	KindWalk
	KindSelector
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindHeader:
		return "header"
	case KindBlock:
		return "block"
	case KindSDNA:
		return "sdna"
	case KindDecode:
		return "decode"
	case KindPointer:
		return "pointer"
	case KindPath:
		return "path"
	case KindWalk:
		return "walk"
	case KindSelector:
		return "selector"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the single structured error type every operation in this
// package returns. Op names the failing operation ("header.parse",
// "dna.validate", "chase.dereference", ...); Pos is a byte offset when known, or
// -1 otherwise.
type Error struct {
	Kind Kind
	Op   string
	Pos  int64
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Pos >= 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s (at %d): %v", e.Op, e.Msg, e.Pos, e.Err)
		}
		return fmt.Sprintf("%s: %s (at %d)", e.Op, e.Msg, e.Pos)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func errf(kind Kind, op string, pos int64, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// wrap attaches op/kind context to a lower-level error using pkg/errors
// so the resulting chain keeps a stack trace usable in CLI diagnostics,
// while callers can still type-switch on the embedded *Error via errors.As.
func wrap(kind Kind, op string, err error) *Error {
	if be, ok := err.(*Error); ok {
		return be
	}
	return &Error{Kind: kind, Op: op, Pos: -1, Msg: "wrapped", Err: errors.WithStack(err)}
}

// eod reports an end-of-data condition from the cursor, annotated with
// the byte position at which the read was attempted.
func eod(kind Kind, op string, pos int64, need, have int) *Error {
	return errf(kind, op, pos, "unexpected end of data: need %d bytes, have %d", need, have)
}
