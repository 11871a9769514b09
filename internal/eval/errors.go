package eval

import (
	"errors"
	"fmt"
)

var (
	errUnknownEvalKind       = errors.New("unrecognized eval kind")
	errFoldSourceNotSequence = errors.New("fold source did not evaluate to a sequence")
)

// InputNotBound is returned by Evaluate when an Eval transitively reads an
// Input that has no current binding. It is fatal: it indicates a bot or
// configuration bug, not a transient condition.
type InputNotBound struct {
	Input Input
}

func (e *InputNotBound) Error() string {
	return fmt.Sprintf("eval: input %q is not bound", e.Input.Key())
}

// EvalFailure wraps an error returned while computing a derived or folded
// Eval. Panics in user eval functions are not recovered; this type only
// wraps errors returned through the normal error-return path.
type EvalFailure struct {
	EvalID string
	Err    error
}

func (e *EvalFailure) Error() string {
	return fmt.Sprintf("eval: %s failed: %v", e.EvalID, e.Err)
}

func (e *EvalFailure) Unwrap() error { return e.Err }
