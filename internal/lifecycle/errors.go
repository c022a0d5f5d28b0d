package lifecycle

import "errors"

var (
	// ErrValidation reports that the compiler cannot satisfy the recipe's
	// language standard floor. Fatal; raised before Generate.
	ErrValidation = errors.New("validation failed")

	// ErrOrdering reports a phase invoked out of its required sequence.
	// The state machine makes this unreachable in normal use; the check
	// stays as a loud failure for programming errors.
	ErrOrdering = errors.New("lifecycle phase out of order")

	// ErrInvariant reports a phase invoked twice within one pass.
	ErrInvariant = errors.New("lifecycle phase already ran")

	// ErrBuild reports a non-zero exit from the external build tool. The
	// tool's diagnostic output is carried in the wrapped error. Never
	// retried here; retries are the caller's responsibility.
	ErrBuild = errors.New("build tool failed")

	// ErrCancelled reports caller-requested cancellation during a
	// blocking external invocation.
	ErrCancelled = errors.New("build cancelled")
)
