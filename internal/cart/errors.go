package cart

import (
	"errors"
	"fmt"
)

// FailureNotice is shown to the user when the cart service rejects an update.
const FailureNotice = "Failed to update cart. Please try again."

var (
	ErrEmptySnapshot      = errors.New("no items with a quantity to submit")
	ErrSubmissionInFlight = errors.New("a cart submission is already in progress")
)

// SubmissionError reports a cart update the cart service did not accept.
// The ledger and the submission state are left as they were.
type SubmissionError struct {
	Items int
	Err   error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit %d cart lines: %v", e.Items, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }
