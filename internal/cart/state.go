package cart

// SubmissionState tracks whether the page has pushed its selection to the
// cart service during this session. It only ever moves forward.
type SubmissionState int

const (
	NotSubmitted SubmissionState = iota
	Submitted
)

const (
	LabelAddToCart  = "Add to Cart"
	LabelUpdateCart = "Update Cart"
)

func (s SubmissionState) String() string {
	switch s {
	case NotSubmitted:
		return "not_submitted"
	case Submitted:
		return "submitted"
	default:
		return "unknown"
	}
}

func (s SubmissionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ButtonLabel is the submit button text for the state.
func (s SubmissionState) ButtonLabel() string {
	if s == Submitted {
		return LabelUpdateCart
	}
	return LabelAddToCart
}
