package domain

import "fmt"

// Status is the publication state shared by all content entities.
// It is a flat enum: any state may transition to any other state.
type Status int

// Publication states. The integer values are stored in the database
// and must not be reordered.
const (
	StatusDraft     Status = 0
	StatusPublished Status = 1
	StatusRecycled  Status = 2
)

// Status labels used on the wire.
const (
	labelDraft     = "draft"
	labelPublished = "published"
	labelRecycled  = "recycled"
)

// ParseStatus converts a wire label to a Status.
// Unrecognized labels are rejected; creation and status updates share
// this single strict policy.
func ParseStatus(label string) (Status, error) {
	switch label {
	case labelDraft:
		return StatusDraft, nil
	case labelPublished:
		return StatusPublished, nil
	case labelRecycled:
		return StatusRecycled, nil
	default:
		return StatusDraft, fmt.Errorf("invalid status %q (must be draft, published, or recycled)", label)
	}
}

// String returns the wire label for the status.
// Unknown stored values render as draft so admin listings never break.
func (s Status) String() string {
	switch s {
	case StatusPublished:
		return labelPublished
	case StatusRecycled:
		return labelRecycled
	default:
		return labelDraft
	}
}

// IsValid reports whether the status is one of the three known states.
func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusPublished || s == StatusRecycled
}
