package valueobjects

import "fmt"

// VoteDirection is a viewer's vote on one complaint.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
	VoteNone VoteDirection = "none"
)

func (d VoteDirection) String() string {
	return string(d)
}

func (d VoteDirection) IsValid() bool {
	return d == VoteUp || d == VoteDown || d == VoteNone
}

// IsCast is false for VoteNone.
func (d VoteDirection) IsCast() bool {
	return d == VoteUp || d == VoteDown
}

// Weight is the direction's contribution to a tally.
func (d VoteDirection) Weight() int {
	switch d {
	case VoteUp:
		return 1
	case VoteDown:
		return -1
	default:
		return 0
	}
}

// NewVoteDirection parses a stored direction; empty reads as none.
func NewVoteDirection(s string) (VoteDirection, error) {
	if s == "" {
		return VoteNone, nil
	}
	d := VoteDirection(s)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid vote direction: %s", s)
	}
	return d, nil
}

// NewCastDirection accepts only up or down, the values a viewer may request.
func NewCastDirection(s string) (VoteDirection, error) {
	d := VoteDirection(s)
	if !d.IsCast() {
		return "", fmt.Errorf("vote direction must be up or down, got %q", s)
	}
	return d, nil
}
