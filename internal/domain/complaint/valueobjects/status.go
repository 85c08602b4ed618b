package valueobjects

import "fmt"

type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusFixed     Status = "fixed"
)

var validStatuses = map[Status]bool{
	StatusSubmitted: true,
	StatusApproved:  true,
	StatusFixed:     true,
}

// Each status has at most one successor; Fixed is terminal.
var statusTransitions = map[Status]Status{
	StatusSubmitted: StatusApproved,
	StatusApproved:  StatusFixed,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) CanTransitionTo(next Status) bool {
	allowed, ok := statusTransitions[s]
	return ok && allowed == next
}

func (s Status) IsSubmitted() bool {
	return s == StatusSubmitted
}

func (s Status) IsApproved() bool {
	return s == StatusApproved
}

func (s Status) IsFixed() bool {
	return s == StatusFixed
}

func (s Status) IsTerminal() bool {
	_, ok := statusTransitions[s]
	return !ok
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid complaint status: %s", s)
	}
	return st, nil
}
