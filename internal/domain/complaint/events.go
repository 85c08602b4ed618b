package complaint

import (
	"time"

	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	"github.com/fixora-app/fixora/internal/shared/biztime"
)

// ChangeType names what happened to a complaint.
type ChangeType string

const (
	ChangeCreated  ChangeType = "created"
	ChangeEdited   ChangeType = "edited"
	ChangeDeleted  ChangeType = "deleted"
	ChangeVoted    ChangeType = "voted"
	ChangeApproved ChangeType = "approved"
	ChangeFixed    ChangeType = "fixed"
)

// ChangeEvent is published after a complaint write commits. It carries the
// visibility scope so feed subscribers can drop events their viewer may not
// see without loading the complaint.
type ChangeEvent struct {
	Type       ChangeType
	SID        string
	Scope      Scope
	Status     vo.Status
	Votes      int
	OccurredAt time.Time
}

func NewChangeEvent(c *Complaint, changeType ChangeType) ChangeEvent {
	return ChangeEvent{
		Type:       changeType,
		SID:        c.sid,
		Scope:      c.Scope(),
		Status:     c.status,
		Votes:      c.votes,
		OccurredAt: biztime.NowUTC(),
	}
}
