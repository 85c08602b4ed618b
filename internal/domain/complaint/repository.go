package complaint

import (
	"context"

	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
)

// ListFilter narrows a store read. Visibility is always decided by
// FilterFeed afterwards; the filter only trims what is fetched.
type ListFilter struct {
	Status vo.Status
}

type Repository interface {
	Create(ctx context.Context, c *Complaint) error

	GetByID(ctx context.Context, id uint) (*Complaint, error)

	GetBySID(ctx context.Context, sid string) (*Complaint, error)

	List(ctx context.Context, filter ListFilter) ([]*Complaint, error)

	// Update persists an owner edit. It fails with ErrForbiddenEdit if the
	// stored complaint is no longer submitted.
	Update(ctx context.Context, c *Complaint) error

	// UpdateStatus persists a transition only if the stored status still
	// equals expected; otherwise it returns ErrForbiddenTransition.
	UpdateStatus(ctx context.Context, c *Complaint, expected vo.Status) error

	// LockForVote holds the complaint row until the surrounding transaction
	// ends so one viewer's concurrent votes apply one after another. It
	// returns ErrVotingClosed when the complaint is no longer submitted.
	LockForVote(ctx context.Context, id uint) error

	// AdjustVotes adds delta to the stored tally in a single statement and
	// returns the tally after the change. It returns ErrVotingClosed when
	// the complaint is no longer submitted.
	AdjustVotes(ctx context.Context, id uint, delta int) (int, error)

	// Delete removes a submitted complaint and its vote rows. It returns
	// ErrForbiddenEdit if the complaint left the submitted state.
	Delete(ctx context.Context, id uint) error
}

// VoteRepository stores each viewer's own vote direction.
type VoteRepository interface {
	GetDirection(ctx context.Context, complaintID, userID uint) (vo.VoteDirection, error)

	// GetDirections returns the viewer's directions keyed by complaint ID.
	// Complaints without a vote are absent from the map.
	GetDirections(ctx context.Context, userID uint, complaintIDs []uint) (map[uint]vo.VoteDirection, error)

	// SetDirection stores d; VoteNone removes the row.
	SetDirection(ctx context.Context, complaintID, userID uint, d vo.VoteDirection) error
}
