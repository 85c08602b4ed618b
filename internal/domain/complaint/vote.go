package complaint

import (
	"fmt"

	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	"github.com/fixora-app/fixora/internal/domain/user"
)

// ComputeVote returns the tally delta and the viewer's new direction when
// requested is cast on top of prior:
//
//	none     -> up/down : +1/-1, direction becomes requested
//	same     -> same    : previous vote retracted, direction becomes none
//	opposite -> other   : +2/-2, direction becomes requested
//
// requested must be up or down.
func ComputeVote(prior, requested vo.VoteDirection) (int, vo.VoteDirection) {
	if !prior.IsCast() {
		return requested.Weight(), requested
	}
	if prior == requested {
		return -prior.Weight(), vo.VoteNone
	}
	return requested.Weight() - prior.Weight(), requested
}

// VoteOutcome describes the effect of one cast. When Applied is false
// nothing changes and Delta is zero.
type VoteOutcome struct {
	Applied   bool
	Delta     int
	Previous  vo.VoteDirection
	Direction vo.VoteDirection
}

// CastVote applies a viewer's vote to the in-memory tally and returns the
// delta the store must apply atomically. Votes from non-students and votes
// on complaints that are no longer submitted are no-ops, not errors.
func (c *Complaint) CastVote(viewer user.Profile, requested, prior vo.VoteDirection) (VoteOutcome, error) {
	if !requested.IsCast() {
		return VoteOutcome{}, fmt.Errorf("%w: vote direction must be up or down", ErrInvalidComplaint)
	}
	if !prior.IsValid() {
		prior = vo.VoteNone
	}

	if !c.CanVote(viewer) {
		return VoteOutcome{Previous: prior, Direction: prior}, nil
	}

	delta, next := ComputeVote(prior, requested)
	c.votes += delta
	return VoteOutcome{
		Applied:   true,
		Delta:     delta,
		Previous:  prior,
		Direction: next,
	}, nil
}

// CanVote is true for students while the complaint is submitted.
func (c *Complaint) CanVote(viewer user.Profile) bool {
	return viewer.Role.IsStudent() && c.status.IsSubmitted()
}

// SyncVotes replaces the tally with the value read back from the store.
func (c *Complaint) SyncVotes(votes int) {
	c.votes = votes
}
