package complaint

import "errors"

var (
	// ErrInvalidComplaint wraps every validation failure on create and edit.
	ErrInvalidComplaint = errors.New("invalid complaint")

	// ErrForbiddenTransition is returned by Approve and MarkFixed when the
	// actor's role or the current status does not allow the transition. It
	// is also returned by the store when a compare-and-set on status loses.
	ErrForbiddenTransition = errors.New("forbidden transition")

	// ErrForbiddenEdit is returned for edits and deletes by anyone but the
	// owner, or after the complaint has left the submitted state.
	ErrForbiddenEdit = errors.New("forbidden edit")

	ErrComplaintNotFound = errors.New("complaint not found")

	// ErrStoreUnavailable is returned by repositories when the backing
	// store cannot be reached.
	ErrStoreUnavailable = errors.New("complaint store unavailable")
)

// ErrVotingClosed is returned by AdjustVotes when the complaint left the
// submitted state before the delta could be applied.
var ErrVotingClosed = errors.New("voting closed")
