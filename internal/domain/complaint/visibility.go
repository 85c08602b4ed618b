package complaint

import (
	"sort"

	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	"github.com/fixora-app/fixora/internal/domain/user"
	uservo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
)

// Scope is the part of a complaint that decides who can see it. Change
// events carry it so subscribers can filter without loading the record.
type Scope struct {
	SubmitterID uint
	Visibility  vo.Visibility
	HostelType  uservo.Wing
}

// CanView decides whether viewer's feed includes a complaint with scope.
// Rules in order of precedence:
//
//  1. the owner always sees it;
//  2. a wing-scoped warden or staff member sees it iff the wings match;
//  3. a student sees it iff it is public and in the student's own wing;
//  4. unscoped staff see everything.
//
// An undefined hostel type matches no wing, so such complaints are only
// seen by their owner and by unscoped staff.
func CanView(scope Scope, viewer user.Profile) bool {
	if viewer.Owns(scope.SubmitterID) {
		return true
	}

	role := viewer.Role
	switch role.Kind() {
	case user.RoleKindWarden, user.RoleKindStaff:
		if role.IsWingScoped() {
			return scope.HostelType.Matches(role.Wing())
		}
		return true
	case user.RoleKindStudent:
		return scope.Visibility.IsPublic() && scope.HostelType.Matches(viewer.HostelGender)
	default:
		return false
	}
}

func (c *Complaint) Scope() Scope {
	return Scope{
		SubmitterID: c.submitter.ID,
		Visibility:  c.visibility,
		HostelType:  c.hostelType,
	}
}

func (c *Complaint) IsVisibleTo(viewer user.Profile) bool {
	return CanView(c.Scope(), viewer)
}

// FilterFeed returns the complaints viewer can see whose status equals tab,
// highest tally first. The tab applies to the viewer's own complaints too.
// An empty tab keeps every status. The input slice is not modified.
func FilterFeed(complaints []*Complaint, viewer user.Profile, tab vo.Status) []*Complaint {
	feed := make([]*Complaint, 0, len(complaints))
	for _, c := range complaints {
		if c == nil || !c.IsVisibleTo(viewer) {
			continue
		}
		if tab != "" && c.status != tab {
			continue
		}
		feed = append(feed, c)
	}

	sort.SliceStable(feed, func(i, j int) bool {
		a, b := feed[i], feed[j]
		if a.votes != b.votes {
			return a.votes > b.votes
		}
		if !a.createdAt.Equal(b.createdAt) {
			return a.createdAt.After(b.createdAt)
		}
		return a.sid < b.sid
	})
	return feed
}
