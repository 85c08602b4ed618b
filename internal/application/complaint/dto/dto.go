package dto

import (
	"time"

	"github.com/fixora-app/fixora/internal/domain/complaint"
	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	"github.com/fixora-app/fixora/internal/domain/user"
	"github.com/fixora-app/fixora/internal/shared/mapper"
)

type SubmitterDTO struct {
	Name   string `json:"name"`
	Hostel string `json:"hostel"`
	Room   string `json:"room"`
}

// ComplaintDTO is a complaint as seen by one viewer. The capability flags
// and MyVote are computed for that viewer.
type ComplaintDTO struct {
	ID              string       `json:"id"`
	Description     string       `json:"description"`
	DescriptionHTML string       `json:"description_html,omitempty"`
	Category        string       `json:"category"`
	Visibility      string       `json:"visibility"`
	Status          string       `json:"status"`
	Votes           int          `json:"votes"`
	HostelType      string       `json:"hostel_type"`
	Submitter       SubmitterDTO `json:"submitter"`
	ImageURL        string       `json:"image_url,omitempty"`
	ApprovedAt      *time.Time   `json:"approved_at,omitempty"`
	FixedAt         *time.Time   `json:"fixed_at,omitempty"`
	LastEditedAt    *time.Time   `json:"last_edited_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	MyVote          string       `json:"my_vote"`
	IsOwner         bool         `json:"is_owner"`
	CanEdit         bool         `json:"can_edit"`
	CanVote         bool         `json:"can_vote"`
	CanApprove      bool         `json:"can_approve"`
	CanMarkFixed    bool         `json:"can_mark_fixed"`
}

// FeedDTO is one tab of the complaint feed. Offline is set when the store
// could not be reached and the items come from the local snapshot.
type FeedDTO struct {
	Items   []*ComplaintDTO `json:"items"`
	Total   int             `json:"total"`
	Tab     string          `json:"tab,omitempty"`
	Offline bool            `json:"offline"`
}

func ToComplaintDTO(c *complaint.Complaint, viewer user.Profile, myVote vo.VoteDirection) *ComplaintDTO {
	if c == nil {
		return nil
	}
	if !myVote.IsValid() {
		myVote = vo.VoteNone
	}

	submitter := c.Submitter()
	audit := c.Audit()

	return &ComplaintDTO{
		ID:          c.SID(),
		Description: c.Description(),
		Category:    c.Category().String(),
		Visibility:  c.Visibility().String(),
		Status:      c.Status().String(),
		Votes:       c.Votes(),
		HostelType:  c.HostelType().String(),
		Submitter: SubmitterDTO{
			Name:   submitter.Name,
			Hostel: submitter.Hostel,
			Room:   submitter.Room,
		},
		ImageURL:     c.ImageURL(),
		ApprovedAt:   audit.ApprovedAt,
		FixedAt:      audit.FixedAt,
		LastEditedAt: audit.LastEditedAt,
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
		MyVote:       myVote.String(),
		IsOwner:      viewer.Owns(submitter.ID),
		CanEdit:      c.CanEdit(viewer),
		CanVote:      c.CanVote(viewer),
		CanApprove:   c.CanApprove(viewer),
		CanMarkFixed: c.CanMarkFixed(viewer),
	}
}

// ToFeedDTO converts an already filtered feed. directions maps complaint
// IDs to the viewer's votes; missing entries mean no vote.
func ToFeedDTO(feed []*complaint.Complaint, viewer user.Profile, directions map[uint]vo.VoteDirection, tab vo.Status, offline bool) *FeedDTO {
	items := mapper.MapSlice(feed, func(c *complaint.Complaint) *ComplaintDTO {
		return ToComplaintDTO(c, viewer, directions[c.ID()])
	})
	return &FeedDTO{
		Items:   items,
		Total:   len(items),
		Tab:     tab.String(),
		Offline: offline,
	}
}
