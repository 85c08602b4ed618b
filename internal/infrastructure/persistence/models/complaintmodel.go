package models

import (
	"github.com/fixora-app/fixora/internal/shared/constants"
)

type ComplaintModel struct {
	ID              uint   `gorm:"primaryKey"`
	SID             string `gorm:"column:sid;not null;size:32;uniqueIndex:idx_complaint_sid"`
	Description     string `gorm:"type:text;not null"`
	Category        string `gorm:"size:32;not null"`
	Visibility      string `gorm:"size:16;not null"`
	Status          string `gorm:"size:16;not null;index:idx_complaint_status_votes,priority:1"`
	Votes           int    `gorm:"not null;index:idx_complaint_status_votes,priority:2"`
	HostelType      string `gorm:"size:16;not null"`
	SubmitterID     uint   `gorm:"not null;index"`
	SubmitterName   string `gorm:"size:100;not null"`
	SubmitterHostel string `gorm:"size:50"`
	SubmitterRoom   string `gorm:"size:20"`
	ImageURL        string `gorm:"column:image_url;size:512"`
	ApprovedBy      *uint
	ApprovedAt      *int64
	FixedBy         *uint
	FixedAt         *int64
	LastEditedBy    *uint
	LastEditedAt    *int64
	Version         int   `gorm:"not null;default:1"`
	CreatedAt       int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt       int64 `gorm:"autoUpdateTime:milli;not null"`

	// No foreign keys: vote rows are removed together with the complaint
	// by the repository.
}

func (ComplaintModel) TableName() string {
	return constants.TableComplaints
}

// ComplaintVoteModel is one viewer's current vote on one complaint.
// An absent row means no vote.
type ComplaintVoteModel struct {
	ID          uint   `gorm:"primaryKey"`
	ComplaintID uint   `gorm:"not null;uniqueIndex:idx_complaint_vote_viewer,priority:1"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_complaint_vote_viewer,priority:2;index"`
	Direction   string `gorm:"size:8;not null"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (ComplaintVoteModel) TableName() string {
	return constants.TableComplaintVotes
}
