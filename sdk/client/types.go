// Package client provides a Go SDK for the Fixora complaint API.
package client

import "time"

// Complaint is a complaint as seen by the authenticated user. The Can*
// flags and MyVote are computed for that user.
type Complaint struct {
	ID              string     `json:"id"`
	Description     string     `json:"description"`
	DescriptionHTML string     `json:"description_html,omitempty"`
	Category        string     `json:"category"`
	Visibility      string     `json:"visibility"`
	Status          string     `json:"status"`
	Votes           int        `json:"votes"`
	HostelType      string     `json:"hostel_type"`
	Submitter       Submitter  `json:"submitter"`
	ImageURL        string     `json:"image_url,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	FixedAt         *time.Time `json:"fixed_at,omitempty"`
	LastEditedAt    *time.Time `json:"last_edited_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	MyVote          string     `json:"my_vote"`
	IsOwner         bool       `json:"is_owner"`
	CanEdit         bool       `json:"can_edit"`
	CanVote         bool       `json:"can_vote"`
	CanApprove      bool       `json:"can_approve"`
	CanMarkFixed    bool       `json:"can_mark_fixed"`
}

type Submitter struct {
	Name   string `json:"name"`
	Hostel string `json:"hostel"`
	Room   string `json:"room"`
}

// Feed is one tab of the complaint feed.
type Feed struct {
	Items   []*Complaint `json:"items"`
	Total   int          `json:"total"`
	Tab     string       `json:"tab,omitempty"`
	Offline bool         `json:"offline"`
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Hostel       string    `json:"hostel,omitempty"`
	Room         string    `json:"room,omitempty"`
	HostelGender string    `json:"hostel_gender"`
	Department   string    `json:"department,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is returned by Login and Register.
type Session struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Hostel   string `json:"hostel"`
	Room     string `json:"room"`
}

type NewComplaint struct {
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Visibility  string `json:"visibility,omitempty"`
}

// ComplaintPatch changes only the non-nil fields.
type ComplaintPatch struct {
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Visibility  *string `json:"visibility,omitempty"`
}

// VoteResult reports the tally after a vote. Direction is "none" when the
// call withdrew the previous vote.
type VoteResult struct {
	ID        string `json:"id"`
	Votes     int    `json:"votes"`
	Direction string `json:"direction"`
	Applied   bool   `json:"applied"`
}

// Feed tabs
const (
	TabSubmitted = "submitted"
	TabApproved  = "approved"
	TabFixed     = "fixed"
)

// Vote directions
const (
	VoteUp   = "up"
	VoteDown = "down"
)

type apiResponse struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorInfo `json:"error,omitempty"`
	Message string     `json:"message,omitempty"`
}

type errorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
