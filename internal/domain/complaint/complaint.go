package complaint

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	"github.com/fixora-app/fixora/internal/domain/user"
	uservo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
	"github.com/fixora-app/fixora/internal/shared/biztime"
	"github.com/fixora-app/fixora/internal/shared/id"
)

// MaxDescriptionLength is counted in characters after NFC normalization.
const MaxDescriptionLength = 500

// Submitter is the identity snapshot taken when a complaint is created.
// It records who submitted, not who that user is today.
type Submitter struct {
	ID     uint
	Name   string
	Hostel string
	Room   string
}

// Audit holds the stamps written by transitions and edits.
type Audit struct {
	ApprovedBy   *uint
	ApprovedAt   *time.Time
	FixedBy      *uint
	FixedAt      *time.Time
	LastEditedBy *uint
	LastEditedAt *time.Time
}

// Complaint is the aggregate root tracked from submission to fix.
type Complaint struct {
	id          uint
	sid         string
	description string
	category    vo.Category
	visibility  vo.Visibility
	status      vo.Status
	votes       int
	hostelType  uservo.Wing
	submitter   Submitter
	imageURL    string
	audit       Audit
	createdAt   time.Time
	updatedAt   time.Time
	version     int
}

// NewComplaintInput carries the raw fields of a submission. Empty category
// and visibility take their defaults.
type NewComplaintInput struct {
	Description string
	Category    string
	Visibility  string
}

// NewComplaint validates a submission from a student and stamps the
// initial state.
func NewComplaint(input NewComplaintInput, submitter user.Profile) (*Complaint, error) {
	if submitter.ID == 0 {
		return nil, fmt.Errorf("%w: submitter is required", ErrInvalidComplaint)
	}
	if !submitter.Role.IsStudent() {
		return nil, fmt.Errorf("%w: only students may submit complaints", ErrForbiddenEdit)
	}

	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}
	category, err := vo.NewCategory(input.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidComplaint, err)
	}
	visibility, err := vo.NewVisibility(input.Visibility)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidComplaint, err)
	}

	sid, err := id.NewComplaintSID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate complaint ID: %w", err)
	}

	hostelType := submitter.HostelGender
	if !hostelType.IsValid() {
		hostelType = uservo.WingUndefined
	}

	now := biztime.NowUTC()
	return &Complaint{
		sid:         sid,
		description: description,
		category:    category,
		visibility:  visibility,
		status:      vo.StatusSubmitted,
		votes:       0,
		hostelType:  hostelType,
		submitter: Submitter{
			ID:     submitter.ID,
			Name:   submitter.Name,
			Hostel: submitter.Hostel.String(),
			Room:   submitter.Room,
		},
		createdAt: now,
		updatedAt: now,
		version:   1,
	}, nil
}

// ReconstructComplaint rebuilds a complaint from persistence or cache.
func ReconstructComplaint(
	id uint,
	sid string,
	description string,
	category vo.Category,
	visibility vo.Visibility,
	status vo.Status,
	votes int,
	hostelType uservo.Wing,
	submitter Submitter,
	imageURL string,
	audit Audit,
	createdAt, updatedAt time.Time,
	version int,
) (*Complaint, error) {
	if sid == "" {
		return nil, fmt.Errorf("complaint SID is required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category: %s", category)
	}
	if !visibility.IsValid() {
		return nil, fmt.Errorf("invalid visibility: %s", visibility)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if !hostelType.IsValid() {
		return nil, fmt.Errorf("invalid hostel type: %s", hostelType)
	}
	if submitter.ID == 0 {
		return nil, fmt.Errorf("submitter ID cannot be zero")
	}

	return &Complaint{
		id:          id,
		sid:         sid,
		description: description,
		category:    category,
		visibility:  visibility,
		status:      status,
		votes:       votes,
		hostelType:  hostelType,
		submitter:   submitter,
		imageURL:    imageURL,
		audit:       audit,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		version:     version,
	}, nil
}

func normalizeDescription(s string) (string, error) {
	s = strings.TrimSpace(norm.NFC.String(s))
	if s == "" {
		return "", fmt.Errorf("%w: description is required", ErrInvalidComplaint)
	}
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return "", fmt.Errorf("%w: description exceeds maximum length of %d characters", ErrInvalidComplaint, MaxDescriptionLength)
	}
	return s, nil
}

func (c *Complaint) ID() uint {
	return c.id
}

func (c *Complaint) SID() string {
	return c.sid
}

func (c *Complaint) Description() string {
	return c.description
}

func (c *Complaint) Category() vo.Category {
	return c.category
}

func (c *Complaint) Visibility() vo.Visibility {
	return c.visibility
}

func (c *Complaint) Status() vo.Status {
	return c.status
}

func (c *Complaint) Votes() int {
	return c.votes
}

func (c *Complaint) HostelType() uservo.Wing {
	return c.hostelType
}

func (c *Complaint) Submitter() Submitter {
	return c.submitter
}

func (c *Complaint) SubmitterID() uint {
	return c.submitter.ID
}

func (c *Complaint) ImageURL() string {
	return c.imageURL
}

func (c *Complaint) Audit() Audit {
	return c.audit
}

func (c *Complaint) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Complaint) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Complaint) Version() int {
	return c.version
}

// SetID sets the complaint ID (only for persistence layer use)
func (c *Complaint) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("complaint ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("complaint ID cannot be zero")
	}
	c.id = id
	return nil
}

// AttachImage records the uploaded image. Only allowed before the
// complaint is first saved.
func (c *Complaint) AttachImage(imageURL string) error {
	if c.id != 0 {
		return fmt.Errorf("image can only be attached before the complaint is saved")
	}
	u, err := url.Parse(imageURL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("%w: image URL must be an absolute http(s) URL", ErrInvalidComplaint)
	}
	c.imageURL = imageURL
	return nil
}

// Approve moves a submitted complaint to approved. Only wardens may do it.
func (c *Complaint) Approve(actor user.Profile) error {
	if !actor.Role.IsWarden() {
		return fmt.Errorf("%w: only wardens may approve complaints", ErrForbiddenTransition)
	}
	if !c.status.CanTransitionTo(vo.StatusApproved) {
		return fmt.Errorf("%w: cannot approve a %s complaint", ErrForbiddenTransition, c.status)
	}

	now := biztime.NowUTC()
	actorID := actor.ID
	c.status = vo.StatusApproved
	c.audit.ApprovedBy = &actorID
	c.audit.ApprovedAt = &now
	c.updatedAt = now
	c.version++
	return nil
}

// MarkFixed moves an approved complaint to fixed. Only staff may do it.
func (c *Complaint) MarkFixed(actor user.Profile) error {
	if !actor.Role.IsStaff() {
		return fmt.Errorf("%w: only staff may mark complaints fixed", ErrForbiddenTransition)
	}
	if !c.status.CanTransitionTo(vo.StatusFixed) {
		return fmt.Errorf("%w: cannot mark a %s complaint fixed", ErrForbiddenTransition, c.status)
	}

	now := biztime.NowUTC()
	actorID := actor.ID
	c.status = vo.StatusFixed
	c.audit.FixedBy = &actorID
	c.audit.FixedAt = &now
	c.updatedAt = now
	c.version++
	return nil
}

// CanApprove reports whether Approve would succeed for actor.
func (c *Complaint) CanApprove(actor user.Profile) bool {
	return actor.Role.IsWarden() && c.status.CanTransitionTo(vo.StatusApproved)
}

// CanMarkFixed reports whether MarkFixed would succeed for actor.
func (c *Complaint) CanMarkFixed(actor user.Profile) bool {
	return actor.Role.IsStaff() && c.status.CanTransitionTo(vo.StatusFixed)
}

// CanEdit is true only for the owner while the complaint is submitted.
// Deletion uses the same rule.
func (c *Complaint) CanEdit(actor user.Profile) bool {
	return actor.Owns(c.submitter.ID) && c.status.IsSubmitted()
}

// EditPatch lists the fields an owner may change. Nil leaves a field as is.
type EditPatch struct {
	Description *string
	Category    *string
	Visibility  *string
}

func (p EditPatch) IsEmpty() bool {
	return p.Description == nil && p.Category == nil && p.Visibility == nil
}

// Edit applies patch for the owner. All fields are validated before any is
// written, so a rejected edit leaves the complaint unchanged.
func (c *Complaint) Edit(actor user.Profile, patch EditPatch) error {
	if !c.CanEdit(actor) {
		return fmt.Errorf("%w: only the owner may edit a submitted complaint", ErrForbiddenEdit)
	}
	if patch.IsEmpty() {
		return fmt.Errorf("%w: no fields to update", ErrInvalidComplaint)
	}

	description := c.description
	category := c.category
	visibility := c.visibility

	if patch.Description != nil {
		d, err := normalizeDescription(*patch.Description)
		if err != nil {
			return err
		}
		description = d
	}
	if patch.Category != nil {
		cat := vo.Category(*patch.Category)
		if !cat.IsValid() {
			return fmt.Errorf("%w: invalid category: %s", ErrInvalidComplaint, *patch.Category)
		}
		category = cat
	}
	if patch.Visibility != nil {
		v := vo.Visibility(*patch.Visibility)
		if !v.IsValid() {
			return fmt.Errorf("%w: invalid visibility: %s", ErrInvalidComplaint, *patch.Visibility)
		}
		visibility = v
	}

	now := biztime.NowUTC()
	actorID := actor.ID
	c.description = description
	c.category = category
	c.visibility = visibility
	c.audit.LastEditedBy = &actorID
	c.audit.LastEditedAt = &now
	c.updatedAt = now
	c.version++
	return nil
}

// CheckDelete returns ErrForbiddenEdit unless actor may delete the complaint.
func (c *Complaint) CheckDelete(actor user.Profile) error {
	if !c.CanEdit(actor) {
		return fmt.Errorf("%w: only the owner may delete a submitted complaint", ErrForbiddenEdit)
	}
	return nil
}
