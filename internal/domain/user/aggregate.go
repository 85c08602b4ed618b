package user

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
	"github.com/fixora-app/fixora/internal/shared/biztime"
	"github.com/fixora-app/fixora/internal/shared/id"
)

// User is an account that can sign in: a student, a warden or a staff member.
type User struct {
	id           uint
	sid          string
	email        *vo.Email
	name         string
	passwordHash string
	role         Role
	hostel       vo.Hostel
	room         string
	hostelGender vo.Wing
	department   vo.Department
	createdAt    time.Time
	updatedAt    time.Time
	version      int
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// NewStudent registers a student. The wing is derived from the hostel.
func NewStudent(email *vo.Email, name string, hostel vo.Hostel, room string, passwordHash string) (*User, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if !email.IsStudentEmail() {
		return nil, fmt.Errorf("student email must be a matriculation address")
	}
	if !hostel.IsValid() {
		return nil, fmt.Errorf("invalid hostel: %s", hostel)
	}
	room = strings.TrimSpace(room)
	if room == "" {
		return nil, fmt.Errorf("room is required")
	}

	u, err := newUser(email, name, Student(), passwordHash)
	if err != nil {
		return nil, err
	}
	u.hostel = hostel
	u.room = room
	u.hostelGender = hostel.Wing()
	return u, nil
}

// NewWarden creates a warden account bound to one wing.
func NewWarden(email *vo.Email, name string, wing vo.Wing, passwordHash string) (*User, error) {
	role, err := Warden(wing)
	if err != nil {
		return nil, err
	}
	u, err := newUser(email, name, role, passwordHash)
	if err != nil {
		return nil, err
	}
	u.hostelGender = wing
	return u, nil
}

// NewStaffMember creates a staff account. An undefined wing makes the
// member unscoped.
func NewStaffMember(email *vo.Email, name string, department vo.Department, wing vo.Wing, passwordHash string) (*User, error) {
	if !department.IsValid() {
		return nil, fmt.Errorf("invalid department: %s", department)
	}
	role, err := Staff(wing)
	if err != nil {
		return nil, err
	}
	u, err := newUser(email, name, role, passwordHash)
	if err != nil {
		return nil, err
	}
	u.department = department
	u.hostelGender = wing
	return u, nil
}

func newUser(email *vo.Email, name string, role Role, passwordHash string) (*User, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("name exceeds maximum length of 100 characters")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	sid, err := id.NewUserSID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	now := biztime.NowUTC()
	return &User{
		sid:          sid,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		hostelGender: vo.WingUndefined,
		createdAt:    now,
		updatedAt:    now,
		version:      1,
	}, nil
}

// ReconstructUser rebuilds a user from persistence
func ReconstructUser(
	id uint,
	sid string,
	email *vo.Email,
	name string,
	passwordHash string,
	role Role,
	hostel vo.Hostel,
	room string,
	hostelGender vo.Wing,
	department vo.Department,
	createdAt, updatedAt time.Time,
	version int,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("user SID is required")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role")
	}
	if !hostelGender.IsValid() {
		return nil, fmt.Errorf("invalid hostel gender: %s", hostelGender)
	}

	return &User{
		id:           id,
		sid:          sid,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		hostel:       hostel,
		room:         room,
		hostelGender: hostelGender,
		department:   department,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		version:      version,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) SID() string {
	return u.sid
}

func (u *User) Email() *vo.Email {
	return u.email
}

func (u *User) Name() string {
	return u.name
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) Hostel() vo.Hostel {
	return u.hostel
}

func (u *User) Room() string {
	return u.room
}

func (u *User) HostelGender() vo.Wing {
	return u.hostelGender
}

func (u *User) Department() vo.Department {
	return u.department
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) Version() int {
	return u.version
}

// SetID sets the user ID (only for persistence layer use)
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// VerifyPassword returns nil when plain matches the stored hash.
func (u *User) VerifyPassword(plain string, hasher PasswordHasher) error {
	if u.passwordHash == "" {
		return fmt.Errorf("user has no password set")
	}
	if err := hasher.Verify(plain, u.passwordHash); err != nil {
		return fmt.Errorf("invalid password")
	}
	return nil
}

// Profile snapshots the user as an actor for complaint decisions.
func (u *User) Profile() Profile {
	return Profile{
		ID:           u.id,
		SID:          u.sid,
		Name:         u.name,
		Role:         u.role,
		Hostel:       u.hostel,
		Room:         u.room,
		HostelGender: u.hostelGender,
	}
}
