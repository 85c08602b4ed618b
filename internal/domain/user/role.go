package user

import (
	"fmt"

	vo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
)

// RoleKind is the variant tag of Role.
type RoleKind string

const (
	RoleKindStudent RoleKind = "student"
	RoleKindWarden  RoleKind = "warden"
	RoleKindStaff   RoleKind = "staff"
)

// Role is a closed variant: Student, Warden{wing: Male|Female} or
// Staff{wing: Male|Female|Undefined}. The zero value is not a valid role;
// build one with Student, Warden, Staff or ParseRole.
type Role struct {
	kind RoleKind
	wing vo.Wing
}

func Student() Role {
	return Role{kind: RoleKindStudent, wing: vo.WingUndefined}
}

// Warden builds a warden role. Wardens are always bound to a wing.
func Warden(wing vo.Wing) (Role, error) {
	if !wing.IsDefined() {
		return Role{}, fmt.Errorf("warden role requires a male or female wing")
	}
	return Role{kind: RoleKindWarden, wing: wing}, nil
}

// Staff builds a staff role. An undefined wing makes the role unscoped.
func Staff(wing vo.Wing) (Role, error) {
	if !wing.IsValid() {
		return Role{}, fmt.Errorf("invalid staff wing: %s", wing)
	}
	return Role{kind: RoleKindStaff, wing: wing}, nil
}

// ParseRole reads the persisted role string. The legacy wardenB/wardenF
// spellings are accepted; a bare "warden" is rejected because it carries
// no wing.
func ParseRole(s string) (Role, error) {
	switch s {
	case "student":
		return Student(), nil
	case "wardenMale", "wardenB":
		return Warden(vo.WingMale)
	case "wardenFemale", "wardenF":
		return Warden(vo.WingFemale)
	case "staff":
		return Staff(vo.WingUndefined)
	case "staffMale":
		return Staff(vo.WingMale)
	case "staffFemale":
		return Staff(vo.WingFemale)
	default:
		return Role{}, fmt.Errorf("invalid role: %q", s)
	}
}

// String returns the canonical persisted form.
func (r Role) String() string {
	switch r.kind {
	case RoleKindStudent:
		return "student"
	case RoleKindWarden:
		return "warden" + wingSuffix(r.wing)
	case RoleKindStaff:
		return "staff" + wingSuffix(r.wing)
	default:
		return ""
	}
}

func wingSuffix(w vo.Wing) string {
	switch w {
	case vo.WingMale:
		return "Male"
	case vo.WingFemale:
		return "Female"
	default:
		return ""
	}
}

func (r Role) Kind() RoleKind {
	return r.kind
}

// Wing is undefined for students and unscoped staff.
func (r Role) Wing() vo.Wing {
	return r.wing
}

func (r Role) IsValid() bool {
	switch r.kind {
	case RoleKindStudent:
		return true
	case RoleKindWarden:
		return r.wing.IsDefined()
	case RoleKindStaff:
		return r.wing.IsValid()
	default:
		return false
	}
}

func (r Role) IsStudent() bool {
	return r.kind == RoleKindStudent
}

func (r Role) IsWarden() bool {
	return r.kind == RoleKindWarden
}

func (r Role) IsStaff() bool {
	return r.kind == RoleKindStaff
}

// IsWingScoped reports whether the role only oversees one wing.
func (r Role) IsWingScoped() bool {
	return (r.IsWarden() || r.IsStaff()) && r.wing.IsDefined()
}
