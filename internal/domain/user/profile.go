package user

import (
	vo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
)

// Profile is the acting user as seen by complaint decisions. Every
// operation receives it explicitly as its actor or viewer.
type Profile struct {
	ID           uint
	SID          string
	Name         string
	Role         Role
	Hostel       vo.Hostel
	Room         string
	HostelGender vo.Wing
}

// IsAnonymous is true for the zero Profile.
func (p Profile) IsAnonymous() bool {
	return p.ID == 0
}

// Owns reports whether the profile is the given submitter.
func (p Profile) Owns(submitterID uint) bool {
	return p.ID != 0 && p.ID == submitterID
}
