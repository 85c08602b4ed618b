package dto

import (
	"time"

	"github.com/fixora-app/fixora/internal/domain/user"
	"github.com/fixora-app/fixora/internal/shared/mapper"
)

// UserDTO is the public shape of an account. Hostel and room are empty for
// wardens and staff; department is empty for everyone but staff.
type UserDTO struct {
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

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:           u.SID(),
		Email:        u.Email().String(),
		Name:         u.Name(),
		Role:         u.Role().String(),
		Hostel:       u.Hostel().String(),
		Room:         u.Room(),
		HostelGender: u.HostelGender().String(),
		Department:   u.Department().String(),
		CreatedAt:    u.CreatedAt(),
	}
}

func ToUserDTOList(users []*user.User) []*UserDTO {
	return mapper.MapSlice(users, ToUserDTO)
}

// AuthDTO is returned by login and registration.
type AuthDTO struct {
	User        *UserDTO `json:"user"`
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int64    `json:"expires_in"`
}
