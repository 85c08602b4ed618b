package mappers

import (
	"fmt"

	"github.com/fixora-app/fixora/internal/domain/user"
	vo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
	"github.com/fixora-app/fixora/internal/infrastructure/persistence/models"
	"github.com/fixora-app/fixora/internal/shared/biztime"
)

// UserMapper converts between the User aggregate and its persistence model.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		SID:          u.SID(),
		Email:        u.Email().String(),
		Name:         u.Name(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		Hostel:       u.Hostel().String(),
		Room:         u.Room(),
		HostelGender: u.HostelGender().String(),
		Department:   u.Department().String(),
		Version:      u.Version(),
		CreatedAt:    biztime.ToMillis(u.CreatedAt()),
		UpdatedAt:    biztime.ToMillis(u.UpdatedAt()),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, fmt.Errorf("user model is nil")
	}

	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", model.SID, err)
	}
	role, err := user.ParseRole(model.Role)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", model.SID, err)
	}
	gender, err := vo.NewWing(model.HostelGender)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", model.SID, err)
	}

	return user.ReconstructUser(
		model.ID,
		model.SID,
		email,
		model.Name,
		model.PasswordHash,
		role,
		vo.Hostel(model.Hostel),
		model.Room,
		gender,
		vo.Department(model.Department),
		biztime.FromMillis(model.CreatedAt),
		biztime.FromMillis(model.UpdatedAt),
		model.Version,
	)
}
