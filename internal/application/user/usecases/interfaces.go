package usecases

import (
	"context"

	"github.com/fixora-app/fixora/internal/application/user/dto"
	"github.com/fixora-app/fixora/internal/domain/user"
)

// TokenPair is what a TokenIssuer hands out for a signed in user.
type TokenPair struct {
	AccessToken string
	ExpiresIn   int64
}

// TokenIssuer signs access tokens carrying the user SID and role.
type TokenIssuer interface {
	Generate(userSID string, role string) (*TokenPair, error)
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*dto.AuthDTO, error)
}

type RegisterStudentExecutor interface {
	Execute(ctx context.Context, cmd RegisterStudentCommand) (*dto.AuthDTO, error)
}

type GetCurrentUserExecutor interface {
	Execute(ctx context.Context, userSID string) (*dto.UserDTO, error)
}

// ProfileResolver turns an authenticated user SID into the actor profile
// passed to complaint decisions.
type ProfileResolver interface {
	Resolve(ctx context.Context, userSID string) (user.Profile, error)
}

type AddStaffExecutor interface {
	Execute(ctx context.Context, cmd AddStaffCommand) (*dto.UserDTO, error)
}

type ListStaffExecutor interface {
	Execute(ctx context.Context, actor user.Profile) ([]*dto.UserDTO, error)
}

type RemoveStaffExecutor interface {
	Execute(ctx context.Context, cmd RemoveStaffCommand) error
}
