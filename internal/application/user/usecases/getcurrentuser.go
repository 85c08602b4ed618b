package usecases

import (
	"context"
	stderrors "errors"

	"github.com/fixora-app/fixora/internal/application/user/dto"
	"github.com/fixora-app/fixora/internal/domain/user"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

type GetCurrentUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetCurrentUserUseCase(userRepo user.Repository, logger logger.Interface) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, userSID string) (*dto.UserDTO, error) {
	u, err := uc.load(ctx, userSID)
	if err != nil {
		return nil, err
	}
	return dto.ToUserDTO(u), nil
}

// Resolve loads the account on every request so a deleted or changed
// account takes effect before its token expires.
func (uc *GetCurrentUserUseCase) Resolve(ctx context.Context, userSID string) (user.Profile, error) {
	u, err := uc.load(ctx, userSID)
	if err != nil {
		return user.Profile{}, err
	}
	return u.Profile(), nil
}

func (uc *GetCurrentUserUseCase) load(ctx context.Context, userSID string) (*user.User, error) {
	if userSID == "" {
		return nil, errors.NewUnauthorizedError("not authenticated")
	}

	u, err := uc.userRepo.GetBySID(ctx, userSID)
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			return nil, errors.NewUnauthorizedError("account no longer exists")
		}
		uc.logger.Errorw("failed to load user", "user_sid", userSID, "error", err)
		return nil, errors.NewInternalError("failed to load user")
	}
	return u, nil
}
