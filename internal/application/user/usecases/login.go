package usecases

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/fixora-app/fixora/internal/application/user/dto"
	"github.com/fixora-app/fixora/internal/domain/user"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	tokens         TokenIssuer
	logger         logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		tokens:         tokens,
		logger:         logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*dto.AuthDTO, error) {
	email := strings.TrimSpace(cmd.Email)
	uc.logger.Infow("executing login use case", "email", email)

	if email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	existing, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			// same answer as a wrong password so the endpoint does not reveal accounts
			return nil, errors.NewInvalidCredentialsError()
		}
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, errors.NewInternalError("failed to sign in")
	}

	if err := existing.VerifyPassword(cmd.Password, uc.passwordHasher); err != nil {
		uc.logger.Warnw("login rejected", "user_id", existing.ID())
		return nil, errors.NewInvalidCredentialsError()
	}

	return issue(uc.tokens, uc.logger, existing)
}

func issue(tokens TokenIssuer, log logger.Interface, u *user.User) (*dto.AuthDTO, error) {
	pair, err := tokens.Generate(u.SID(), u.Role().String())
	if err != nil {
		log.Errorw("failed to generate token", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to sign in")
	}

	log.Infow("user signed in", "user_id", u.ID(), "role", u.Role().String())

	return &dto.AuthDTO{
		User:        dto.ToUserDTO(u),
		AccessToken: pair.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   pair.ExpiresIn,
	}, nil
}

// normalizeEmail folds the domain part the same way the Email value object
// does when accounts are stored.
func normalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + strings.ToLower(email[at:])
}
