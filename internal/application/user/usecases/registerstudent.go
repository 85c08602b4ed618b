package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/fixora-app/fixora/internal/application/user/dto"
	"github.com/fixora-app/fixora/internal/domain/user"
	vo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

type RegisterStudentCommand struct {
	Email    string
	Name     string
	Password string
	Hostel   string
	Room     string
}

type RegisterStudentUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	tokens         TokenIssuer
	logger         logger.Interface
}

func NewRegisterStudentUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *RegisterStudentUseCase {
	return &RegisterStudentUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		tokens:         tokens,
		logger:         logger,
	}
}

// Execute creates a student account and signs the student in.
func (uc *RegisterStudentUseCase) Execute(ctx context.Context, cmd RegisterStudentCommand) (*dto.AuthDTO, error) {
	uc.logger.Infow("executing register student use case", "email", cmd.Email, "hostel", cmd.Hostel)

	email, err := vo.NewStudentEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	password, err := vo.NewPassword(cmd.Password)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	hostel, err := vo.NewHostel(cmd.Hostel)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to check email existence", "error", err)
		return nil, errors.NewInternalError("failed to register")
	}
	if exists {
		return nil, errors.NewConflictError(fmt.Sprintf("an account for %s already exists", email.String()))
	}

	hash, err := uc.passwordHasher.Hash(password.String())
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to register")
	}

	student, err := user.NewStudent(email, cmd.Name, hostel, cmd.Room, hash)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, student); err != nil {
		if stderrors.Is(err, user.ErrEmailTaken) {
			return nil, errors.NewConflictError(fmt.Sprintf("an account for %s already exists", email.String()))
		}
		uc.logger.Errorw("failed to create student", "error", err)
		return nil, errors.NewInternalError("failed to register")
	}

	uc.logger.Infow("student registered successfully", "user_id", student.ID(), "hostel", hostel)

	return issue(uc.tokens, uc.logger, student)
}
