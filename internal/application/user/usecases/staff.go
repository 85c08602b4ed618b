package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/fixora-app/fixora/internal/application/user/dto"
	"github.com/fixora-app/fixora/internal/domain/user"
	vo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

// manages reports whether warden may manage staff with the given wing:
// staff of the warden's own wing and unscoped staff.
func manages(warden user.Profile, staffWing vo.Wing) bool {
	return !staffWing.IsDefined() || staffWing == warden.Role.Wing()
}

func requireWarden(actor user.Profile) error {
	if !actor.Role.IsWarden() {
		return errors.NewForbiddenError("only wardens can manage staff")
	}
	return nil
}

type AddStaffCommand struct {
	Actor      user.Profile
	Email      string
	Name       string
	Password   string
	Department string
	// Wing defaults to the warden's wing. "undefined" creates unscoped staff.
	Wing string
}

type AddStaffUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	logger         logger.Interface
}

func NewAddStaffUseCase(userRepo user.Repository, hasher user.PasswordHasher, logger logger.Interface) *AddStaffUseCase {
	return &AddStaffUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		logger:         logger,
	}
}

func (uc *AddStaffUseCase) Execute(ctx context.Context, cmd AddStaffCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing add staff use case", "actor_id", cmd.Actor.ID, "email", cmd.Email, "department", cmd.Department)

	if err := requireWarden(cmd.Actor); err != nil {
		return nil, err
	}

	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	password, err := vo.NewPassword(cmd.Password)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	department, err := vo.NewDepartment(cmd.Department)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	wing := cmd.Actor.Role.Wing()
	if w := strings.TrimSpace(cmd.Wing); w != "" {
		wing, err = vo.NewWing(w)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if !manages(cmd.Actor, wing) {
		return nil, errors.NewForbiddenError(fmt.Sprintf("wardens cannot add staff to the %s wing", wing))
	}

	hash, err := uc.passwordHasher.Hash(password.String())
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to add staff")
	}

	member, err := user.NewStaffMember(email, cmd.Name, department, wing, hash)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, member); err != nil {
		if stderrors.Is(err, user.ErrEmailTaken) {
			return nil, errors.NewConflictError(fmt.Sprintf("an account for %s already exists", email.String()))
		}
		uc.logger.Errorw("failed to create staff member", "error", err)
		return nil, errors.NewInternalError("failed to add staff")
	}

	uc.logger.Infow("staff member added successfully",
		"actor_id", cmd.Actor.ID,
		"user_id", member.ID(),
		"role", member.Role().String(),
	)
	return dto.ToUserDTO(member), nil
}

type ListStaffUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListStaffUseCase(userRepo user.Repository, logger logger.Interface) *ListStaffUseCase {
	return &ListStaffUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Execute lists the staff the warden manages, newest first.
func (uc *ListStaffUseCase) Execute(ctx context.Context, actor user.Profile) ([]*dto.UserDTO, error) {
	uc.logger.Infow("executing list staff use case", "actor_id", actor.ID)

	if err := requireWarden(actor); err != nil {
		return nil, err
	}

	all, err := uc.userRepo.ListByRoleKind(ctx, user.RoleKindStaff)
	if err != nil {
		uc.logger.Errorw("failed to list staff", "error", err)
		return nil, errors.NewInternalError("failed to list staff")
	}

	visible := make([]*user.User, 0, len(all))
	for _, u := range all {
		if manages(actor, u.Role().Wing()) {
			visible = append(visible, u)
		}
	}
	return dto.ToUserDTOList(visible), nil
}

type RemoveStaffCommand struct {
	Actor    user.Profile
	StaffSID string
}

type RemoveStaffUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewRemoveStaffUseCase(userRepo user.Repository, logger logger.Interface) *RemoveStaffUseCase {
	return &RemoveStaffUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *RemoveStaffUseCase) Execute(ctx context.Context, cmd RemoveStaffCommand) error {
	uc.logger.Infow("executing remove staff use case", "actor_id", cmd.Actor.ID, "staff_sid", cmd.StaffSID)

	if err := requireWarden(cmd.Actor); err != nil {
		return err
	}

	member, err := uc.userRepo.GetBySID(ctx, cmd.StaffSID)
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			return errors.NewNotFoundError("staff member not found")
		}
		uc.logger.Errorw("failed to get staff member", "staff_sid", cmd.StaffSID, "error", err)
		return errors.NewInternalError("failed to remove staff")
	}
	if !member.Role().IsStaff() {
		return errors.NewNotFoundError("staff member not found")
	}
	if !manages(cmd.Actor, member.Role().Wing()) {
		return errors.NewForbiddenError("staff member belongs to another wing")
	}

	if err := uc.userRepo.Delete(ctx, member.ID()); err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			return errors.NewNotFoundError("staff member not found")
		}
		uc.logger.Errorw("failed to delete staff member", "staff_sid", cmd.StaffSID, "error", err)
		return errors.NewInternalError("failed to remove staff")
	}

	uc.logger.Infow("staff member removed successfully", "actor_id", cmd.Actor.ID, "user_id", member.ID())
	return nil
}
