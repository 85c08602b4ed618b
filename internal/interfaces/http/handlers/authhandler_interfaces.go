package handlers

import (
	"context"

	"github.com/fixora-app/fixora/internal/application/user/dto"
	"github.com/fixora-app/fixora/internal/application/user/usecases"
)

// Use case interfaces for AuthHandler

type registerStudentUseCase interface {
	Execute(ctx context.Context, cmd usecases.RegisterStudentCommand) (*dto.AuthDTO, error)
}

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*dto.AuthDTO, error)
}

type getCurrentUserUseCase interface {
	Execute(ctx context.Context, userSID string) (*dto.UserDTO, error)
}
