package handlers

import (
	"context"

	"github.com/fixora-app/fixora/internal/application/complaint/dto"
	"github.com/fixora-app/fixora/internal/application/complaint/usecases"
)

// Use case interfaces for ComplaintHandler

type createComplaintUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateComplaintCommand) (*dto.ComplaintDTO, error)
}

type getComplaintUseCase interface {
	Execute(ctx context.Context, query usecases.GetComplaintQuery) (*dto.ComplaintDTO, error)
}

type listComplaintsUseCase interface {
	Execute(ctx context.Context, query usecases.ListComplaintsQuery) (*dto.FeedDTO, error)
}

type editComplaintUseCase interface {
	Execute(ctx context.Context, cmd usecases.EditComplaintCommand) (*dto.ComplaintDTO, error)
}

type deleteComplaintUseCase interface {
	Execute(ctx context.Context, cmd usecases.DeleteComplaintCommand) error
}

type transitionComplaintUseCase interface {
	Execute(ctx context.Context, cmd usecases.TransitionCommand) (*dto.ComplaintDTO, error)
}

type castVoteUseCase interface {
	Execute(ctx context.Context, cmd usecases.CastVoteCommand) (*usecases.CastVoteResult, error)
}

// ComplaintUseCases groups what ComplaintHandler calls.
type ComplaintUseCases struct {
	Create  createComplaintUseCase
	Get     getComplaintUseCase
	List    listComplaintsUseCase
	Edit    editComplaintUseCase
	Delete  deleteComplaintUseCase
	Approve transitionComplaintUseCase
	Fix     transitionComplaintUseCase
	Vote    castVoteUseCase
}
