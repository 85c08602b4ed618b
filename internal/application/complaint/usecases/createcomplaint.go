package usecases

import (
	"context"

	"github.com/fixora-app/fixora/internal/application/complaint/dto"
	"github.com/fixora-app/fixora/internal/domain/complaint"
	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	"github.com/fixora-app/fixora/internal/domain/user"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

type CreateComplaintCommand struct {
	Submitter   user.Profile
	Description string
	Category    string
	Visibility  string
	Image       *ImageUpload
}

type CreateComplaintUseCase struct {
	repo     complaint.Repository
	uploader ImageUploader
	effects  sideEffects
	logger   logger.Interface
}

// NewCreateComplaintUseCase accepts a nil uploader when image storage is
// not configured; submissions with an image are then rejected.
func NewCreateComplaintUseCase(
	repo complaint.Repository,
	uploader ImageUploader,
	cache ComplaintCache,
	publisher ComplaintEventPublisher,
	logger logger.Interface,
) *CreateComplaintUseCase {
	return &CreateComplaintUseCase{
		repo:     repo,
		uploader: uploader,
		effects:  sideEffects{cache: cache, publisher: publisher, logger: logger},
		logger:   logger,
	}
}

func (uc *CreateComplaintUseCase) Execute(ctx context.Context, cmd CreateComplaintCommand) (*dto.ComplaintDTO, error) {
	uc.logger.Infow("executing create complaint use case",
		"actor_id", cmd.Submitter.ID,
		"category", cmd.Category,
		"with_image", cmd.Image != nil,
	)

	c, err := complaint.NewComplaint(complaint.NewComplaintInput{
		Description: cmd.Description,
		Category:    cmd.Category,
		Visibility:  cmd.Visibility,
	}, cmd.Submitter)
	if err != nil {
		uc.logger.Errorw("invalid complaint", "actor_id", cmd.Submitter.ID, "error", err)
		return nil, toAppError(err, "failed to create complaint")
	}

	if cmd.Image != nil {
		if uc.uploader == nil {
			return nil, errors.NewValidationError("image uploads are not enabled")
		}
		url, err := uc.uploader.UploadImage(ctx, *cmd.Image)
		if err != nil {
			uc.logger.Errorw("failed to upload complaint image", "actor_id", cmd.Submitter.ID, "error", err)
			return nil, toAppError(err, "failed to upload image")
		}
		if err := c.AttachImage(url); err != nil {
			uc.logger.Errorw("uploader returned an unusable URL", "url", url, "error", err)
			return nil, errors.NewInternalError("failed to upload image")
		}
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		uc.logger.Errorw("failed to save complaint", "complaint_sid", c.SID(), "error", err)
		return nil, toAppError(err, "failed to create complaint")
	}

	uc.effects.remember(ctx, c)
	uc.effects.announce(ctx, complaint.NewChangeEvent(c, complaint.ChangeCreated))

	uc.logger.Infow("complaint created successfully",
		"complaint_sid", c.SID(),
		"actor_id", cmd.Submitter.ID,
		"hostel_type", c.HostelType(),
	)

	return dto.ToComplaintDTO(c, cmd.Submitter, vo.VoteNone), nil
}
