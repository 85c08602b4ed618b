package usecases

import (
	"context"
	"io"

	"github.com/fixora-app/fixora/internal/application/complaint/dto"
	"github.com/fixora-app/fixora/internal/domain/complaint"
	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
)

type CreateComplaintExecutor interface {
	Execute(ctx context.Context, cmd CreateComplaintCommand) (*dto.ComplaintDTO, error)
}

type GetComplaintExecutor interface {
	Execute(ctx context.Context, query GetComplaintQuery) (*dto.ComplaintDTO, error)
}

type ListComplaintsExecutor interface {
	Execute(ctx context.Context, query ListComplaintsQuery) (*dto.FeedDTO, error)
}

type EditComplaintExecutor interface {
	Execute(ctx context.Context, cmd EditComplaintCommand) (*dto.ComplaintDTO, error)
}

type DeleteComplaintExecutor interface {
	Execute(ctx context.Context, cmd DeleteComplaintCommand) error
}

type ApproveComplaintExecutor interface {
	Execute(ctx context.Context, cmd TransitionCommand) (*dto.ComplaintDTO, error)
}

type MarkFixedExecutor interface {
	Execute(ctx context.Context, cmd TransitionCommand) (*dto.ComplaintDTO, error)
}

type CastVoteExecutor interface {
	Execute(ctx context.Context, cmd CastVoteCommand) (*CastVoteResult, error)
}

// ComplaintCache is the local snapshot served when the store is down.
type ComplaintCache interface {
	// SaveLocal replaces the whole snapshot.
	SaveLocal(ctx context.Context, complaints []*complaint.Complaint) error
	// NeedsRefresh reports whether the snapshot is due for a SaveLocal.
	NeedsRefresh(ctx context.Context) (bool, error)
	LoadLocal(ctx context.Context) ([]*complaint.Complaint, error)
	// PutLocal inserts or replaces a single complaint.
	PutLocal(ctx context.Context, c *complaint.Complaint) error
	RemoveLocal(ctx context.Context, sid string) error
}

// VoteDirectionCache remembers each viewer's last vote per complaint.
type VoteDirectionCache interface {
	Get(ctx context.Context, sid string, viewerID uint) (vo.VoteDirection, error)
	Set(ctx context.Context, sid string, viewerID uint, d vo.VoteDirection) error
	Clear(ctx context.Context, sid string) error
}

type ComplaintEventPublisher interface {
	Publish(ctx context.Context, event complaint.ChangeEvent) error
}

// ImageUpload is a complaint photo as received from the client.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, upload ImageUpload) (string, error)
}

type DescriptionRenderer interface {
	Render(text string) (string, error)
}
