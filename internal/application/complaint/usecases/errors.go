package usecases

import (
	"errors"

	"github.com/fixora-app/fixora/internal/domain/complaint"
	apperrors "github.com/fixora-app/fixora/internal/shared/errors"
)

// toAppError maps domain sentinels to their API error. Anything unknown
// becomes an internal error carrying fallback.
func toAppError(err error, fallback string) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, complaint.ErrInvalidComplaint):
		return apperrors.NewValidationError(err.Error())
	case errors.Is(err, complaint.ErrForbiddenTransition):
		return apperrors.NewForbiddenTransitionError(err.Error())
	case errors.Is(err, complaint.ErrForbiddenEdit):
		return apperrors.NewForbiddenEditError(err.Error())
	case errors.Is(err, complaint.ErrComplaintNotFound):
		return apperrors.NewNotFoundError("complaint not found")
	case errors.Is(err, complaint.ErrStoreUnavailable):
		return apperrors.NewStoreUnavailableError("complaint store is unavailable", "retry when the connection is back")
	default:
		return apperrors.NewInternalError(fallback)
	}
}
