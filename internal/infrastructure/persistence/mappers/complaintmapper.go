package mappers

import (
	"fmt"

	"github.com/fixora-app/fixora/internal/domain/complaint"
	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	uservo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
	"github.com/fixora-app/fixora/internal/infrastructure/persistence/models"
	"github.com/fixora-app/fixora/internal/shared/biztime"
	"github.com/fixora-app/fixora/internal/shared/mapper"
)

// ComplaintMapper converts between the Complaint aggregate and its persistence model.
type ComplaintMapper interface {
	ToModel(c *complaint.Complaint) *models.ComplaintModel
	ToDomain(model *models.ComplaintModel) (*complaint.Complaint, error)
	ToDomainList(list []models.ComplaintModel) ([]*complaint.Complaint, error)
}

type ComplaintMapperImpl struct{}

func NewComplaintMapper() ComplaintMapper {
	return &ComplaintMapperImpl{}
}

func (m *ComplaintMapperImpl) ToModel(c *complaint.Complaint) *models.ComplaintModel {
	submitter := c.Submitter()
	audit := c.Audit()

	return &models.ComplaintModel{
		ID:              c.ID(),
		SID:             c.SID(),
		Description:     c.Description(),
		Category:        c.Category().String(),
		Visibility:      c.Visibility().String(),
		Status:          c.Status().String(),
		Votes:           c.Votes(),
		HostelType:      c.HostelType().String(),
		SubmitterID:     submitter.ID,
		SubmitterName:   submitter.Name,
		SubmitterHostel: submitter.Hostel,
		SubmitterRoom:   submitter.Room,
		ImageURL:        c.ImageURL(),
		ApprovedBy:      audit.ApprovedBy,
		ApprovedAt:      biztime.ToMillisPtr(audit.ApprovedAt),
		FixedBy:         audit.FixedBy,
		FixedAt:         biztime.ToMillisPtr(audit.FixedAt),
		LastEditedBy:    audit.LastEditedBy,
		LastEditedAt:    biztime.ToMillisPtr(audit.LastEditedAt),
		Version:         c.Version(),
		CreatedAt:       biztime.ToMillis(c.CreatedAt()),
		UpdatedAt:       biztime.ToMillis(c.UpdatedAt()),
	}
}

func (m *ComplaintMapperImpl) ToDomain(model *models.ComplaintModel) (*complaint.Complaint, error) {
	if model == nil {
		return nil, fmt.Errorf("complaint model is nil")
	}

	hostelType, err := uservo.NewWing(model.HostelType)
	if err != nil {
		return nil, fmt.Errorf("complaint %s: %w", model.SID, err)
	}

	return complaint.ReconstructComplaint(
		model.ID,
		model.SID,
		model.Description,
		vo.Category(model.Category),
		vo.Visibility(model.Visibility),
		vo.Status(model.Status),
		model.Votes,
		hostelType,
		complaint.Submitter{
			ID:     model.SubmitterID,
			Name:   model.SubmitterName,
			Hostel: model.SubmitterHostel,
			Room:   model.SubmitterRoom,
		},
		model.ImageURL,
		complaint.Audit{
			ApprovedBy:   model.ApprovedBy,
			ApprovedAt:   biztime.FromMillisPtr(model.ApprovedAt),
			FixedBy:      model.FixedBy,
			FixedAt:      biztime.FromMillisPtr(model.FixedAt),
			LastEditedBy: model.LastEditedBy,
			LastEditedAt: biztime.FromMillisPtr(model.LastEditedAt),
		},
		biztime.FromMillis(model.CreatedAt),
		biztime.FromMillis(model.UpdatedAt),
		model.Version,
	)
}

func (m *ComplaintMapperImpl) ToDomainList(list []models.ComplaintModel) ([]*complaint.Complaint, error) {
	return mapper.MapSliceWithError(list, func(model models.ComplaintModel) (*complaint.Complaint, error) {
		return m.ToDomain(&model)
	})
}
