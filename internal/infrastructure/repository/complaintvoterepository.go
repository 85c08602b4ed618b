package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	"github.com/fixora-app/fixora/internal/infrastructure/persistence/models"
	"github.com/fixora-app/fixora/internal/shared/biztime"
	db "github.com/fixora-app/fixora/internal/shared/db"
)

// ComplaintVoteRepository keeps each viewer's current vote direction.
type ComplaintVoteRepository struct {
	db *gorm.DB
}

func NewComplaintVoteRepository(db *gorm.DB) *ComplaintVoteRepository {
	return &ComplaintVoteRepository{db: db}
}

func (r *ComplaintVoteRepository) GetDirection(ctx context.Context, complaintID, userID uint) (vo.VoteDirection, error) {
	var model models.ComplaintVoteModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Where("complaint_id = ? AND user_id = ?", complaintID, userID).First(&model).Error
	if err != nil {
		if db.IsNotFound(err) {
			return vo.VoteNone, nil
		}
		return "", storeError("get vote", err)
	}

	return vo.NewVoteDirection(model.Direction)
}

func (r *ComplaintVoteRepository) GetDirections(ctx context.Context, userID uint, complaintIDs []uint) (map[uint]vo.VoteDirection, error) {
	result := make(map[uint]vo.VoteDirection, len(complaintIDs))
	if len(complaintIDs) == 0 {
		return result, nil
	}

	var list []models.ComplaintVoteModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("user_id = ? AND complaint_id IN ?", userID, complaintIDs).Find(&list).Error; err != nil {
		return nil, storeError("list votes", err)
	}

	for _, m := range list {
		d, err := vo.NewVoteDirection(m.Direction)
		if err != nil {
			return nil, err
		}
		if d.IsCast() {
			result[m.ComplaintID] = d
		}
	}
	return result, nil
}

func (r *ComplaintVoteRepository) SetDirection(ctx context.Context, complaintID, userID uint, d vo.VoteDirection) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if !d.IsCast() {
		err := tx.Where("complaint_id = ? AND user_id = ?", complaintID, userID).
			Delete(&models.ComplaintVoteModel{}).Error
		if err != nil {
			return storeError("clear vote", err)
		}
		return nil
	}

	now := biztime.ToMillis(biztime.NowUTC())
	model := &models.ComplaintVoteModel{
		ComplaintID: complaintID,
		UserID:      userID,
		Direction:   d.String(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "complaint_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"direction", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return storeError("save vote", err)
	}
	return nil
}
