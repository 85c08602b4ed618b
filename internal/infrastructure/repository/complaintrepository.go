package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fixora-app/fixora/internal/domain/complaint"
	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	"github.com/fixora-app/fixora/internal/infrastructure/persistence/mappers"
	"github.com/fixora-app/fixora/internal/infrastructure/persistence/models"
	db "github.com/fixora-app/fixora/internal/shared/db"
)

type ComplaintRepository struct {
	db     *gorm.DB
	mapper mappers.ComplaintMapper
}

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{
		db:     db,
		mapper: mappers.NewComplaintMapper(),
	}
}

// storeError marks connectivity failures with complaint.ErrStoreUnavailable
// so callers can fall back to the local cache.
func storeError(action string, err error) error {
	if db.IsUnavailable(err) {
		return fmt.Errorf("%w: failed to %s: %v", complaint.ErrStoreUnavailable, action, err)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

func (r *ComplaintRepository) Create(ctx context.Context, c *complaint.Complaint) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return storeError("create complaint", err)
	}

	return c.SetID(model.ID)
}

func (r *ComplaintRepository) GetByID(ctx context.Context, id uint) (*complaint.Complaint, error) {
	var model models.ComplaintModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, complaint.ErrComplaintNotFound
		}
		return nil, storeError("get complaint", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ComplaintRepository) GetBySID(ctx context.Context, sid string) (*complaint.Complaint, error) {
	var model models.ComplaintModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, complaint.ErrComplaintNotFound
		}
		return nil, storeError("get complaint", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ComplaintRepository) List(ctx context.Context, filter complaint.ListFilter) ([]*complaint.Complaint, error) {
	var list []models.ComplaintModel
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ComplaintModel{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status.String())
	}

	if err := query.Order("votes DESC, created_at DESC, id DESC").Find(&list).Error; err != nil {
		return nil, storeError("list complaints", err)
	}

	return r.mapper.ToDomainList(list)
}

func (r *ComplaintRepository) Update(ctx context.Context, c *complaint.Complaint) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ComplaintModel{}).
		Where("id = ? AND status = ?", model.ID, vo.StatusSubmitted.String()).
		Updates(map[string]interface{}{
			"description":    model.Description,
			"category":       model.Category,
			"visibility":     model.Visibility,
			"last_edited_by": model.LastEditedBy,
			"last_edited_at": model.LastEditedAt,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		return storeError("update complaint", result.Error)
	}
	if result.RowsAffected == 0 {
		return missOrConflict(tx, model.ID, complaint.ErrForbiddenEdit)
	}

	return nil
}

func (r *ComplaintRepository) UpdateStatus(ctx context.Context, c *complaint.Complaint, expected vo.Status) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ComplaintModel{}).
		Where("id = ? AND status = ?", model.ID, expected.String()).
		Updates(map[string]interface{}{
			"status":      model.Status,
			"approved_by": model.ApprovedBy,
			"approved_at": model.ApprovedAt,
			"fixed_by":    model.FixedBy,
			"fixed_at":    model.FixedAt,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return storeError("update complaint status", result.Error)
	}
	if result.RowsAffected == 0 {
		return missOrConflict(tx, model.ID, complaint.ErrForbiddenTransition)
	}

	return nil
}

func (r *ComplaintRepository) LockForVote(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Model(&models.ComplaintModel{}).Select("status").Where("id = ?", id)
	// SQLite has no row locks; its writers are already serialised.
	if tx.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row struct{ Status string }
	if err := query.Take(&row).Error; err != nil {
		if db.IsNotFound(err) {
			return complaint.ErrComplaintNotFound
		}
		return storeError("lock complaint", err)
	}
	if row.Status != vo.StatusSubmitted.String() {
		return complaint.ErrVotingClosed
	}
	return nil
}

func (r *ComplaintRepository) AdjustVotes(ctx context.Context, id uint, delta int) (int, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ComplaintModel{}).
		Where("id = ? AND status = ?", id, vo.StatusSubmitted.String()).
		UpdateColumn("votes", gorm.Expr("votes + ?", delta))
	if result.Error != nil {
		return 0, storeError("adjust votes", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, missOrConflict(tx, id, complaint.ErrVotingClosed)
	}

	var votes int
	if err := tx.Model(&models.ComplaintModel{}).
		Select("votes").
		Where("id = ?", id).
		Scan(&votes).Error; err != nil {
		return 0, storeError("read votes", err)
	}

	return votes, nil
}

func (r *ComplaintRepository) Delete(ctx context.Context, id uint) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND status = ?", id, vo.StatusSubmitted.String()).
			Delete(&models.ComplaintModel{})
		if result.Error != nil {
			return storeError("delete complaint", result.Error)
		}
		if result.RowsAffected == 0 {
			return missOrConflict(tx, id, complaint.ErrForbiddenEdit)
		}

		if err := tx.Where("complaint_id = ?", id).Delete(&models.ComplaintVoteModel{}).Error; err != nil {
			return storeError("delete complaint votes", err)
		}
		return nil
	})
}

// missOrConflict tells a guarded write that matched no row because the
// complaint is gone apart from one that lost its status guard.
func missOrConflict(tx *gorm.DB, id uint, conflict error) error {
	var count int64
	err := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.ComplaintModel{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return storeError("check complaint", err)
	}
	if count == 0 {
		return complaint.ErrComplaintNotFound
	}
	return conflict
}
