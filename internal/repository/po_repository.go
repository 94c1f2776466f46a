package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minsu/procure-budget/internal/model"
)

type PORepository struct {
	db *gorm.DB
}

func NewPORepository(db *gorm.DB) *PORepository {
	return &PORepository{db: db}
}

// CreateNumbered persists a purchase order, assigning its number from the
// per-project count read inside the same transaction.
func (r *PORepository) CreateNumbered(
	ctx context.Context,
	po *model.PurchaseOrder,
	numberFor func(existingCount int) string,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.PurchaseOrder{}).
			Where("project_id = ?", po.ProjectID).
			Count(&count).Error
		if err != nil {
			return err
		}
		po.PONumber = numberFor(int(count))
		return tx.Create(po).Error
	})
}

func (r *PORepository) Get(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := r.db.WithContext(ctx).First(&po, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *PORepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.PurchaseOrder, error) {
	var pos []model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&pos).Error
	if err != nil {
		return nil, err
	}
	return pos, nil
}

func (r *PORepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.POStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.PurchaseOrder{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PORepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.PurchaseOrder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumAmountByProject totals the gross amounts of every PO issued against a
// project, regardless of status.
func (r *PORepository) SumAmountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).
		Model(&model.PurchaseOrder{}).
		Where("project_id = ?", projectID).
		Select("SUM(amount)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
