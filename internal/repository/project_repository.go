package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minsu/procure-budget/internal/model"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// CreateWithBudget persists a project and its derived budget in one
// transaction. The project number is assigned from the count read inside
// the same transaction, so two concurrent creations cannot observe the
// same sequence value. Deleting a project shrinks the count, so a later
// creation in the same month can regenerate a number that was handed out
// before; the uq_projects_number unique index turns such a reuse into a
// failed insert instead of a duplicate.
func (r *ProjectRepository) CreateWithBudget(
	ctx context.Context,
	project *model.Project,
	budget *model.Budget,
	numberFor func(existingCount int) string,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Project{}).Count(&count).Error; err != nil {
			return err
		}
		project.ProjectNumber = numberFor(int(count))

		if err := tx.Create(project).Error; err != nil {
			return err
		}
		budget.ProjectID = project.ID
		return tx.Create(budget).Error
	})
}

func (r *ProjectRepository) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ProjectStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.Project{}).
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

// Delete removes a project together with its budget and purchase orders.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.PurchaseOrder{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Budget{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Project{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ProjectRepository) GetBudget(ctx context.Context, projectID uuid.UUID) (*model.Budget, error) {
	var budget model.Budget
	if err := r.db.WithContext(ctx).First(&budget, "project_id = ?", projectID).Error; err != nil {
		return nil, err
	}
	return &budget, nil
}
