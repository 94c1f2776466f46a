package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minsu/procure-budget/internal/budget"
	"github.com/minsu/procure-budget/internal/model"
	"github.com/minsu/procure-budget/internal/numbering"
	"github.com/minsu/procure-budget/internal/repository"
)

type ProjectService struct {
	projects *repository.ProjectRepository
	pos      *repository.PORepository
	now      func() time.Time
}

func NewProjectService(projects *repository.ProjectRepository, pos *repository.PORepository) *ProjectService {
	return &ProjectService{
		projects: projects,
		pos:      pos,
		now:      time.Now,
	}
}

type CreateProjectInput struct {
	Manager            string
	AnnouncementNumber string
	MaxBidAmount       int64
	StartDate          time.Time
	EndDate            time.Time
}

// PreviewBudget computes the budget breakdown for a draft form without
// persisting anything, so the caller can show the result before the
// project is created.
func (s *ProjectService) PreviewBudget(input CreateProjectInput) (*model.Budget, error) {
	if err := validateProjectInput(input); err != nil {
		return nil, err
	}
	b := budget.Calculate(input.MaxBidAmount, input.StartDate, input.EndDate)
	return &b, nil
}

// CreateProject validates the draft, derives its budget and persists both
// under a freshly assigned project number.
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*model.Project, error) {
	if err := validateProjectInput(input); err != nil {
		return nil, err
	}

	now := s.now()
	b := budget.Calculate(input.MaxBidAmount, input.StartDate, input.EndDate)
	b.ID = uuid.New()
	b.CreatedAt = now

	project := &model.Project{
		ID:                 uuid.New(),
		Manager:            strings.TrimSpace(input.Manager),
		AnnouncementNumber: strings.TrimSpace(input.AnnouncementNumber),
		MaxBidAmount:       input.MaxBidAmount,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		Status:             model.ProjectStatusDraft,
		CreatedAt:          now,
	}

	err := s.projects.CreateWithBudget(ctx, project, &b, func(existingCount int) string {
		return numbering.ProjectNumber(existingCount, now)
	})
	if err != nil {
		return nil, err
	}

	project.Budget = &b
	return project, nil
}

// GetProject loads a project together with its budget.
func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	b, err := s.projects.GetBudget(ctx, id)
	switch {
	case err == nil:
		project.Budget = b
	case errors.Is(err, gorm.ErrRecordNotFound):
		// legacy rows may predate budget computation
	default:
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]model.Project, error) {
	return s.projects.List(ctx)
}

// UpdateStatus moves a project through its lifecycle. Transitions are
// driven by the caller; only the status value itself is checked.
func (s *ProjectService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ProjectStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown project status %q", ErrInvalidInput, status)
	}
	err := s.projects.UpdateStatus(ctx, id, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	err := s.projects.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type ProjectUsage struct {
	UsedBudget      int64
	RemainingBudget int64
	UsagePercentage float64
}

// Usage reports how much of the available budget the project's POs have
// consumed. Gross PO amounts are counted, matching what was requested
// rather than what is paid out.
func (s *ProjectService) Usage(ctx context.Context, projectID uuid.UUID) (*ProjectUsage, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	b, err := s.projects.GetBudget(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetMissing
		}
		return nil, err
	}

	used, err := s.pos.SumAmountByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	usage := &ProjectUsage{
		UsedBudget:      used,
		RemainingBudget: b.AvailableBudget - used,
	}
	if b.AvailableBudget > 0 {
		usage.UsagePercentage = float64(used) / float64(b.AvailableBudget) * 100
	}
	return usage, nil
}

func validateProjectInput(input CreateProjectInput) error {
	if strings.TrimSpace(input.Manager) == "" {
		return fmt.Errorf("%w: manager is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.AnnouncementNumber) == "" {
		return fmt.Errorf("%w: announcement number is required", ErrInvalidInput)
	}
	if input.MaxBidAmount <= 0 {
		return fmt.Errorf("%w: max bid amount must be positive", ErrInvalidInput)
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return fmt.Errorf("%w: contract dates are required", ErrInvalidInput)
	}
	if !input.EndDate.After(input.StartDate) {
		return fmt.Errorf("%w: end date must be after start date", ErrInvalidInput)
	}
	return nil
}
