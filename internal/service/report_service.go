package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/minsu/procure-budget/internal/model"
	"github.com/minsu/procure-budget/internal/repository"
)

// BudgetReportGenerator renders the budget-status workbook.
type BudgetReportGenerator interface {
	Generate(report model.BudgetStatusReport) ([]byte, error)
}

type ReportService struct {
	projects *repository.ProjectRepository
	pos      *repository.PORepository
	excel    BudgetReportGenerator
	now      func() time.Time
}

func NewReportService(projects *repository.ProjectRepository, pos *repository.PORepository, excel BudgetReportGenerator) *ReportService {
	return &ReportService{
		projects: projects,
		pos:      pos,
		excel:    excel,
		now:      time.Now,
	}
}

type BudgetReportInput struct {
	// Status filters projects; empty means all statuses.
	Status model.ProjectStatus
	// FromDate/ToDate filter on project creation time; nil means open-ended.
	FromDate *time.Time
	ToDate   *time.Time
}

type BudgetReportResult struct {
	FileName string
	Content  []byte
}

// GenerateBudgetReport builds the project budget-status workbook: one row
// per matching project with its total, used and remaining budget.
func (s *ReportService) GenerateBudgetReport(ctx context.Context, input BudgetReportInput) (*BudgetReportResult, error) {
	if input.Status != "" && !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown project status %q", ErrInvalidInput, input.Status)
	}
	if input.FromDate != nil && input.ToDate != nil && input.ToDate.Before(*input.FromDate) {
		return nil, fmt.Errorf("%w: to date must not precede from date", ErrInvalidInput)
	}

	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	report := model.BudgetStatusReport{
		GeneratedAt: s.now(),
		FromDate:    input.FromDate,
		ToDate:      input.ToDate,
	}

	for _, project := range projects {
		if input.Status != "" && project.Status != input.Status {
			continue
		}
		if input.FromDate != nil && project.CreatedAt.Before(*input.FromDate) {
			continue
		}
		if input.ToDate != nil && project.CreatedAt.After(*input.ToDate) {
			continue
		}

		row := model.BudgetStatusRow{
			ProjectNumber: project.ProjectNumber,
			Manager:       project.Manager,
			Status:        project.Status,
			CreatedAt:     project.CreatedAt,
		}

		b, err := s.projects.GetBudget(ctx, project.ID)
		switch {
		case err == nil:
			row.TotalBudget = b.AvailableBudget
		case errors.Is(err, gorm.ErrRecordNotFound):
			// projects without a budget report zeroes
		default:
			return nil, err
		}

		used, err := s.pos.SumAmountByProject(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		row.UsedBudget = used
		row.RemainingBudget = row.TotalBudget - used

		report.Rows = append(report.Rows, row)
	}

	content, err := s.excel.Generate(report)
	if err != nil {
		return nil, err
	}

	return &BudgetReportResult{
		FileName: fmt.Sprintf("budget-status-%s.xlsx", report.GeneratedAt.Format("20060102")),
		Content:  content,
	}, nil
}
