package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/minsu/procure-budget/internal/excel"
	"github.com/minsu/procure-budget/internal/model"
	"github.com/minsu/procure-budget/internal/pdf"
	"github.com/minsu/procure-budget/internal/repository"
)

// fixedNow keeps generated project numbers stable across test runs.
var fixedNow = time.Date(2024, 4, 15, 9, 30, 0, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	projects *ProjectService
	pos      *POService
	reports  *ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	// a named shared-cache DSN keeps every pooled connection on the same
	// in-memory database, isolated per test
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&model.Project{}, &model.Budget{}, &model.PurchaseOrder{})
	require.NoError(t, err)

	projectRepo := repository.NewProjectRepository(db)
	poRepo := repository.NewPORepository(db)

	projects := NewProjectService(projectRepo, poRepo)
	projects.now = func() time.Time { return fixedNow }

	pos := NewPOService(projectRepo, poRepo, pdf.NewGenerator())
	pos.now = func() time.Time { return fixedNow }

	reports := NewReportService(projectRepo, poRepo, excel.NewGenerator())
	reports.now = func() time.Time { return fixedNow }

	return &fixture{db: db, projects: projects, pos: pos, reports: reports}
}

// workedExampleInput is the 110,000,000 won, 30-day reference project.
func workedExampleInput() CreateProjectInput {
	return CreateProjectInput{
		Manager:            "김민수",
		AnnouncementNumber: "2024-041",
		MaxBidAmount:       110_000_000,
		StartDate:          time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}
