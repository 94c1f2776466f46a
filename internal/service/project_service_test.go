package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minsu/procure-budget/internal/model"
)

func TestCreateProject_ComputesAndPersistsBudget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project, err := f.projects.CreateProject(ctx, workedExampleInput())
	require.NoError(t, err)

	assert.Equal(t, "001-2404", project.ProjectNumber)
	assert.Equal(t, model.ProjectStatusDraft, project.Status)

	require.NotNil(t, project.Budget)
	assert.Equal(t, int64(110_000_000), project.Budget.ExpectedBidAmount)
	assert.Equal(t, int64(100_000_000), project.Budget.VatExcluded)
	assert.Equal(t, int64(8_000_000), project.Budget.AgencyFee)
	assert.Equal(t, int64(10_000_000), project.Budget.CompanyMargin)
	assert.Equal(t, int64(2_250_000), project.Budget.InternalLabor)
	assert.InDelta(t, 2.25, project.Budget.InternalLaborRate, 1e-9)
	assert.Equal(t, int64(79_750_000), project.Budget.AvailableBudget)

	// the budget row survives a reload
	loaded, err := f.projects.GetProject(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Budget)
	assert.Equal(t, int64(79_750_000), loaded.Budget.AvailableBudget)
}

func TestCreateProject_SequencesNumbers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.projects.CreateProject(ctx, workedExampleInput())
	require.NoError(t, err)
	second, err := f.projects.CreateProject(ctx, workedExampleInput())
	require.NoError(t, err)

	assert.Equal(t, "001-2404", first.ProjectNumber)
	assert.Equal(t, "002-2404", second.ProjectNumber)
}

func TestCreateProject_RejectsInvalidInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for name, mutate := range map[string]func(*CreateProjectInput){
		"empty manager":      func(in *CreateProjectInput) { in.Manager = "  " },
		"empty announcement": func(in *CreateProjectInput) { in.AnnouncementNumber = " " },
		"zero amount":        func(in *CreateProjectInput) { in.MaxBidAmount = 0 },
		"negative amount":    func(in *CreateProjectInput) { in.MaxBidAmount = -1 },
		"end equals start":   func(in *CreateProjectInput) { in.EndDate = in.StartDate },
		"end before start":   func(in *CreateProjectInput) { in.EndDate = in.StartDate.AddDate(0, 0, -1) },
		"zero start date":    func(in *CreateProjectInput) { in.StartDate = time.Time{}; in.EndDate = time.Time{}.AddDate(0, 1, 0) },
	} {
		input := workedExampleInput()
		mutate(&input)
		_, err := f.projects.CreateProject(ctx, input)
		assert.ErrorIs(t, err, ErrInvalidInput, name)
	}
}

func TestPreviewBudget_DoesNotPersist(t *testing.T) {
	f := newFixture(t)

	budget, err := f.projects.PreviewBudget(workedExampleInput())
	require.NoError(t, err)
	assert.Equal(t, int64(79_750_000), budget.AvailableBudget)

	projects, err := f.projects.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project, err := f.projects.CreateProject(ctx, workedExampleInput())
	require.NoError(t, err)

	require.NoError(t, f.projects.UpdateStatus(ctx, project.ID, model.ProjectStatusActive))
	loaded, err := f.projects.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusActive, loaded.Status)

	err = f.projects.UpdateStatus(ctx, project.ID, model.ProjectStatus("archived"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = f.projects.UpdateStatus(ctx, uuid.New(), model.ProjectStatusCompleted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProject_RemovesBudgetAndPOs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project, err := f.projects.CreateProject(ctx, workedExampleInput())
	require.NoError(t, err)

	_, err = f.pos.CreatePO(ctx, CreatePOInput{
		ProjectID:   project.ID,
		Amount:      11_000_000,
		InvoiceType: model.InvoiceTaxInvoice,
		PaymentType: model.PaymentAdvance,
	})
	require.NoError(t, err)

	require.NoError(t, f.projects.DeleteProject(ctx, project.ID))

	_, err = f.projects.GetProject(ctx, project.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, f.db.Model(&model.PurchaseOrder{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, f.db.Model(&model.Budget{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUsage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project, err := f.projects.CreateProject(ctx, workedExampleInput())
	require.NoError(t, err)

	usage, err := f.projects.Usage(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), usage.UsedBudget)
	assert.Equal(t, int64(79_750_000), usage.RemainingBudget)
	assert.Zero(t, usage.UsagePercentage)

	_, err = f.pos.CreatePO(ctx, CreatePOInput{
		ProjectID:   project.ID,
		Amount:      15_950_000,
		InvoiceType: model.InvoiceTaxInvoice,
		PaymentType: model.PaymentAdvance,
	})
	require.NoError(t, err)

	usage, err = f.projects.Usage(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15_950_000), usage.UsedBudget)
	assert.Equal(t, int64(63_800_000), usage.RemainingBudget)
	assert.InDelta(t, 20.0, usage.UsagePercentage, 1e-9)

	_, err = f.projects.Usage(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsage_MissingBudget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// a project row with no budget, as an external writer could leave it
	orphan := &model.Project{
		ID:            uuid.New(),
		ProjectNumber: "099-2404",
		Manager:       "이서연",
		MaxBidAmount:  1_000_000,
		StartDate:     fixedNow,
		EndDate:       fixedNow.AddDate(0, 1, 0),
		Status:        model.ProjectStatusDraft,
		CreatedAt:     fixedNow,
	}
	require.NoError(t, f.db.Create(orphan).Error)

	_, err := f.projects.Usage(ctx, orphan.ID)
	assert.ErrorIs(t, err, ErrBudgetMissing)
}
