package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minsu/procure-budget/internal/budget"
	"github.com/minsu/procure-budget/internal/invoice"
	"github.com/minsu/procure-budget/internal/model"
	"github.com/minsu/procure-budget/internal/numbering"
	"github.com/minsu/procure-budget/internal/repository"
)

// PODocumentGenerator renders a printable purchase-order sheet.
type PODocumentGenerator interface {
	Generate(doc model.PODocument) ([]byte, error)
}

type POService struct {
	projects *repository.ProjectRepository
	pos      *repository.PORepository
	pdf      PODocumentGenerator
	now      func() time.Time
}

func NewPOService(projects *repository.ProjectRepository, pos *repository.PORepository, pdf PODocumentGenerator) *POService {
	return &POService{
		projects: projects,
		pos:      pos,
		pdf:      pdf,
		now:      time.Now,
	}
}

type CreatePOInput struct {
	ProjectID   uuid.UUID
	Amount      int64
	InvoiceType model.InvoiceType
	PaymentType model.PaymentType
	// TaxExemptConfirmed acknowledges the tax-exempt confirmation prompt.
	// Ignored for every other invoice type.
	TaxExemptConfirmed bool
}

// CreatePO computes the net amounts for the requested tranche, validates
// them against the payment ceiling and persists the PO under the next
// per-project number.
func (s *POService) CreatePO(ctx context.Context, input CreatePOInput) (*model.PurchaseOrder, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if !input.PaymentType.Valid() {
		return nil, fmt.Errorf("%w: unknown payment type %q", ErrInvalidInput, input.PaymentType)
	}

	selection, err := invoice.Select(input.InvoiceType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if selection.PendingConfirmation() {
		if !input.TaxExemptConfirmed {
			return nil, ErrTaxExemptUnconfirmed
		}
		selection = selection.Confirm()
	}

	project, err := s.projects.Get(ctx, input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	b, err := s.projects.GetBudget(ctx, input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetMissing
		}
		return nil, err
	}

	net, err := selection.NetAmounts(input.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ceiling := budget.PaymentCeiling(
		b.VatExcluded,
		input.PaymentType.TrancheRatio(),
		budget.AgencyFeeRate,
		budget.MarginRate,
		b.InternalLaborRate/100,
	)
	if net.SupplyAmount > ceiling {
		return nil, &BudgetExceededError{Ceiling: ceiling}
	}

	po := &model.PurchaseOrder{
		ID:              uuid.New(),
		ProjectID:       project.ID,
		Amount:          input.Amount,
		InvoiceType:     selection.InvoiceType(),
		SupplyAmount:    net.SupplyAmount,
		TaxAmount:       net.TaxAmount,
		DeductionAmount: net.DeductionAmount,
		PaymentType:     input.PaymentType,
		Status:          model.POStatusPending,
		CreatedAt:       s.now(),
	}

	err = s.pos.CreateNumbered(ctx, po, func(existingCount int) string {
		return numbering.PONumber(project.ProjectNumber, existingCount)
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

func (s *POService) GetPO(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	po, err := s.pos.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return po, err
}

func (s *POService) ListProjectPOs(ctx context.Context, projectID uuid.UUID) ([]model.PurchaseOrder, error) {
	return s.pos.ListByProject(ctx, projectID)
}

func (s *POService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.POStatus) error {
	if status != model.POStatusPending && status != model.POStatusPaid {
		return fmt.Errorf("%w: unknown po status %q", ErrInvalidInput, status)
	}
	err := s.pos.UpdateStatus(ctx, id, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *POService) DeletePO(ctx context.Context, id uuid.UUID) error {
	err := s.pos.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type PODocumentResult struct {
	FileName string
	Content  []byte
}

// GenerateDocument renders the purchase-order sheet for one PO.
func (s *POService) GenerateDocument(ctx context.Context, id uuid.UUID) (*PODocumentResult, error) {
	po, err := s.GetPO(ctx, id)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.Get(ctx, po.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	b, err := s.projects.GetBudget(ctx, po.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetMissing
		}
		return nil, err
	}

	content, err := s.pdf.Generate(model.PODocument{
		PO:      *po,
		Project: *project,
		Budget:  *b,
	})
	if err != nil {
		return nil, err
	}

	return &PODocumentResult{
		FileName: fmt.Sprintf("po-%s.pdf", po.PONumber),
		Content:  content,
	}, nil
}
