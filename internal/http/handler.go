package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/minsu/procure-budget/internal/http/middleware"
	"github.com/minsu/procure-budget/internal/model"
	"github.com/minsu/procure-budget/internal/service"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

type Handler struct {
	projects *service.ProjectService
	pos      *service.POService
	reports  *service.ReportService
	log      zerolog.Logger
}

func NewHandler(projects *service.ProjectService, pos *service.POService, reports *service.ReportService, log zerolog.Logger) *Handler {
	return &Handler{projects: projects, pos: pos, reports: reports, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.POST("/projects", h.createProject)
	protected.POST("/projects/budget-preview", h.previewBudget)
	protected.GET("/projects", h.listProjects)
	protected.GET("/projects/:id", h.getProject)
	protected.PATCH("/projects/:id/status", h.updateProjectStatus)
	protected.DELETE("/projects/:id", h.deleteProject)
	protected.GET("/projects/:id/usage", h.projectUsage)
	protected.GET("/projects/:id/pos", h.listProjectPOs)

	protected.POST("/pos", h.createPO)
	protected.GET("/pos/:id", h.getPO)
	protected.PATCH("/pos/:id/status", h.updatePOStatus)
	protected.DELETE("/pos/:id", h.deletePO)
	protected.GET("/pos/:id/document", h.poDocument)

	protected.POST("/reports/budget-status", h.budgetStatusReport)
}

type projectRequest struct {
	Manager            string `json:"manager" binding:"required"`
	AnnouncementNumber string `json:"announcement_number" binding:"required"`
	MaxBidAmount       int64  `json:"max_bid_amount" binding:"required"`
	StartDate          string `json:"start_date" binding:"required"`
	EndDate            string `json:"end_date" binding:"required"`
}

func (r projectRequest) toInput() (service.CreateProjectInput, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return service.CreateProjectInput{}, err
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return service.CreateProjectInput{}, err
	}
	return service.CreateProjectInput{
		Manager:            r.Manager,
		AnnouncementNumber: r.AnnouncementNumber,
		MaxBidAmount:       r.MaxBidAmount,
		StartDate:          start,
		EndDate:            end,
	}, nil
}

func (h *Handler) createProject(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	project, err := h.projects.CreateProject(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, projectResponse(*project))
}

func (h *Handler) previewBudget(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	budget, err := h.projects.PreviewBudget(input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, budgetResponse(budget))
}

func (h *Handler) listProjects(c *gin.Context) {
	projects, err := h.projects.ListProjects(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]gin.H, 0, len(projects))
	for _, project := range projects {
		out = append(out, projectResponse(project))
	}
	c.JSON(http.StatusOK, gin.H{"projects": out})
}

func (h *Handler) getProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	project, err := h.projects.GetProject(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectResponse(*project))
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) updateProjectStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.projects.UpdateStatus(c.Request.Context(), id, model.ProjectStatus(req.Status))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.projects.DeleteProject(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) projectUsage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	usage, err := h.projects.Usage(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"used_budget":      usage.UsedBudget,
		"remaining_budget": usage.RemainingBudget,
		"usage_percentage": usage.UsagePercentage,
	})
}

func (h *Handler) listProjectPOs(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	pos, err := h.pos.ListProjectPOs(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]gin.H, 0, len(pos))
	for _, po := range pos {
		out = append(out, poResponse(po))
	}
	c.JSON(http.StatusOK, gin.H{"pos": out})
}

type createPORequest struct {
	ProjectID          string `json:"project_id" binding:"required"`
	Amount             int64  `json:"amount" binding:"required"`
	InvoiceType        string `json:"invoice_type" binding:"required"`
	PaymentType        string `json:"payment_type" binding:"required"`
	TaxExemptConfirmed bool   `json:"tax_exempt_confirmed"`
}

func (h *Handler) createPO(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createPORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	projectID, err := uuid.Parse(strings.TrimSpace(req.ProjectID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
		return
	}

	po, err := h.pos.CreatePO(c.Request.Context(), service.CreatePOInput{
		ProjectID:          projectID,
		Amount:             req.Amount,
		InvoiceType:        model.InvoiceType(strings.ToUpper(strings.TrimSpace(req.InvoiceType))),
		PaymentType:        model.PaymentType(strings.ToUpper(strings.TrimSpace(req.PaymentType))),
		TaxExemptConfirmed: req.TaxExemptConfirmed,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, poResponse(*po))
}

func (h *Handler) getPO(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	po, err := h.pos.GetPO(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, poResponse(*po))
}

func (h *Handler) updatePOStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.pos.UpdateStatus(c.Request.Context(), id, model.POStatus(req.Status)); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deletePO(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.pos.DeletePO(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) poDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := h.pos.GenerateDocument(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, pdfContentType, result.Content)
}

type budgetReportRequest struct {
	Status   string `json:"status"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

func (h *Handler) budgetStatusReport(c *gin.Context) {
	var req budgetReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.BudgetReportInput{Status: model.ProjectStatus(req.Status)}
	if req.FromDate != "" {
		from, err := parseDate(req.FromDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from_date"})
			return
		}
		input.FromDate = &from
	}
	if req.ToDate != "" {
		to, err := parseDate(req.ToDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to_date"})
			return
		}
		input.ToDate = &to
	}

	result, err := h.reports.GenerateBudgetReport(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, xlsxContentType, result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var exceeded *service.BudgetExceededError
	switch {
	case errors.As(err, &exceeded):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   exceeded.Error(),
			"ceiling": exceeded.Ceiling,
		})
	case errors.Is(err, service.ErrTaxExemptUnconfirmed):
		c.JSON(http.StatusConflict, gin.H{
			"error":                 err.Error(),
			"confirmation_required": true,
		})
	case errors.Is(err, service.ErrBudgetMissing):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func projectResponse(project model.Project) gin.H {
	out := gin.H{
		"id":                  project.ID,
		"project_number":      project.ProjectNumber,
		"manager":             project.Manager,
		"announcement_number": project.AnnouncementNumber,
		"max_bid_amount":      project.MaxBidAmount,
		"start_date":          project.StartDate.Format("2006-01-02"),
		"end_date":            project.EndDate.Format("2006-01-02"),
		"status":              project.Status,
		"created_at":          project.CreatedAt,
	}
	if project.Budget != nil {
		out["budget"] = budgetResponse(project.Budget)
	}
	return out
}

func budgetResponse(budget *model.Budget) gin.H {
	return gin.H{
		"expected_bid_amount": budget.ExpectedBidAmount,
		"vat_excluded":        budget.VatExcluded,
		"agency_fee":          budget.AgencyFee,
		"company_margin":      budget.CompanyMargin,
		"internal_labor":      budget.InternalLabor,
		"internal_labor_rate": budget.InternalLaborRate,
		"available_budget":    budget.AvailableBudget,
	}
}

func poResponse(po model.PurchaseOrder) gin.H {
	return gin.H{
		"id":               po.ID,
		"project_id":       po.ProjectID,
		"po_number":        po.PONumber,
		"amount":           po.Amount,
		"invoice_type":     po.InvoiceType,
		"supply_amount":    po.SupplyAmount,
		"tax_amount":       po.TaxAmount,
		"deduction_amount": po.DeductionAmount,
		"payment_type":     po.PaymentType,
		"status":           po.Status,
		"created_at":       po.CreatedAt,
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
