package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cars-g/reporting-api/internal/api/metrics"
	"github.com/cars-g/reporting-api/internal/core/domain"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

// ReportHandler handles HTTP requests for the report lifecycle.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Create handles POST /api/reports.
//
// @Summary      File a new report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReportRequest  true  "Report details"
// @Success      201   {object}  createReportResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /api/reports [post]
func (h *ReportHandler) Create(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req createReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in := ports.CreateReportInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		IsAnonymous: req.IsAnonymous,
		ImageURLs:   req.ImageURLs,
	}
	if req.Location != nil {
		in.Location = &domain.Location{Lat: req.Location.Lat, Lng: req.Location.Lng}
	}

	report, err := h.service.Create(c.Request().Context(), caller, in)
	if err != nil {
		return err
	}
	metrics.ReportsCreatedTotal.WithLabelValues(report.Category).Inc()

	return c.JSON(http.StatusCreated, createReportResponse{
		Report:  report,
		Message: "Report created successfully",
	})
}

// List handles GET /api/reports.
//
// @Summary      List all reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        limit   query     int     false  "Page size (default 50, max 100)"
// @Param        offset  query     int     false  "Page offset"
// @Success      200     {object}  reportListResponse
// @Failure      400     {object}  map[string]any
// @Failure      403     {object}  map[string]any
// @Router       /api/reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return err
	}

	list, err := h.service.ListAll(c.Request().Context(), caller, ports.ListReportsInput{
		Status: c.QueryParam("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reportListResponse{Reports: list.Reports, Total: list.Total})
}

// ListMine handles GET /api/reports/my-reports.
//
// @Summary      List the caller's reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  reportsResponse
// @Router       /api/reports/my-reports [get]
func (h *ReportHandler) ListMine(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	reports, err := h.service.ListMine(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportsResponse{Reports: reports})
}

// ListAssigned handles GET /api/reports/assigned.
//
// @Summary      List reports assigned to the calling patrol
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  reportsResponse
// @Failure      403  {object}  map[string]any
// @Router       /api/reports/assigned [get]
func (h *ReportHandler) ListAssigned(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	reports, err := h.service.ListAssigned(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportsResponse{Reports: reports})
}

// Get handles GET /api/reports/:id.
//
// @Summary      Get a report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report id"
// @Success      200  {object}  domain.Report
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/reports/{id} [get]
func (h *ReportHandler) Get(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	report, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// UpdateStatus handles PUT /api/reports/:id/status.
//
// @Summary      Change a report's status
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Report id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  statusChangeResponse
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/reports/{id}/status [put]
func (h *ReportHandler) UpdateStatus(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Status) == "" {
		return fmt.Errorf("%w: Status is required", domain.ErrInvalidInput)
	}

	change, err := h.service.UpdateStatus(c.Request().Context(), caller, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	metrics.ReportStatusChangesTotal.WithLabelValues(string(change.Status)).Inc()
	if change.PointsAwarded {
		metrics.PointsAwardedTotal.WithLabelValues("resolution").Inc()
	}

	return c.JSON(http.StatusOK, statusChangeResponse{
		Message:       "Report status updated successfully",
		Status:        string(change.Status),
		PointsAwarded: change.PointsAwarded,
	})
}

// Assign handles PUT /api/reports/:id/assign.
//
// @Summary      Assign a report to a patrol
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Report id"
// @Param        body  body      assignReportRequest  true  "Patrol user"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /api/reports/{id}/assign [put]
func (h *ReportHandler) Assign(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req assignReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.PatrolUserID) == "" {
		return fmt.Errorf("%w: Patrol user ID is required", domain.ErrInvalidInput)
	}

	if err := h.service.Assign(c.Request().Context(), caller, c.Param("id"), req.PatrolUserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Report assigned successfully"})
}

// UpdatePriority handles PUT /api/reports/:id/priority.
//
// @Summary      Set a report's priority
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Report id"
// @Param        body  body      updatePriorityRequest  true  "Priority 1-5"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /api/reports/{id}/priority [put]
func (h *ReportHandler) UpdatePriority(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req updatePriorityRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.PriorityLevel == nil || !domain.ValidPriority(*req.PriorityLevel) {
		return fmt.Errorf("%w: Priority level must be between %d and %d", domain.ErrInvalidInput,
			domain.MinPriority, domain.MaxPriority)
	}

	if err := h.service.UpdatePriority(c.Request().Context(), caller, c.Param("id"), *req.PriorityLevel); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Report priority updated successfully"})
}

// AttachProof handles PUT /api/reports/:id/proof.
//
// @Summary      Attach proof images to a report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Report id"
// @Param        body  body      attachProofRequest  true  "Uploaded image URLs"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/reports/{id}/proof [put]
func (h *ReportHandler) AttachProof(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req attachProofRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.service.AttachProof(c.Request().Context(), caller, c.Param("id"), req.ImageURLs); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Proof images added successfully"})
}
