// Package reporthttp exposes the report read endpoint.
package reporthttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shopstack-erp/shopstack/internal/platform/httpx"
	"github.com/shopstack-erp/shopstack/internal/reports"
	"github.com/shopstack-erp/shopstack/internal/shared"
)

const requestTimeout = 10 * time.Second

// ReportService defines the report data contract used by the handler.
type ReportService interface {
	GetReport(ctx context.Context, filter reports.Filter) (reports.Report, error)
}

// Handler coordinates HTTP requests for tenant reports.
type Handler struct {
	logger   *slog.Logger
	service  ReportService
	validate *validator.Validate
}

// NewHandler constructs the reports HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

type reportQuery struct {
	Range string `validate:"omitempty,oneof=7days 30days 90days 1year"`
	Month string `validate:"omitempty,datetime=2006-01"`
}

func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	ownerID := shared.TenantFromContext(r.Context())
	if ownerID == "" {
		httpx.RespondError(w, shared.ErrTenantMissing)
		return
	}

	query := reportQuery{
		Range: r.URL.Query().Get("range"),
		Month: r.URL.Query().Get("month"),
	}
	if err := h.validate.Struct(query); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", shared.ErrValidation, err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	report, err := h.service.GetReport(ctx, reports.Filter{
		OwnerID: ownerID,
		Range:   query.Range,
		Month:   query.Month,
	})
	if err != nil {
		if errors.Is(err, shared.ErrValidation) || errors.Is(err, shared.ErrTenantMissing) {
			httpx.RespondError(w, err)
			return
		}
		h.logger.Error("load report",
			slog.String("owner_id", ownerID),
			slog.Any("error", err),
		)
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, report)
}
