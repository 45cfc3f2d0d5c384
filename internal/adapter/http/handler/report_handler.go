package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/avidela/rentas/internal/adapter/http/dto"
	"github.com/avidela/rentas/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	MonthlyReport(ctx context.Context, month time.Month, year int) (*usecase.MonthlyReport, error)
}

// ReportHandler handles report HTTP requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Monthly builds the building-grouped matrix for one period.
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	month := parseIntQuery(r, "month", 0)
	year := parseIntQuery(r, "year", 0)

	report, err := h.reportUC.MonthlyReport(r.Context(), time.Month(month), year)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MonthlyReportFromUseCase(report))
}
