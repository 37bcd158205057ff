package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/avelora/fincore/internal/adapter/http/dto"
	"github.com/avelora/fincore/internal/usecase"
)

// AnalyticsService defines the behavior needed by AnalyticsHandler.
type AnalyticsService interface {
	TransactionsByType(ctx context.Context, input usecase.DateRangeInput) ([]usecase.TransactionAggregate, error)
	TransactionsByStatus(ctx context.Context, input usecase.DateRangeInput) ([]usecase.TransactionAggregate, error)
	TransactionsByDay(ctx context.Context, input usecase.DateRangeInput) ([]usecase.TransactionAggregate, error)
	ConversionsByPair(ctx context.Context, input usecase.DateRangeInput) ([]usecase.ConversionAggregate, error)
	BalanceTotals(ctx context.Context) (map[string]decimal.Decimal, error)
}

// AnalyticsHandler serves read-only aggregation endpoints.
type AnalyticsHandler struct {
	analyticsUC AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsUC AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUC: analyticsUC}
}

func dateRangeFromRequest(r *http.Request) usecase.DateRangeInput {
	return usecase.DateRangeInput{
		AccountID: chi.URLParam(r, "id"),
		From:      parseTimeQuery(r, "from"),
		To:        parseTimeQuery(r, "to"),
	}
}

// TransactionsByType summarizes an account's transactions grouped by type.
func (h *AnalyticsHandler) TransactionsByType(w http.ResponseWriter, r *http.Request) {
	rows, err := h.analyticsUC.TransactionsByType(r.Context(), dateRangeFromRequest(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to aggregate transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AggregatesFromUseCase(rows))
}

// TransactionsByStatus summarizes an account's transactions grouped by status.
func (h *AnalyticsHandler) TransactionsByStatus(w http.ResponseWriter, r *http.Request) {
	rows, err := h.analyticsUC.TransactionsByStatus(r.Context(), dateRangeFromRequest(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to aggregate transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AggregatesFromUseCase(rows))
}

// TransactionsByDay summarizes an account's transactions grouped by day.
func (h *AnalyticsHandler) TransactionsByDay(w http.ResponseWriter, r *http.Request) {
	rows, err := h.analyticsUC.TransactionsByDay(r.Context(), dateRangeFromRequest(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to aggregate transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AggregatesFromUseCase(rows))
}

// ConversionsByPair summarizes completed conversions grouped by currency pair.
func (h *AnalyticsHandler) ConversionsByPair(w http.ResponseWriter, r *http.Request) {
	rows, err := h.analyticsUC.ConversionsByPair(r.Context(), usecase.DateRangeInput{
		From: parseTimeQuery(r, "from"),
		To:   parseTimeQuery(r, "to"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to aggregate conversions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConversionAggregatesFromUseCase(rows))
}

// BalanceTotals reports platform-wide balance totals per currency.
func (h *AnalyticsHandler) BalanceTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.analyticsUC.BalanceTotals(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to total balances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceTotalsResponse{Totals: totals})
}
