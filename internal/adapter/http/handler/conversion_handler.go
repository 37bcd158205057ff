package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avelora/fincore/internal/adapter/http/dto"
	"github.com/avelora/fincore/internal/domain"
	"github.com/avelora/fincore/internal/usecase"
)

// ConversionService defines the behavior needed by ConversionHandler.
type ConversionService interface {
	ConvertCurrency(ctx context.Context, input usecase.ConvertCurrencyInput) (*domain.Conversion, error)
	ConvertAssetTokenToFiat(ctx context.Context, input usecase.ConvertAssetTokenInput) (*domain.Conversion, error)
	ReverseConversion(ctx context.Context, conversionID, reason string) (*domain.Conversion, error)
	GetConversion(ctx context.Context, id string) (*domain.Conversion, error)
	ListConversionsByAccount(ctx context.Context, input usecase.ListConversionsInput) ([]*domain.Conversion, error)
}

// ConversionHandler handles conversion-related HTTP requests.
type ConversionHandler struct {
	conversionUC ConversionService
}

// NewConversionHandler creates a new ConversionHandler.
func NewConversionHandler(conversionUC ConversionService) *ConversionHandler {
	return &ConversionHandler{conversionUC: conversionUC}
}

// ConvertCurrency converts between two currency buckets on an account.
func (h *ConversionHandler) ConvertCurrency(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	var req dto.ConvertCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	conv, err := h.conversionUC.ConvertCurrency(r.Context(), usecase.ConvertCurrencyInput{
		AccountID:    accountID,
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
		FromAmount:   req.FromAmount,
		Description:  req.Description,
	})
	if err != nil {
		writeDomainError(w, "failed to convert currency", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ConversionFromDomain(conv))
}

// ConvertAssetToken converts an asset token position to fiat.
func (h *ConversionHandler) ConvertAssetToken(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	var req dto.ConvertAssetTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	conv, err := h.conversionUC.ConvertAssetTokenToFiat(r.Context(), usecase.ConvertAssetTokenInput{
		AccountID:   accountID,
		AssetID:     req.AssetID,
		TokenType:   req.TokenType,
		TokenAmount: req.TokenAmount,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, "failed to convert asset token", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ConversionFromDomain(conv))
}

// Reverse reverses a completed conversion.
func (h *ConversionHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.ReverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reversal, err := h.conversionUC.ReverseConversion(r.Context(), id, req.Reason)
	if err != nil {
		writeDomainError(w, "failed to reverse conversion", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ConversionFromDomain(reversal))
}

// Get retrieves a conversion by ID.
func (h *ConversionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	conv, err := h.conversionUC.GetConversion(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get conversion", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ConversionFromDomain(conv))
}

// ListByAccount lists conversions for an account.
func (h *ConversionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	convs, err := h.conversionUC.ListConversionsByAccount(r.Context(), usecase.ListConversionsInput{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeDomainError(w, "failed to list conversions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListConversionsResponse{
		Conversions: dto.ConversionsFromDomain(convs),
		Total:       int64(len(convs)),
	})
}
