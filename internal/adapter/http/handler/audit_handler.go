package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avelora/fincore/internal/adapter/http/dto"
	"github.com/avelora/fincore/internal/domain"
)

// AuditService defines the behavior needed by AuditHandler.
type AuditService interface {
	ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
	GetResourceTrail(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// AuditHandler serves the audit trail read endpoints.
type AuditHandler struct {
	auditUC AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditUC AuditService) *AuditHandler {
	return &AuditHandler{auditUC: auditUC}
}

// List lists audit entries matching the query filters.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.AuditFilter{
		UserID:       r.URL.Query().Get("user_id"),
		Action:       r.URL.Query().Get("action"),
		ResourceType: r.URL.Query().Get("resource_type"),
		ResourceID:   r.URL.Query().Get("resource_id"),
		Limit:        parseIntQuery(r, "limit", 20),
		Offset:       parseIntQuery(r, "offset", 0),
	}

	if from := parseTimeQuery(r, "from"); !from.IsZero() {
		filter.StartDate = &from
	}
	if to := parseTimeQuery(r, "to"); !to.IsZero() {
		filter.EndDate = &to
	}

	logs, err := h.auditUC.ListAuditLogs(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list audit logs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAuditLogsResponse{
		AuditLogs: dto.AuditLogsFromDomain(logs),
		Total:     int64(len(logs)),
	})
}

// ResourceTrail returns the audit trail of one resource.
func (h *AuditHandler) ResourceTrail(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, "resourceType")
	resourceID := chi.URLParam(r, "resourceID")

	logs, err := h.auditUC.GetResourceTrail(r.Context(), resourceType, resourceID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get audit trail", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAuditLogsResponse{
		AuditLogs: dto.AuditLogsFromDomain(logs),
		Total:     int64(len(logs)),
	})
}
