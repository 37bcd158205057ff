package usecase

import (
	"context"

	"github.com/avelora/fincore/internal/domain"
)

// AuditUseCase exposes the audit trail for compliance review.
type AuditUseCase struct {
	auditRepo AuditRepository
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(auditRepo AuditRepository) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo}
}

// ListAuditLogs lists audit entries matching the filter, newest first.
func (uc *AuditUseCase) ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	return uc.auditRepo.List(ctx, filter)
}

// GetResourceTrail returns every audit entry recorded against one
// resource, newest first.
func (uc *AuditUseCase) GetResourceTrail(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	return uc.auditRepo.GetByResourceID(ctx, resourceType, resourceID)
}
