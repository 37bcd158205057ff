package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avelora/fincore/internal/adapter/http/dto"
	"github.com/avelora/fincore/internal/domain"
)

type auditServiceStub struct {
	listFn  func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
	trailFn func(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

func (s *auditServiceStub) ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	return s.listFn(ctx, filter)
}

func (s *auditServiceStub) GetResourceTrail(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	return s.trailFn(ctx, resourceType, resourceID)
}

func TestAuditHandler_List(t *testing.T) {
	var captured domain.AuditFilter
	handler := NewAuditHandler(&auditServiceStub{
		listFn: func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
			captured = filter
			return []*domain.AuditLog{
				{
					ID:           "audit-1",
					UserID:       "user-1",
					Action:       "ledger.deposit",
					ResourceType: "transaction",
					ResourceID:   "txn-1",
					Status:       string(domain.AuditStatusSuccess),
					CreatedAt:    time.Now(),
				},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/audit-logs?user_id=user-1&action=ledger.deposit&limit=5", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.UserID != "user-1" || captured.Action != "ledger.deposit" || captured.Limit != 5 {
		t.Fatalf("expected filter to match query, got %+v", captured)
	}

	var resp dto.ListAuditLogsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.AuditLogs) != 1 {
		t.Fatalf("expected one audit log, got %+v", resp)
	}
	if resp.AuditLogs[0].Action != "ledger.deposit" {
		t.Fatalf("expected ledger.deposit action, got %s", resp.AuditLogs[0].Action)
	}
}

func TestAuditHandler_ResourceTrail(t *testing.T) {
	handler := NewAuditHandler(&auditServiceStub{
		trailFn: func(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
			if resourceType != "transaction" || resourceID != "txn-1" {
				t.Fatalf("expected transaction/txn-1, got %s/%s", resourceType, resourceID)
			}
			return []*domain.AuditLog{
				{ID: "audit-1", ResourceType: resourceType, ResourceID: resourceID},
				{ID: "audit-2", ResourceType: resourceType, ResourceID: resourceID},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/audit-logs/transaction/txn-1", nil)
	req = setChiURLParams(req, map[string]string{
		"resourceType": "transaction",
		"resourceID":   "txn-1",
	})
	rec := httptest.NewRecorder()

	handler.ResourceTrail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ListAuditLogsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected two audit logs, got %d", resp.Total)
	}
}
