package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/avelora/fincore/internal/adapter/http/dto"
	"github.com/avelora/fincore/internal/domain"
	"github.com/avelora/fincore/internal/usecase"
)

type accountServiceStub struct {
	openFn           func(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error)
	getFn            func(ctx context.Context, id string) (*domain.Account, error)
	getByUserFn      func(ctx context.Context, userID string) (*domain.Account, error)
	updateStatusFn   func(ctx context.Context, accountID string, status domain.AccountStatus) (*domain.Account, error)
	addCurrencyFn    func(ctx context.Context, accountID, currency string) (*domain.Account, error)
	removeCurrencyFn func(ctx context.Context, accountID, currency string) (*domain.Account, error)
	listFn           func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

func (s *accountServiceStub) OpenAccount(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error) {
	return s.openFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) GetAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	return s.getByUserFn(ctx, userID)
}

func (s *accountServiceStub) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus) (*domain.Account, error) {
	return s.updateStatusFn(ctx, accountID, status)
}

func (s *accountServiceStub) AddCurrency(ctx context.Context, accountID, currency string) (*domain.Account, error) {
	return s.addCurrencyFn(ctx, accountID, currency)
}

func (s *accountServiceStub) RemoveCurrency(ctx context.Context, accountID, currency string) (*domain.Account, error) {
	return s.removeCurrencyFn(ctx, accountID, currency)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return s.listFn(ctx, input)
}

func TestAccountHandler_Open_Success(t *testing.T) {
	account := &domain.Account{
		ID:              "acc-1",
		UserID:          "user-1",
		Status:          domain.AccountStatusActive,
		DefaultCurrency: "USD",
		Balances:        map[string]*domain.CurrencyBalance{"USD": {}},
	}

	var captured usecase.OpenAccountInput
	handler := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error) {
			captured = input
			return account, nil
		},
	})

	body, _ := json.Marshal(dto.OpenAccountRequest{
		UserID:          "user-1",
		DefaultCurrency: "USD",
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Open(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.UserID != "user-1" || captured.DefaultCurrency != "USD" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "acc-1" {
		t.Fatalf("expected account ID acc-1, got %s", resp.ID)
	}
}

func TestAccountHandler_Open_InvalidCurrency(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error) {
			return nil, domain.ErrInvalidCurrency
		},
	})

	body, _ := json.Marshal(dto.OpenAccountRequest{UserID: "user-1", DefaultCurrency: "XXX"})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Open(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_UpdateStatus(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		updateStatusFn: func(ctx context.Context, accountID string, status domain.AccountStatus) (*domain.Account, error) {
			if accountID != "acc-1" || status != domain.AccountStatusSuspended {
				t.Fatalf("unexpected call: %s %s", accountID, status)
			}
			return &domain.Account{ID: accountID, Status: status}, nil
		},
	})

	body, _ := json.Marshal(dto.UpdateAccountStatusRequest{Status: "suspended"})
	req := httptest.NewRequest(http.MethodPut, "/accounts/acc-1/status", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.UpdateStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAccountHandler_RemoveCurrency_InUse(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		removeCurrencyFn: func(ctx context.Context, accountID, currency string) (*domain.Account, error) {
			return nil, domain.ErrCurrencyInUse
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/accounts/acc-1/currencies/EUR", nil)
	req = setChiURLParams(req, map[string]string{"id": "acc-1", "currency": "EUR"})
	rec := httptest.NewRecorder()

	handler.RemoveCurrency(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAccountHandler_List(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		listFn: func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
			if input.Limit != 5 || input.Offset != 2 {
				t.Fatalf("expected limit=5 offset=2, got %+v", input)
			}
			return []*domain.Account{{ID: "acc-1"}, {ID: "acc-2"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts?limit=5&offset=2", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListAccountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(resp.Accounts))
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return setChiURLParams(r, map[string]string{key: value})
}

func setChiURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := &chi.Context{}
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
