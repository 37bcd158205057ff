package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avelora/fincore/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"transaction not found", domain.ErrTransactionNotFound, http.StatusNotFound},
		{"conversion not found", domain.ErrConversionNotFound, http.StatusNotFound},
		{"account suspended", domain.ErrAccountSuspended, http.StatusConflict},
		{"not closable", domain.ErrAccountNotClosable, http.StatusConflict},
		{"already reversed", domain.ErrConversionAlreadyReversed, http.StatusConflict},
		{"asset conversion reversal", domain.ErrAssetConversionNotReversible, http.StatusConflict},
		{"same account", domain.ErrSameAccount, http.StatusBadRequest},
		{"same currency", domain.ErrSameCurrency, http.StatusBadRequest},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"invalid currency", domain.ErrInvalidCurrency, http.StatusBadRequest},
		{
			"insufficient balance",
			&domain.InsufficientBalanceError{Currency: "USD", Requested: decimal.NewFromInt(5), Available: decimal.Zero},
			http.StatusUnprocessableEntity,
		},
		{
			"insufficient bucket balance",
			&domain.InsufficientBucketBalanceError{Currency: "USD", Bucket: domain.BucketReserved},
			http.StatusUnprocessableEntity,
		},
		{
			"illegal transition",
			&domain.IllegalTransitionError{Entity: "transaction", From: "failed", To: "completed"},
			http.StatusConflict,
		},
		{
			"conversion failed",
			&domain.ConversionFailedError{Reason: "rate lookup failed"},
			http.StatusBadGateway,
		},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseTimeQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/analytics?from=2026-01-02T00:00:00Z&bad=yesterday", nil)

	from := parseTimeQuery(req, "from")
	want := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	if !from.Equal(want) {
		t.Fatalf("expected %s, got %s", want, from)
	}

	if !parseTimeQuery(req, "bad").IsZero() {
		t.Fatal("expected zero time for unparseable value")
	}

	if !parseTimeQuery(req, "missing").IsZero() {
		t.Fatal("expected zero time for missing value")
	}
}
