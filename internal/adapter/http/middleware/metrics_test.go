package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/accounts/01ABC123", "/api/v1/accounts/:id"},
		{"/api/v1/accounts/01ABC123/deposit", "/api/v1/accounts/:id/deposit"},
		{"/api/v1/accounts/01ABC123/currencies/EUR", "/api/v1/accounts/:id/currencies/:currency"},
		{"/api/v1/transactions/01DEF456/reverse", "/api/v1/transactions/:id/reverse"},
		{"/api/v1/conversions/01GHI789", "/api/v1/conversions/:id"},
		{"/api/v1/users/user-1/account", "/api/v1/users/:id/account"},
		{"/api/v1/accounts", "/api/v1/accounts"},
		{"/health", "/health"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
