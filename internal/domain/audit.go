package domain

import (
	"encoding/json"
	"time"
)

// AuditLog represents an audit trail entry for compliance and debugging.
type AuditLog struct {
	ID           string
	UserID       string // Who performed the action
	Action       string // What action (ledger.deposit, account.open, etc.)
	ResourceType string // Type of resource (account, transaction, conversion)
	ResourceID   string // ID of the resource
	RequestID    string // Request ID for tracing
	BeforeState  JSON   // State before the action
	AfterState   JSON   // State after the action
	Status       string // success, failure, error
	ErrorMessage string // If status=error, the error message
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	// Account actions
	AuditActionAccountOpen         AuditAction = "account.open"
	AuditActionAccountStatusChange AuditAction = "account.status_change"
	AuditActionCurrencyAdd         AuditAction = "account.currency_add"
	AuditActionCurrencyRemove      AuditAction = "account.currency_remove"

	// Ledger actions
	AuditActionDeposit  AuditAction = "ledger.deposit"
	AuditActionWithdraw AuditAction = "ledger.withdraw"
	AuditActionTransfer AuditAction = "ledger.transfer"
	AuditActionCharge   AuditAction = "ledger.charge"
	AuditActionReserve  AuditAction = "ledger.reserve"
	AuditActionRelease  AuditAction = "ledger.release"
	AuditActionFreeze   AuditAction = "ledger.freeze"
	AuditActionUnfreeze AuditAction = "ledger.unfreeze"

	// Conversion actions
	AuditActionConvert           AuditAction = "conversion.convert"
	AuditActionConvertAssetToken AuditAction = "conversion.convert_asset_token"
	AuditActionConversionReverse AuditAction = "conversion.reverse"
)

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
	AuditStatusError   AuditStatus = "error"
)

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter defines filters for querying audit logs
type AuditFilter struct {
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}
