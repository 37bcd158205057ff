package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionType distinguishes currency-to-currency conversions from
// asset-token redemptions.
type ConversionType string

const (
	ConversionTypeCurrency   ConversionType = "currency"
	ConversionTypeAssetToken ConversionType = "asset_token"
)

// ConversionStatus mirrors the joint completion of the two legs.
type ConversionStatus string

const (
	ConversionStatusProcessing ConversionStatus = "processing"
	ConversionStatusCompleted  ConversionStatus = "completed"
	ConversionStatusFailed     ConversionStatus = "failed"
	ConversionStatusReversed   ConversionStatus = "reversed"
)

// AssetTokenDetails describes the token side of an asset-token conversion.
type AssetTokenDetails struct {
	AssetID     string          `json:"asset_id"`
	TokenType   string          `json:"token_type"`
	TokenAmount decimal.Decimal `json:"token_amount"`
}

// MarketData is an optional snapshot of the rate source at conversion time.
type MarketData struct {
	SpotRate   decimal.Decimal `json:"spot_rate"`
	Spread     decimal.Decimal `json:"spread"`
	Volatility decimal.Decimal `json:"volatility"`
	Source     string          `json:"source"`
}

// Conversion pairs a debit and a credit transaction with rate and fee
// metadata. ToAmount is net of the fee.
type Conversion struct {
	ID                   string
	UserID               string
	AccountID            string
	FromCurrency         string
	ToCurrency           string
	FromAmount           decimal.Decimal
	ToAmount             decimal.Decimal
	ExchangeRate         decimal.Decimal
	Fee                  decimal.Decimal
	Type                 ConversionType
	Status               ConversionStatus
	DebitTransactionID   string
	CreditTransactionID  string
	AssetToken           *AssetTokenDetails
	Market               *MarketData
	ReversalReason       string
	ReversedConversionID *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Complete moves the conversion to COMPLETED. Legal only from PROCESSING.
func (c *Conversion) Complete(now time.Time) error {
	if c.Status != ConversionStatusProcessing {
		return &IllegalTransitionError{
			Entity: "conversion",
			From:   string(c.Status),
			To:     string(ConversionStatusCompleted),
		}
	}

	c.Status = ConversionStatusCompleted
	c.UpdatedAt = now

	return nil
}

// Fail moves the conversion to FAILED. Illegal from COMPLETED or REVERSED.
func (c *Conversion) Fail(now time.Time) error {
	if c.Status == ConversionStatusCompleted || c.Status == ConversionStatusReversed {
		return &IllegalTransitionError{
			Entity: "conversion",
			From:   string(c.Status),
			To:     string(ConversionStatusFailed),
		}
	}

	c.Status = ConversionStatusFailed
	c.UpdatedAt = now

	return nil
}

// MarkReversed records that an inverse conversion was created. Legal
// only from COMPLETED, so a conversion is reversed at most once.
func (c *Conversion) MarkReversed(reversalID, reason string, now time.Time) error {
	if c.Status == ConversionStatusReversed {
		return ErrConversionAlreadyReversed
	}

	if c.Status != ConversionStatusCompleted {
		return ErrConversionNotReversible
	}

	c.Status = ConversionStatusReversed
	c.ReversalReason = reason
	c.ReversedConversionID = &reversalID
	c.UpdatedAt = now

	return nil
}

// BuildReversal constructs the inverse conversion: currencies and
// amounts swapped, rate inverted, zero fee. Transaction ids are filled
// in by the caller once the compensating legs exist.
func (c *Conversion) BuildReversal(id, reason string, now time.Time) *Conversion {
	rate := decimal.Zero
	if c.ExchangeRate.IsPositive() {
		rate = decimal.NewFromInt(1).Div(c.ExchangeRate)
	}

	return &Conversion{
		ID:             id,
		UserID:         c.UserID,
		AccountID:      c.AccountID,
		FromCurrency:   c.ToCurrency,
		ToCurrency:     c.FromCurrency,
		FromAmount:     c.ToAmount,
		ToAmount:       c.FromAmount,
		ExchangeRate:   rate,
		Fee:            decimal.Zero,
		Type:           c.Type,
		Status:         ConversionStatusProcessing,
		ReversalReason: reason,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
