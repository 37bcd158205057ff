package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelora/fincore/internal/domain"
	"github.com/avelora/fincore/internal/usecase"
)

// ConversionRepository implements usecase.ConversionRepository.
type ConversionRepository struct {
	pool *pgxpool.Pool
}

// NewConversionRepository creates a new ConversionRepository.
func NewConversionRepository(pool *pgxpool.Pool) *ConversionRepository {
	return &ConversionRepository{pool: pool}
}

const conversionColumns = `id, user_id, account_id, from_currency, to_currency, from_amount, to_amount,
	exchange_rate, fee, type, status, debit_transaction_id, credit_transaction_id,
	asset_token, market_data, reversal_reason, reversed_conversion_id, created_at, updated_at`

// CreateTx persists a conversion inside a unit of work.
func (r *ConversionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, conv *domain.Conversion) error {
	assetToken, marketData, err := marshalConversionDetails(conv)
	if err != nil {
		return err
	}

	_, err = txQuerier(tx).Exec(ctx, `
		INSERT INTO conversions (`+conversionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		conv.ID,
		conv.UserID,
		conv.AccountID,
		conv.FromCurrency,
		conv.ToCurrency,
		decimalToNumeric(conv.FromAmount),
		decimalToNumeric(conv.ToAmount),
		decimalToNumeric(conv.ExchangeRate),
		decimalToNumeric(conv.Fee),
		string(conv.Type),
		string(conv.Status),
		conv.DebitTransactionID,
		conv.CreditTransactionID,
		assetToken,
		marketData,
		conv.ReversalReason,
		conv.ReversedConversionID,
		conv.CreatedAt,
		conv.UpdatedAt,
	)

	return err
}

// Update rewrites the mutable fields of a conversion.
func (r *ConversionRepository) Update(ctx context.Context, tx usecase.Transaction, conv *domain.Conversion) error {
	_, err := txQuerier(tx).Exec(ctx, `
		UPDATE conversions
		SET status = $2, debit_transaction_id = $3, credit_transaction_id = $4,
		    reversal_reason = $5, reversed_conversion_id = $6, updated_at = $7
		WHERE id = $1`,
		conv.ID,
		string(conv.Status),
		conv.DebitTransactionID,
		conv.CreditTransactionID,
		conv.ReversalReason,
		conv.ReversedConversionID,
		conv.UpdatedAt,
	)

	return err
}

// GetByID retrieves a conversion by ID.
func (r *ConversionRepository) GetByID(ctx context.Context, id string) (*domain.Conversion, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+conversionColumns+` FROM conversions WHERE id = $1`, id)

	return scanConversionRow(row)
}

// GetByIDForUpdate retrieves a conversion with a FOR UPDATE lock.
func (r *ConversionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Conversion, error) {
	row := txQuerier(tx).QueryRow(ctx, `SELECT `+conversionColumns+` FROM conversions WHERE id = $1 FOR UPDATE`, id)

	return scanConversionRow(row)
}

// ListByAccount lists an account's conversions, newest first.
func (r *ConversionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Conversion, error) {
	return r.list(ctx, `
		SELECT `+conversionColumns+` FROM conversions
		WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
}

// ListByPair lists conversions for a currency pair, newest first.
func (r *ConversionRepository) ListByPair(ctx context.Context, fromCurrency, toCurrency string, limit, offset int) ([]*domain.Conversion, error) {
	return r.list(ctx, `
		SELECT `+conversionColumns+` FROM conversions
		WHERE from_currency = $1 AND to_currency = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		fromCurrency, toCurrency, limit, offset)
}

// ListByStatus lists conversions in a given status, oldest first, for
// operational sweeps.
func (r *ConversionRepository) ListByStatus(ctx context.Context, status domain.ConversionStatus, limit, offset int) ([]*domain.Conversion, error) {
	return r.list(ctx, `
		SELECT `+conversionColumns+` FROM conversions
		WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`,
		string(status), limit, offset)
}

func (r *ConversionRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Conversion, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []*domain.Conversion
	for rows.Next() {
		conv, err := scanConversion(rows)
		if err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}

	return convs, rows.Err()
}

func marshalConversionDetails(conv *domain.Conversion) ([]byte, []byte, error) {
	var assetToken, marketData []byte

	if conv.AssetToken != nil {
		var err error
		assetToken, err = json.Marshal(conv.AssetToken)
		if err != nil {
			return nil, nil, err
		}
	}

	if conv.Market != nil {
		var err error
		marketData, err = json.Marshal(conv.Market)
		if err != nil {
			return nil, nil, err
		}
	}

	return assetToken, marketData, nil
}

func scanConversionRow(row pgx.Row) (*domain.Conversion, error) {
	conv, err := scanConversion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConversionNotFound
		}

		return nil, err
	}

	return conv, nil
}

func scanConversion(row pgx.Row) (*domain.Conversion, error) {
	var (
		conv         domain.Conversion
		convType     string
		status       string
		fromAmount   pgtype.Numeric
		toAmount     pgtype.Numeric
		exchangeRate pgtype.Numeric
		fee          pgtype.Numeric
		assetToken   []byte
		marketData   []byte
	)

	err := row.Scan(
		&conv.ID,
		&conv.UserID,
		&conv.AccountID,
		&conv.FromCurrency,
		&conv.ToCurrency,
		&fromAmount,
		&toAmount,
		&exchangeRate,
		&fee,
		&convType,
		&status,
		&conv.DebitTransactionID,
		&conv.CreditTransactionID,
		&assetToken,
		&marketData,
		&conv.ReversalReason,
		&conv.ReversedConversionID,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	conv.Type = domain.ConversionType(convType)
	conv.Status = domain.ConversionStatus(status)
	conv.FromAmount = numericToDecimal(fromAmount)
	conv.ToAmount = numericToDecimal(toAmount)
	conv.ExchangeRate = numericToDecimal(exchangeRate)
	conv.Fee = numericToDecimal(fee)

	if assetToken != nil {
		conv.AssetToken = &domain.AssetTokenDetails{}
		_ = json.Unmarshal(assetToken, conv.AssetToken)
	}
	if marketData != nil {
		conv.Market = &domain.MarketData{}
		_ = json.Unmarshal(marketData, conv.Market)
	}

	return &conv, nil
}
