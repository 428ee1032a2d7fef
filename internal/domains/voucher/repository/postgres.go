package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/voucher/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresVoucherRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresVoucherRepository(pool *pgxpool.Pool) VoucherRepository {
	return &postgresVoucherRepository{pool: pool}
}

func (r *postgresVoucherRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *postgresVoucherRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	return tx.Commit(ctx)
}

func (r *postgresVoucherRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	return tx.Rollback(ctx)
}

const voucherColumns = `
	id, code, is_active, discount_type, discount_value,
	max_discount_value, quantity, start_date, end_date, created_at
`

func scanVoucher(row pgx.Row) (*model.Voucher, error) {
	var v model.Voucher
	err := row.Scan(
		&v.ID,
		&v.Code,
		&v.IsActive,
		&v.DiscountType,
		&v.DiscountValue,
		&v.MaxDiscountValue,
		&v.Quantity,
		&v.StartDate,
		&v.EndDate,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// =====================================================
// VOUCHER OPERATIONS
// =====================================================

func (r *postgresVoucherRepository) CreateVoucher(ctx context.Context, voucher *model.Voucher) error {
	query := `
		INSERT INTO vouchers (
			id, code, is_active, discount_type, discount_value,
			max_discount_value, quantity, start_date, end_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		voucher.ID,
		voucher.Code,
		voucher.IsActive,
		voucher.DiscountType,
		voucher.DiscountValue,
		voucher.MaxDiscountValue,
		voucher.Quantity,
		voucher.StartDate,
		voucher.EndDate,
	).Scan(&voucher.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on code
			return fmt.Errorf("voucher code %q already exists: %w", voucher.Code, err)
		}
		return fmt.Errorf("failed to create voucher: %w", err)
	}

	return nil
}

func (r *postgresVoucherRepository) GetVoucherByID(ctx context.Context, voucherID uuid.UUID) (*model.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE id = $1`

	voucher, err := scanVoucher(r.pool.QueryRow(ctx, query, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrVoucherNotFound
		}
		return nil, fmt.Errorf("failed to get voucher by id: %w", err)
	}

	return voucher, nil
}

func (r *postgresVoucherRepository) GetVoucherForUpdateWithTx(ctx context.Context, tx pgx.Tx, voucherID uuid.UUID) (*model.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE id = $1 FOR UPDATE`

	voucher, err := scanVoucher(tx.QueryRow(ctx, query, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrVoucherNotFound
		}
		return nil, fmt.Errorf("failed to get voucher for update: %w", err)
	}

	return voucher, nil
}

func (r *postgresVoucherRepository) DecrementQuantityWithTx(ctx context.Context, tx pgx.Tx, voucherID uuid.UUID) error {
	query := `
		UPDATE vouchers
		SET quantity = quantity - 1
		WHERE id = $1 AND quantity > 0
	`

	result, err := tx.Exec(ctx, query, voucherID)
	if err != nil {
		return fmt.Errorf("failed to decrement voucher quantity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrVoucherExhausted
	}

	return nil
}

// =====================================================
// ASSIGNMENT OPERATIONS
// =====================================================

func (r *postgresVoucherRepository) HasVoucherWithTx(ctx context.Context, tx pgx.Tx, userID, voucherID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_vouchers
			WHERE user_id = $1 AND voucher_id = $2
		)
	`

	var exists bool
	if err := tx.QueryRow(ctx, query, userID, voucherID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check voucher assignment: %w", err)
	}

	return exists, nil
}

func (r *postgresVoucherRepository) AttachVoucherWithTx(ctx context.Context, tx pgx.Tx, userID, voucherID uuid.UUID) error {
	query := `
		INSERT INTO user_vouchers (user_id, voucher_id, granted_at)
		VALUES ($1, $2, NOW())
	`

	if _, err := tx.Exec(ctx, query, userID, voucherID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique (user_id, voucher_id)
			return model.ErrAlreadyGranted
		}
		return fmt.Errorf("failed to attach voucher: %w", err)
	}

	return nil
}

func (r *postgresVoucherRepository) GetGrantedVoucherForUpdateWithTx(ctx context.Context, tx pgx.Tx, userID, voucherID uuid.UUID) (*model.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers v
		JOIN user_vouchers uv ON uv.voucher_id = v.id
		WHERE uv.user_id = $1 AND v.id = $2
		FOR UPDATE OF v
	`

	voucher, err := scanVoucher(tx.QueryRow(ctx, query, userID, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrVoucherNotGranted
		}
		return nil, fmt.Errorf("failed to get granted voucher: %w", err)
	}

	return voucher, nil
}

func (r *postgresVoucherRepository) DetachVoucherWithTx(ctx context.Context, tx pgx.Tx, userID, voucherID uuid.UUID) error {
	query := `DELETE FROM user_vouchers WHERE user_id = $1 AND voucher_id = $2`

	result, err := tx.Exec(ctx, query, userID, voucherID)
	if err != nil {
		return fmt.Errorf("failed to detach voucher: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrVoucherNotGranted
	}

	return nil
}

func (r *postgresVoucherRepository) ListVouchersByUser(ctx context.Context, userID uuid.UUID) ([]model.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers v
		JOIN user_vouchers uv ON uv.voucher_id = v.id
		WHERE uv.user_id = $1
		ORDER BY uv.granted_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []model.Voucher
	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher: %w", err)
		}
		vouchers = append(vouchers, *voucher)
	}

	return vouchers, rows.Err()
}
