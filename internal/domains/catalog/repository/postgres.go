package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/catalog/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresCatalogRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCatalogRepository(pool *pgxpool.Pool) CatalogRepository {
	return &postgresCatalogRepository{pool: pool}
}

const productColumns = `
	id, category_id, name, price, sale_percent, image_url,
	quantity, description, origin, is_active, is_deleted,
	created_at, updated_at
`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID,
		&p.CategoryID,
		&p.Name,
		&p.Price,
		&p.SalePercent,
		&p.ImageURL,
		&p.Quantity,
		&p.Description,
		&p.Origin,
		&p.IsActive,
		&p.IsDeleted,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// =====================================================
// PRODUCT OPERATIONS
// =====================================================

func (r *postgresCatalogRepository) GetProductByID(ctx context.Context, productID uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND is_deleted = false`

	product, err := scanProduct(r.pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by id: %w", err)
	}

	return product, nil
}

func (r *postgresCatalogRepository) GetProductByIDForUpdate(ctx context.Context, tx pgx.Tx, productID uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND is_deleted = false FOR UPDATE`

	product, err := scanProduct(tx.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product for update: %w", err)
	}

	return product, nil
}

func (r *postgresCatalogRepository) ListActiveProducts(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = true AND is_deleted = false
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}

	return products, rows.Err()
}

func (r *postgresCatalogRepository) CreateProduct(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (
			id, category_id, name, price, sale_percent, image_url,
			quantity, description, origin, is_active, is_deleted
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.ID,
		product.CategoryID,
		product.Name,
		product.Price,
		product.SalePercent,
		product.ImageURL,
		product.Quantity,
		product.Description,
		product.Origin,
		product.IsActive,
		product.IsDeleted,
	).Scan(&product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *postgresCatalogRepository) UpdateProduct(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2,
			price = $3,
			sale_percent = $4,
			image_url = $5,
			description = $6,
			origin = $7,
			is_active = $8,
			updated_at = NOW()
		WHERE id = $1 AND is_deleted = false
	`

	result, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Price,
		product.SalePercent,
		product.ImageURL,
		product.Description,
		product.Origin,
		product.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

func (r *postgresCatalogRepository) SoftDeleteProduct(ctx context.Context, productID uuid.UUID) error {
	query := `
		UPDATE products
		SET is_deleted = true, is_active = false, updated_at = NOW()
		WHERE id = $1 AND is_deleted = false
	`

	result, err := r.pool.Exec(ctx, query, productID)
	if err != nil {
		return fmt.Errorf("failed to soft delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// =====================================================
// CATEGORY OPERATIONS
// =====================================================

func (r *postgresCatalogRepository) ListCategoriesWithUnits(ctx context.Context) ([]model.CategoryWithUnits, error) {
	query := `
		SELECT c.id, c.name, c.is_active,
			u.id, u.name, cu.is_active
		FROM categories c
		LEFT JOIN category_units cu ON cu.category_id = c.id
		LEFT JOIN units u ON u.id = cu.unit_id
		WHERE c.is_active = true
		ORDER BY c.name, u.name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*model.CategoryWithUnits)
	var ordered []uuid.UUID

	for rows.Next() {
		var cat model.Category
		var unitID *uuid.UUID
		var unitName *string
		var unitActive *bool

		if err := rows.Scan(&cat.ID, &cat.Name, &cat.IsActive, &unitID, &unitName, &unitActive); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}

		entry, ok := byID[cat.ID]
		if !ok {
			entry = &model.CategoryWithUnits{Category: cat}
			byID[cat.ID] = entry
			ordered = append(ordered, cat.ID)
		}

		if unitID != nil {
			entry.Units = append(entry.Units, model.Unit{
				ID:       *unitID,
				Name:     *unitName,
				IsActive: *unitActive,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	categories := make([]model.CategoryWithUnits, 0, len(ordered))
	for _, id := range ordered {
		categories = append(categories, *byID[id])
	}

	return categories, nil
}
