package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashimkp/pricewatch/internal/models"
	"github.com/hashimkp/pricewatch/internal/repository"
)

// AddProduct inserts a new tracked product, assigning its id and creation
// timestamp. The stored product is returned.
func (r *Repository) AddProduct(ctx context.Context, product models.TrackedProduct) (models.TrackedProduct, error) {
	const opn = "repository.sqlite.AddProduct"

	product.ID = uuid.NewString()
	product.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, url, retailer, title, target_price, coupon_alert, tag, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID, product.URL, string(product.Retailer), product.Title,
		product.TargetPrice, product.CouponAlert, product.Tag, product.CreatedAt,
	)
	if err != nil {
		return models.TrackedProduct{}, fmt.Errorf("%s: failed to insert product: %w", opn, err)
	}

	return product, nil
}

// UpdateProduct replaces the mutable attributes of an existing product.
// The id and creation timestamp are never changed.
func (r *Repository) UpdateProduct(ctx context.Context, product models.TrackedProduct) error {
	const opn = "repository.sqlite.UpdateProduct"

	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET url = ?, retailer = ?, title = ?, target_price = ?, coupon_alert = ?, tag = ?
		 WHERE id = ?`,
		product.URL, string(product.Retailer), product.Title,
		product.TargetPrice, product.CouponAlert, product.Tag, product.ID,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to update product: %w", opn, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", opn, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", opn, repository.ErrProductNotFound)
	}

	return nil
}

// RemoveProduct deletes a product together with its observed state.
func (r *Repository) RemoveProduct(ctx context.Context, id string) error {
	const opn = "repository.sqlite.RemoveProduct"

	tx, err := r.db.BeginTx(ctx, nil) //nolint:varnamelen // tx its a default naming for transaction
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", opn, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit only returns sql.ErrTxDone

	// Cascade is also declared on the schema; the explicit delete keeps the
	// behavior when foreign keys are disabled on an existing database file.
	if _, err = tx.ExecContext(ctx, "DELETE FROM observed_state WHERE product_id = ?", id); err != nil {
		return fmt.Errorf("%s: failed to delete observed state: %w", opn, err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%s: failed to delete product: %w", opn, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", opn, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", opn, repository.ErrProductNotFound)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", opn, err)
	}

	return nil
}

// GetProduct returns a single tracked product by id.
func (r *Repository) GetProduct(ctx context.Context, id string) (models.TrackedProduct, error) {
	const opn = "repository.sqlite.GetProduct"

	row := r.db.QueryRowContext(ctx,
		`SELECT id, url, retailer, title, target_price, coupon_alert, tag, created_at
		 FROM products WHERE id = ?`, id)

	product, err := scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TrackedProduct{}, fmt.Errorf("%s: %w", opn, repository.ErrProductNotFound)
		}
		return models.TrackedProduct{}, fmt.Errorf("%s: failed to scan product: %w", opn, err)
	}

	return product, nil
}

// ListProducts returns the full set of tracked products. The result is a
// consistent snapshot: sqlite serves the whole query from one read point.
func (r *Repository) ListProducts(ctx context.Context) ([]models.TrackedProduct, error) {
	const opn = "repository.sqlite.ListProducts"

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, url, retailer, title, target_price, coupon_alert, tag, created_at
		 FROM products ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get products: %w", opn, err)
	}
	defer rows.Close()

	var products []models.TrackedProduct
	for rows.Next() {
		product, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan product: %w", opn, err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return products, nil
}

func scanProduct(scan func(dest ...any) error) (models.TrackedProduct, error) {
	var (
		product  models.TrackedProduct
		retailer string
	)

	err := scan(&product.ID, &product.URL, &retailer, &product.Title,
		&product.TargetPrice, &product.CouponAlert, &product.Tag, &product.CreatedAt)
	if err != nil {
		return models.TrackedProduct{}, err
	}

	product.Retailer = models.Retailer(retailer)

	return product, nil
}
