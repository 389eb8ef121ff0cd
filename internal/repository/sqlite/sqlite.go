package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/hashimkp/pricewatch/internal/models"
)

// ProductRepository manages the durable set of tracked products.
type ProductRepository interface {
	AddProduct(ctx context.Context, product models.TrackedProduct) (models.TrackedProduct, error)
	UpdateProduct(ctx context.Context, product models.TrackedProduct) error
	RemoveProduct(ctx context.Context, id string) error
	GetProduct(ctx context.Context, id string) (models.TrackedProduct, error)
	ListProducts(ctx context.Context) ([]models.TrackedProduct, error)
}

// StateRepository manages the last-known observed state per product.
type StateRepository interface {
	GetState(ctx context.Context, productID string) (*models.ObservedState, error)
	PutState(ctx context.Context, state *models.ObservedState) error
}

// SubscriptionRepository manages the chats that receive alerts.
type SubscriptionRepository interface {
	SubscribeChat(ctx context.Context, chatID int64) error
	UnsubscribeChat(ctx context.Context, chatID int64) error
	GetSubscribedChats(ctx context.Context) ([]int64, error)
}

// Repository is the sqlite-backed store for products, observed state and
// alert subscriptions.
type Repository struct {
	db  *sql.DB
	log *slog.Logger
}

// NewRepository opens (or creates) the database file at storagePath and
// runs the schema migration.
func NewRepository(ctx context.Context, log *slog.Logger, storagePath string) (*Repository, error) {
	dtb, err := sql.Open("sqlite3", fmt.Sprintf("%s?_pragma=foreign_keys(1)", storagePath))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Check if the connection is actually established.
	if err = dtb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("unable to establish connection to database: %w", err)
	}

	// Perform the initial schema migration.
	if err = initSchema(ctx, dtb); err != nil {
		return nil, fmt.Errorf("DB schema initialization error: %w", err)
	}

	return &Repository{db: dtb, log: log}, nil
}

// NewForTest wraps an existing database handle without running the schema
// migration. Intended for tests that mock the connection.
func NewForTest(dtb *sql.DB) *Repository {
	return &Repository{db: dtb, log: slog.Default()}
}

// initSchema creates the necessary tables if they don't already exist.
func initSchema(ctx context.Context, dtb *sql.DB) error {
	const migrationQuery = `
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY NOT NULL,
		url TEXT NOT NULL,
		retailer TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		target_price REAL NOT NULL DEFAULT 0,
		coupon_alert INTEGER NOT NULL DEFAULT 0,
		tag TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS observed_state (
		product_id TEXT PRIMARY KEY NOT NULL,
		last_price REAL,
		last_coupon_present INTEGER,
		below_target INTEGER NOT NULL DEFAULT 0,
		last_checked_at TIMESTAMP,
		consecutive_failures INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (product_id) REFERENCES products (id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS subscriptions (
		chat_id INTEGER PRIMARY KEY NOT NULL
	);
	`
	_, err := dtb.ExecContext(ctx, migrationQuery)
	if err != nil {
		return fmt.Errorf("failed to execute migration query: %w", err)
	}

	return nil
}

// Close closes the connection to the database.
func (r *Repository) Close() error {
	if err := r.db.Close(); err != nil {
		r.log.Error("failed to close the database", "op", "repository.sqlite.Close", "error", err)
		return fmt.Errorf("failed to close the database: %w", err)
	}

	return nil
}

// DB is a getter for database handler.
func (r *Repository) DB() *sql.DB {
	return r.db
}
