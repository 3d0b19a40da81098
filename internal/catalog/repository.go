package catalog

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var migrations embed.FS

// Repository reads and maintains the products table on SQLite or PostgreSQL.
type Repository struct {
	db     *sql.DB
	driver string
}

// NewRepository opens the catalog database. driver is "sqlite" or "postgres".
func NewRepository(driver, dsn string) (*Repository, error) {
	if driver != "sqlite" && driver != "postgres" {
		return nil, fmt.Errorf("unsupported catalog driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == "sqlite" {
		// one connection keeps ":memory:" databases intact and matches sqlite's single writer
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db, driver: driver}, nil
}

func (r *Repository) RunMigrations() error {
	var (
		driver database.Driver
		err    error
	)
	switch r.driver {
	case "postgres":
		driver, err = migratepg.WithInstance(r.db, &migratepg.Config{})
	default:
		driver, err = migratesqlite.WithInstance(r.db, &migratesqlite.Config{})
	}
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	source, err := iofs.New(migrations, "migrations/"+r.driver)
	if err != nil {
		return fmt.Errorf("could not open migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, r.driver, driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

const productColumns = "id, name, description, price, image_url, stock"

func scanProduct(row interface{ Scan(...any) error }) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Stock)
	return p, err
}

func (r *Repository) GetProducts(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	products := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf("SELECT %s FROM products WHERE id IN (%s)", productColumns, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products[p.ID] = p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to query product: %w", err)
	}
	return p, nil
}

func (r *Repository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products ORDER BY id", productColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

// UpsertProduct creates or replaces a product. Callers that change a product
// must also drop it from the product cache.
func (r *Repository) UpsertProduct(ctx context.Context, p domain.Product) error {
	if p.ID == "" || p.Name == "" {
		return fmt.Errorf("%w: product id and name are required", domain.ErrValidation)
	}
	if p.Price < 0 || p.Stock < 0 {
		return fmt.Errorf("%w: price and stock must not be negative", domain.ErrValidation)
	}

	query := `
		INSERT INTO products (id, name, description, price, image_url, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			price = excluded.price,
			image_url = excluded.image_url,
			stock = excluded.stock,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Description, p.Price, p.ImageURL, p.Stock); err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
