package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/OnSightTeam/ordersvc/internal/models"

	// Registers the pure-Go "sqlite" driver.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on Open. The table is insert-only:
// records are never updated or deleted. Dates are stored as RFC3339 TEXT.
const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    customer TEXT    NOT NULL,
    total    REAL    NOT NULL,
    date     TEXT    NOT NULL
);
`

// SQLiteOrderRepository implements OrderRepository on a local SQLite file.
type SQLiteOrderRepository struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and applies
// the schema. WAL mode keeps order lookups from blocking the insert path.
func Open(path string) (*SQLiteOrderRepository, error) {
	// Connection state is set through _pragma query parameters;
	// busy_timeout waits for locks instead of failing fast.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &SQLiteOrderRepository{db: db}, nil
}

// Close releases the database connection.
func (r *SQLiteOrderRepository) Close() error {
	return r.db.Close()
}

// Create inserts an order record and assigns the generated id.
func (r *SQLiteOrderRepository) Create(ctx context.Context, order *models.Order) error {
	const q = `INSERT INTO orders (customer, total, date) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, q,
		order.Customer,
		order.Total,
		order.Date.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert order for %q: %w", order.Customer, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: last insert id: %w", err)
	}
	order.ID = id
	return nil
}

// GetByID returns one order record by id.
func (r *SQLiteOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	const q = `SELECT id, customer, total, date FROM orders WHERE id = ?`

	var (
		order models.Order
		date  string
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&order.ID, &order.Customer, &order.Total, &date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get order %d: %w", id, err)
	}

	order.Date, err = time.Parse(time.RFC3339Nano, date)
	if err != nil {
		return nil, fmt.Errorf("sqlite: parse date %q: %w", date, err)
	}
	return &order, nil
}
