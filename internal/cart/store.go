package cart

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SchemaVersion is stored in PRAGMA user_version. A database at any other
// version is dropped and recreated; cart contents are demo data.
const SchemaVersion = 8

const createTable = `
CREATE TABLE shopping_cart (
	id       TEXT PRIMARY KEY,
	material TEXT NOT NULL,
	color    TEXT NOT NULL,
	amount   INTEGER NOT NULL,
	unit     TEXT NOT NULL,
	quantity INTEGER NOT NULL CHECK (quantity >= 0)
)`

// Store persists products in SQLite and pushes the full product list to its
// observers after every committed change. It is safe for concurrent use.
type Store struct {
	db *sql.DB

	mu        sync.Mutex
	observers map[int]func([]Product)
	nextID    int
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cart db: %w", err)
	}
	// One connection: the writer serializes anyway, and an in-memory
	// database only exists on the connection that created it.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, observers: make(map[int]func([]Product))}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version == SchemaVersion {
		return nil
	}
	if version != 0 {
		log.Printf("Cart: schema version %d, recreating at %d", version, SchemaVersion)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer tx.Rollback()
	for _, stmt := range []string{
		"DROP TABLE IF EXISTS shopping_cart",
		createTable,
		fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion),
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Products returns every product in insertion order.
func (s *Store) Products(ctx context.Context) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, material, color, amount, unit, quantity FROM shopping_cart ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var (
			p        Product
			id, unit string
		)
		if err := rows.Scan(&id, &p.Material, &p.Color, &p.Amount, &unit, &p.Quantity); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if p.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("decode product %q: %w", id, err)
		}
		if p.Unit, err = ParseUnit(unit); err != nil {
			return nil, fmt.Errorf("decode product %s: %w", id, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	return out, nil
}

// Insert adds products. A product whose ID already exists is skipped.
func (s *Store) Insert(ctx context.Context, products ...Product) error {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		return insertTx(ctx, tx, products)
	})
	return s.committed(ctx, err)
}

// Update replaces the row with p's ID. Updating a missing row does nothing.
func (s *Store) Update(ctx context.Context, p Product) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE shopping_cart SET material = ?, color = ?, amount = ?, unit = ?, quantity = ? WHERE id = ?",
		p.Material, p.Color, p.Amount, p.Unit.String(), p.Quantity, p.ID.String(),
	)
	if err != nil {
		err = fmt.Errorf("update %s: %w", p.ID, err)
	}
	return s.committed(ctx, err)
}

func (s *Store) Delete(ctx context.Context, p Product) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM shopping_cart WHERE id = ?", p.ID.String())
	if err != nil {
		err = fmt.Errorf("delete %s: %w", p.ID, err)
	}
	return s.committed(ctx, err)
}

func (s *Store) DeleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM shopping_cart")
	if err != nil {
		err = fmt.Errorf("delete all: %w", err)
	}
	return s.committed(ctx, err)
}

// Reset empties the cart and inserts products in one transaction.
func (s *Store) Reset(ctx context.Context, products ...Product) error {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM shopping_cart"); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		return insertTx(ctx, tx, products)
	})
	return s.committed(ctx, err)
}

// Observe calls fn with the current products now and after every committed
// change, from the goroutine that made the change. The returned function
// stops the notifications.
func (s *Store) Observe(ctx context.Context, fn func([]Product)) (cancel func(), err error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()

	fn(products)
	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}, nil
}

func insertTx(ctx context.Context, tx *sql.Tx, products []Product) error {
	for _, p := range products {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO shopping_cart (id, material, color, amount, unit, quantity) VALUES (?, ?, ?, ?, ?, ?)",
			p.ID.String(), p.Material, p.Color, p.Amount, p.Unit.String(), p.Quantity,
		); err != nil {
			return fmt.Errorf("insert %s: %w", p.ID, err)
		}
	}
	return nil
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// committed notifies observers after a successful write and passes err on.
func (s *Store) committed(ctx context.Context, err error) error {
	if err != nil {
		return err
	}

	s.mu.Lock()
	fns := make([]func([]Product), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	if len(fns) == 0 {
		return nil
	}

	products, err := s.Products(ctx)
	if err != nil {
		return fmt.Errorf("notify observers: %w", err)
	}
	for _, fn := range fns {
		fn(products)
	}
	return nil
}
