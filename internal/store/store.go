package store

import (
	"context"
	"fmt"
	"time"

	"inventory-service/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// dbtx is satisfied by both *sqlx.DB and *sqlx.Tx
type dbtx interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type Store struct {
	db *sqlx.DB
	q  dbtx
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return New(db), nil
}

// New wraps an open connection
func New(db *sqlx.DB) *Store {
	return &Store{db: db, q: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithTx runs fn against a store bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
// Calls made on a store that is already transactional reuse its transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	if _, ok := s.q.(*sqlx.Tx); ok {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&Store{db: s.db, q: tx}); err != nil {
		return err
	}

	return tx.Commit()
}

// deleteByID removes one row and reports ErrNotFound when nothing matched
func (s *Store) deleteByID(ctx context.Context, table, entity string, id int64) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return classify(err)
	}
	return checkAffected(res, entity, id)
}

// checkParentCycle rejects a parent that is the row itself or one of its descendants
func (s *Store) checkParentCycle(ctx context.Context, table, entity string, id int64, parentID *int64) error {
	if parentID == nil || id == 0 {
		return nil
	}

	var cycle bool
	err := s.q.GetContext(ctx, &cycle, `
		WITH RECURSIVE ancestors(id, parent_id) AS (
			SELECT id, parent_id FROM `+table+` WHERE id = $1
			UNION
			SELECT t.id, t.parent_id FROM `+table+` t JOIN ancestors a ON t.id = a.parent_id
		)
		SELECT EXISTS (SELECT 1 FROM ancestors WHERE id = $2)`, *parentID, id)
	if err != nil {
		return classify(err)
	}
	if cycle {
		return &models.ValidationError{Field: "parent_id", Message: fmt.Sprintf("a %s cannot be nested under its own descendant", entity)}
	}
	return nil
}
