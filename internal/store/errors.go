package store

import (
	"database/sql"
	"errors"
	"fmt"

	"inventory-service/internal/models"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate key value")

	// ErrReferenceIntegrity is returned when a write or delete breaks a foreign key,
	// most often a delete blocked by dependent rows.
	ErrReferenceIntegrity = errors.New("reference integrity violation")

	// ErrValidation is returned for values outside their allowed set or range.
	ErrValidation = models.ErrValidation
)

// classify tags driver errors with the matching sentinel, keeping the driver error in the chain
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	detail := pqErr.Constraint
	if detail == "" {
		detail = pqErr.Column
	}

	switch pqErr.Code.Name() {
	case "unique_violation":
		return fmt.Errorf("%w (%s): %w", ErrDuplicate, detail, err)
	case "foreign_key_violation", "restrict_violation":
		return fmt.Errorf("%w (%s): %w", ErrReferenceIntegrity, detail, err)
	case "check_violation", "not_null_violation", "string_data_right_truncation", "numeric_value_out_of_range":
		return fmt.Errorf("%w (%s): %w", ErrValidation, detail, err)
	}

	return err
}

func notFound(err error, entity string, key interface{}) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %v", ErrNotFound, entity, key)
	}
	return classify(err)
}

func checkAffected(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
	}
	return nil
}
