package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/de-tools/fleet-atlas/pkg/models/domain"
)

// WrapError maps driver failures onto the domain error taxonomy.
func WrapError(op string, err error, entity string, id int64) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound(entity, id)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "foreign_key_violation":
			return domain.NewValidationError(field(pqErr), "references a missing record")
		case "unique_violation":
			return domain.NewValidationError(field(pqErr), "already exists")
		case "check_violation", "not_null_violation":
			return domain.NewValidationError(field(pqErr), "violates "+pqErr.Constraint)
		}
	}
	return &domain.TransportError{Op: op, Err: err}
}

func field(e *pq.Error) string {
	if e.Column != "" {
		return e.Column
	}
	if e.Constraint != "" {
		return e.Constraint
	}
	return e.Table
}
