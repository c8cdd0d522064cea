package postgresql

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// invalid_text_representation, raised when an id is not a uuid
const codeInvalidTextRepresentation = "22P02"

// noRows reports a missing row. A malformed id cannot match any row, so it
// counts as missing too.
func noRows(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeInvalidTextRepresentation
}
