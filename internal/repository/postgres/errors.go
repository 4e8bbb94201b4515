package postgres

import (
	"errors"
	"fmt"
	"strings"

	"corp-social-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRepr     = "22P02"
)

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// mapError converts driver errors into AppErrors. entity names the resource
// in NotFound/Conflict messages.
func mapError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NotFound(entity + " not found")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.Conflict(entity + " already exists")
		case pgForeignKeyViolation:
			return apperror.NotFound("referenced resource not found")
		case pgInvalidTextRepr:
			// malformed id in a path parameter
			return apperror.NotFound(entity + " not found")
		}
	}
	return apperror.Internal(fmt.Errorf("%s: %w", entity, err))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
