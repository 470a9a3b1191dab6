package sqlerr

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/homeauctiondeals/gateway/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Code categorises a database failure.
type Code string

const (
	Unavailable Code = "DATABASE_UNAVAILABLE"
	Timeout     Code = "DATABASE_TIMEOUT"
	BadQuery    Code = "DATABASE_BAD_QUERY"
	NoRows      Code = "DATABASE_NO_ROWS"
	Other       Code = "DATABASE_ERROR"
)

// SQLSTATE classes and codes we distinguish. See
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	classConnectionException   = "08"
	classSyntaxOrAccess        = "42"
	classInsufficientResources = "53"
	classOperatorIntervention  = "57"
	codeQueryCanceled          = "57014"
)

// Classify maps err to a Code.
func Classify(err error) Code {
	if err == nil {
		return Other
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		return NoRows
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return Timeout
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeQueryCanceled:
			return Timeout
		case strings.HasPrefix(pgErr.Code, classConnectionException),
			strings.HasPrefix(pgErr.Code, classInsufficientResources),
			strings.HasPrefix(pgErr.Code, classOperatorIntervention):
			return Unavailable
		case strings.HasPrefix(pgErr.Code, classSyntaxOrAccess):
			return BadQuery
		}
		return Other
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.SafeToRetry(err) {
		return Unavailable
	}

	return Other
}

// HandleError converts a database error into an *errs.HTTPError.
//
// Read-path failures are always 500s for the client; the classification
// only travels in Code and the wrapped cause. An error that already is an
// HTTPError is returned unchanged.
func HandleError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	return errs.NewInternalServerError().
		WithCode(string(Classify(err))).
		WithCause(err)
}
