// Package sqlerr handles database driver errors.
//
// It inspects pgx/pgconn failures and turns them into internal errors
// carrying a stable code (connection lost, timeout, bad query), so the
// logs say what went wrong while clients keep seeing a generic 500.
package sqlerr
