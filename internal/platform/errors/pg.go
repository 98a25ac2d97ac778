package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes the repos care about
var pgCodes = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23503": ErrorCodeInvalidArgument, // foreign_key_violation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
}

// contention errors that succeed on retry
var pgRetry = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"55P03": true, // lock_not_available
}

// PgError returns the postgres error at the root of err
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// DBErrorCode maps a postgres error to an ErrorCode; !ok means err is not from postgres
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := PgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if c, found := pgCodes[pgErr.Code]; found {
		return c, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err with its mapped code; nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}

// FromPostgresWithField is FromPostgres plus the offending column when postgres names one
// the column comes from ColumnName, or the tail of the constraint name (reports_pkey stays unnamed)
func FromPostgresWithField(err error, msg string) error {
	wrapped := FromPostgres(err, msg)
	pgErr, ok := PgError(err)
	if !ok {
		return wrapped
	}
	if col := strings.TrimSpace(pgErr.ColumnName); col != "" {
		return WithField(wrapped, col)
	}
	c := pgErr.ConstraintName
	if i := strings.LastIndex(c, "_"); i >= 0 && i+1 < len(c) {
		if tok := c[i+1:]; tok != "key" && tok != "pkey" {
			return WithField(wrapped, tok)
		}
	}
	return wrapped
}

// IsRetryable reports transient contention; local cancellation never retries
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pgErr, ok := PgError(err); ok {
		return pgRetry[pgErr.Code]
	}
	s := strings.ToLower(Root(err).Error())
	return strings.Contains(s, "commit unexpectedly resulted in rollback") ||
		strings.Contains(s, "deadlock detected") ||
		strings.Contains(s, "could not serialize access")
}
