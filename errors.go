package sqlitego

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrDatabaseClosed is returned by any operation on a closed Database
	ErrDatabaseClosed = errors.New("Database is closed")
	// ErrEmptyPath is returned when Open is called without a file path
	ErrEmptyPath          = errors.New("Database path is empty")
	ErrEmptyStatement     = errors.New("Statement is empty")
	ErrDivisionByZero     = errors.New("Integer division by zero")
	ErrTypeMismatch       = errors.New("Column type does not match its values")
	ErrViolatesPrimaryKey = errors.New("Duplicate key value violates primary key")
	// ErrInvalidScan is returned when a database value cannot be stored in a Value
	ErrInvalidScan = errors.New("Cannot scan value")
	// ErrMissingValues is returned when the columns of an Insert differ in length
	ErrMissingValues = errors.New("Missing values")
)

// Error carries the status reported by SQLite for a failed call.
type Error struct {
	Status   Status
	Extended int
	Message  string

	cause error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("sqlite: %s (%d)", e.Status, int(e.Status))
	}

	return fmt.Sprintf("sqlite: %s (%d): %s", e.Status, int(e.Status), e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// newError builds an *Error from whatever the driver returned. Errors
// that did not come from SQLite itself are reported as StatusError.
func newError(err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}

	var sqe sqlite3.Error
	if errors.As(err, &sqe) {
		return &Error{
			Status:   Status(int(sqe.Code) & 0xff),
			Extended: int(sqe.ExtendedCode),
			Message:  sqe.Error(),
			cause:    err,
		}
	}

	if errors.Is(err, ErrDatabaseClosed) || errors.Is(err, ErrEmptyStatement) {
		return &Error{Status: StatusMisuse, Message: err.Error(), cause: err}
	}

	return &Error{Status: StatusError, Message: err.Error(), cause: err}
}

// StatusOf returns the SQLite status carried by err, StatusOK for nil.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}

	return newError(err).Status
}
