package database

import (
	"errors"

	"github.com/lib/pq"
	"modernc.org/sqlite"
)

// sqliteConstraint is SQLITE_CONSTRAINT; extended codes share the low byte.
const sqliteConstraint = 19

// IsConstraintViolation reports whether err was raised by the store rejecting
// a row (foreign key, unique, not null or check).
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "23"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqliteConstraint
	}
	return false
}
