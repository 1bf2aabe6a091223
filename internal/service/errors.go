package service

import (
	"github.com/noah-isme/tutoring-admin-api/pkg/database"
	appErrors "github.com/noah-isme/tutoring-admin-api/pkg/errors"
)

// writeError classifies a failed insert or update. Rows rejected by the store
// are the caller's fault; anything else is ours.
func writeError(err error, message string) error {
	if database.IsConstraintViolation(err) {
		return appErrors.Wrap(err, appErrors.ErrConstraint.Code, appErrors.ErrConstraint.Status, message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// deleteError classifies a failed delete. A constraint violation means other
// rows still reference the target.
func deleteError(err error, message string) error {
	if database.IsConstraintViolation(err) {
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func readError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
