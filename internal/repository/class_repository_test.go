package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutoring-admin-api/internal/models"
)

func TestClassRepositoryCreateAndFind(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO classes (day, time, level) VALUES (?, ?, ?) RETURNING id")).
		WithArgs("Monday", "09:00", "A1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + classColumns + " FROM classes WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "day", "time", "level"}).AddRow(7, "Monday", "09:00", "A1"))

	class := &models.ClassSlot{Day: "Monday", Time: "09:00", Level: "A1"}
	require.NoError(t, repo.Create(context.Background(), class))

	found, err := repo.FindByID(context.Background(), class.ID)
	require.NoError(t, err)
	assert.Equal(t, *class, *found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryDeleteWrapsError(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewClassRepository(db)

	storeErr := errors.New("FOREIGN KEY constraint failed")
	mock.ExpectExec("DELETE FROM classes").WithArgs(int64(1)).WillReturnError(storeErr)

	_, err := repo.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Contains(t, err.Error(), "delete class")
}
