package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"
)

func TestUpdateScores_WritesMetricsInOneUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectExec("UPDATE `employees` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateScores(7, 1, 84.5, 100.0, 26.0)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeDelete_MissingRowMapsToNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectExec("DELETE FROM `employees`").
		WithArgs(uint64(1), uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(42, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentBreakdown_AggregatesPerDepartment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectQuery("SELECT department, COUNT\\(\\*\\) AS count, AVG\\(productivity_score\\) AS avg_score FROM `employees`").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"department", "count", "avg_score"}).
			AddRow("Engineering", 5, 72.4).
			AddRow("Design", 2, 64.0))

	stats, err := repo.DepartmentBreakdown(1)
	require.NoError(t, err)

	require.Len(t, stats, 2)
	assert.Equal(t, "Engineering", stats[0].Department)
	assert.Equal(t, int64(5), stats[0].Count)
	assert.Equal(t, 72.4, stats[0].AvgScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}
