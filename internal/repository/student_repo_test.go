package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStudentRepositoryIncrementAggregates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	student := seedStudent(t, db, "Physics")

	require.NoError(t, repo.IncrementAggregates(context.Background(), student.ID, 40, 3))
	require.NoError(t, repo.IncrementAggregates(context.Background(), student.ID, 25, 2))

	refreshed, err := repo.GetByID(context.Background(), student.ID)
	require.NoError(t, err)
	require.Equal(t, 65, refreshed.ActivityScore)
	require.Equal(t, 5, refreshed.TotalCredits)
}

func TestStudentRepositoryIncrementAggregatesMissingStudent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	err := repo.IncrementAggregates(context.Background(), 999999999, 10, 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
