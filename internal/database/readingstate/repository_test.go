package readingstate

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarpov/readshelf/internal/database"
	"github.com/mkarpov/readshelf/internal/entities"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) (*database.Database, *Repository, func()) {
	t.Helper()
	dbPath := "./test_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, NewRepository(db.DB), cleanup
}

func TestRepository_Get(t *testing.T) {
	t.Run("absent row returns nil state and nil error", func(t *testing.T) {
		_, repo, cleanup := setupTestDB(t)
		defer cleanup()

		state, err := repo.Get(1, 42)
		require.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("existing row returned with sub-records preloaded", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		source := &entities.ReadingState{
			UserID:       1,
			BookID:       42,
			ReadStatus:   entities.ReadStatusInProgress,
			LastModified: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			Progress: &entities.ReadingProgress{
				ProgressPercent: 37.5,
				LocationValue:   "epubcfi(/6/14!/4/2)",
				LocationType:    "KoboSpan",
				LocationSource:  "kobo",
			},
			Statistics: &entities.ReadingStatistics{
				SpentReadingMinutes:  95,
				RemainingTimeMinutes: 160,
			},
		}
		require.NoError(t, db.DB.Create(source).Error)

		state, err := repo.Get(1, 42)
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, entities.ReadStatusInProgress, state.ReadStatus)
		require.NotNil(t, state.Progress)
		assert.Equal(t, 37.5, state.Progress.ProgressPercent)
		require.NotNil(t, state.Statistics)
		assert.Equal(t, 95, state.Statistics.SpentReadingMinutes)
	})

	t.Run("row without sub-records keeps them nil", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, db.DB.Create(&entities.ReadingState{
			UserID: 1, BookID: 7, ReadStatus: entities.ReadStatusUnread,
		}).Error)

		state, err := repo.Get(1, 7)
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Nil(t, state.Progress)
		assert.Nil(t, state.Statistics)
	})

	t.Run("states are scoped per user", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, db.DB.Create(&entities.ReadingState{
			UserID: 1, BookID: 7, ReadStatus: entities.ReadStatusFinished,
		}).Error)

		state, err := repo.Get(2, 7)
		require.NoError(t, err)
		assert.Nil(t, state)
	})
}

func TestRepository_ListByStatus(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	rows := []entities.ReadingState{
		{UserID: 1, BookID: 1, ReadStatus: entities.ReadStatusFinished, LastModified: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{UserID: 1, BookID: 2, ReadStatus: entities.ReadStatusFinished, LastModified: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{UserID: 1, BookID: 3, ReadStatus: entities.ReadStatusInProgress, LastModified: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{UserID: 2, BookID: 1, ReadStatus: entities.ReadStatusFinished, LastModified: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
	}
	for i := range rows {
		require.NoError(t, db.DB.Create(&rows[i]).Error)
	}

	finished, err := repo.ListByStatus(1, entities.ReadStatusFinished)
	require.NoError(t, err)
	require.Len(t, finished, 2)
	// Newest activity first.
	assert.Equal(t, uint(2), finished[0].BookID)
	assert.Equal(t, uint(1), finished[1].BookID)

	reading, err := repo.ListByStatus(1, entities.ReadStatusInProgress)
	require.NoError(t, err)
	require.Len(t, reading, 1)
	assert.Equal(t, uint(3), reading[0].BookID)

	unread, err := repo.ListByStatus(1, entities.ReadStatusUnread)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestRepository_ListAll(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.DB.Create(&entities.ReadingState{UserID: 1, BookID: 1, ReadStatus: entities.ReadStatusFinished}).Error)
	require.NoError(t, db.DB.Create(&entities.ReadingState{UserID: 1, BookID: 2, ReadStatus: entities.ReadStatusUnread}).Error)
	require.NoError(t, db.DB.Create(&entities.ReadingState{UserID: 2, BookID: 1, ReadStatus: entities.ReadStatusFinished}).Error)

	all, err := repo.ListAll(1)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
