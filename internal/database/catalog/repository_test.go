package catalog

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mkarpov/readshelf/internal/entities"
)

// setupTestCatalog builds a Calibre-shaped library file, seeds it through a
// writable connection, then reopens it through Open so tests exercise the
// same read-only path production uses.
func setupTestCatalog(t *testing.T, seed func(db *gorm.DB)) (*Catalog, *Repository, func()) {
	t.Helper()
	path := "./test_catalog_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	writable, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, writable.AutoMigrate(
		&entities.Book{},
		&entities.Author{},
		&entities.Tag{},
		&entities.Series{},
		&entities.Rating{},
		&entities.Language{},
		&entities.Publisher{},
		&entities.Format{},
		&entities.Comment{},
	))
	if seed != nil {
		seed(writable)
	}
	sqlDB, err := writable.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	cat, err := Open(path)
	require.NoError(t, err)

	cleanup := func() {
		cat.Close()
		os.Remove(path)
	}
	return cat, NewRepository(cat.DB), cleanup
}

func seedBooks(db *gorm.DB) {
	pubDate := time.Date(2019, 8, 1, 0, 0, 0, 0, time.UTC)
	books := []entities.Book{
		{
			ID:        1,
			Title:     "Annihilation",
			Sort:      "Annihilation",
			Timestamp: time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC),
			PubDate:   &pubDate,
			Path:      "Jeff VanderMeer/Annihilation (1)",
			HasCover:  true,
			UUID:      "00000000-0000-4000-8000-000000000001",
			Authors:   []entities.Author{{ID: 1, Name: "Jeff VanderMeer", Sort: "VanderMeer, Jeff"}},
			Tags:      []entities.Tag{{ID: 1, Name: "Weird Fiction"}},
			Formats:   []entities.Format{{ID: 1, BookID: 1, Format: "EPUB", UncompressedSize: 400000, Name: "Annihilation - Jeff VanderMeer"}},
		},
		{
			ID:        2,
			Title:     "Authority",
			Sort:      "Authority",
			Timestamp: time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC),
			Path:      "Jeff VanderMeer/Authority (2)",
			UUID:      "00000000-0000-4000-8000-000000000002",
		},
	}
	for i := range books {
		if err := db.Create(&books[i]).Error; err != nil {
			panic(err)
		}
	}
}

func TestOpen(t *testing.T) {
	t.Run("missing file is rejected", func(t *testing.T) {
		_, err := Open("./does_not_exist_metadata.db")
		assert.Error(t, err)
	})

	t.Run("valid library opens and pings", func(t *testing.T) {
		cat, _, cleanup := setupTestCatalog(t, nil)
		defer cleanup()
		assert.NoError(t, cat.Ping())
		assert.NoError(t, cat.Validate())
	})
}

func TestRepository_GetBook(t *testing.T) {
	_, repo, cleanup := setupTestCatalog(t, seedBooks)
	defer cleanup()

	t.Run("loads the book with associations", func(t *testing.T) {
		book, err := repo.GetBook(1)
		require.NoError(t, err)
		assert.Equal(t, "Annihilation", book.Title)
		require.Len(t, book.Authors, 1)
		assert.Equal(t, "Jeff VanderMeer", book.Authors[0].Name)
		require.Len(t, book.Tags, 1)
		require.Len(t, book.Formats, 1)
		assert.Equal(t, "EPUB", book.Formats[0].Format)
		require.NotNil(t, book.PubDate)
	})

	t.Run("unknown id yields ErrBookNotFound", func(t *testing.T) {
		book, err := repo.GetBook(999)
		assert.ErrorIs(t, err, ErrBookNotFound)
		assert.Nil(t, book)
	})
}

func TestRepository_GetBooksByIDs(t *testing.T) {
	_, repo, cleanup := setupTestCatalog(t, seedBooks)
	defer cleanup()

	t.Run("missing ids are silently absent", func(t *testing.T) {
		books, err := repo.GetBooksByIDs([]uint{1, 2, 999})
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("empty input yields empty result without querying", func(t *testing.T) {
		books, err := repo.GetBooksByIDs(nil)
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

func TestRepository_Candidates(t *testing.T) {
	_, repo, cleanup := setupTestCatalog(t, seedBooks)
	defer cleanup()

	t.Run("ListCandidates covers the whole catalog", func(t *testing.T) {
		candidates, err := repo.ListCandidates()
		require.NoError(t, err)
		require.Len(t, candidates, 2)

		byID := map[uint]string{}
		for _, cand := range candidates {
			byID[cand.ID] = cand.Title
		}
		assert.Equal(t, "Annihilation", byID[1])
		assert.Equal(t, "Authority", byID[2])
	})

	t.Run("candidate carries nil pubdate when the column is null", func(t *testing.T) {
		candidates, err := repo.CandidatesByIDs([]uint{2})
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Nil(t, candidates[0].PubDate)
	})

	t.Run("CandidatesByIDs filters to the requested ids", func(t *testing.T) {
		candidates, err := repo.CandidatesByIDs([]uint{1})
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, uint(1), candidates[0].ID)
	})
}

func TestRepository_GetTitles(t *testing.T) {
	_, repo, cleanup := setupTestCatalog(t, seedBooks)
	defer cleanup()

	titles, err := repo.GetTitles([]uint{1, 999})
	require.NoError(t, err)
	assert.Equal(t, "Annihilation", titles[1])
	_, ok := titles[999]
	assert.False(t, ok)
}

func TestRepository_Count(t *testing.T) {
	_, repo, cleanup := setupTestCatalog(t, seedBooks)
	defer cleanup()

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
