package http

import (
	"github.com/mkarpov/readshelf/internal/entities"
	"github.com/mkarpov/readshelf/internal/pagination"
)

// CatalogStore reads book metadata from the Calibre catalog database.
type CatalogStore interface {
	GetBook(id uint) (*entities.Book, error)
	GetBooksByIDs(ids []uint) ([]entities.Book, error)
	ListCandidates() ([]pagination.Candidate, error)
	CandidatesByIDs(ids []uint) ([]pagination.Candidate, error)
	GetTitles(ids []uint) (map[uint]string, error)
}

// ReadingStateStore reads per-user reading state from the application database.
type ReadingStateStore interface {
	Get(userID, bookID uint) (*entities.ReadingState, error)
	ListByStatus(userID uint, status int) ([]entities.ReadingState, error)
	ListAll(userID uint) ([]entities.ReadingState, error)
}

// BookmarkStore reads per-user bookmarks from the application database.
type BookmarkStore interface {
	ListForBook(userID, bookID uint) ([]entities.Bookmark, error)
	ListAll(userID uint) ([]entities.Bookmark, error)
}
