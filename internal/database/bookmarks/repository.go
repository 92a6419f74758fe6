// Package bookmarks provides read access to per-user bookmark markers.
package bookmarks

import (
	"gorm.io/gorm"

	"github.com/mkarpov/readshelf/internal/entities"
)

// Repository handles all bookmark queries.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListForBook returns the user's bookmarks for one book.
func (r *Repository) ListForBook(userID, bookID uint) ([]entities.Bookmark, error) {
	var marks []entities.Bookmark
	err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).
		Order("id ASC").
		Find(&marks).Error
	return marks, err
}

// ListAll returns every bookmark the user owns, across all books.
func (r *Repository) ListAll(userID uint) ([]entities.Bookmark, error) {
	var marks []entities.Bookmark
	err := r.db.Where("user_id = ?", userID).
		Order("book_id ASC, id ASC").
		Find(&marks).Error
	return marks, err
}
