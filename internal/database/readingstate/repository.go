// Package readingstate provides read access to per-user reading-state rows.
//
// The engine never writes these rows; the device-sync pipeline owns them.
// Absence of a row is meaningful ("never interacted") and is reported as a
// nil state with a nil error, never fabricated as an unread row.
package readingstate

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mkarpov/readshelf/internal/entities"
)

// Repository handles all reading-state queries for the aggregation engine.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the state row for (user, book), or (nil, nil) when the user
// has never interacted with the book.
func (r *Repository) Get(userID, bookID uint) (*entities.ReadingState, error) {
	var state entities.ReadingState
	err := r.db.Preload("Progress").Preload("Statistics").
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &state, nil
}

// ListByStatus returns every state row for the user with the given status,
// newest activity first.
func (r *Repository) ListByStatus(userID uint, status int) ([]entities.ReadingState, error) {
	var states []entities.ReadingState
	err := r.db.Preload("Progress").Preload("Statistics").
		Where("user_id = ? AND read_status = ?", userID, status).
		Order("last_modified DESC").
		Find(&states).Error
	return states, err
}

// ListAll returns every state row the user owns, for the summary reducer.
func (r *Repository) ListAll(userID uint) ([]entities.ReadingState, error) {
	var states []entities.ReadingState
	err := r.db.Preload("Progress").Preload("Statistics").
		Where("user_id = ?", userID).
		Find(&states).Error
	return states, err
}
