package catalog

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mkarpov/readshelf/internal/entities"
	"github.com/mkarpov/readshelf/internal/pagination"
)

// ErrBookNotFound marks a book id unknown to the catalog.
var ErrBookNotFound = errors.New("book not found")

// Repository handles all catalog read operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetBook returns one book with all its metadata associations loaded.
func (r *Repository) GetBook(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.withAssociations().First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

// GetBooksByIDs returns the books with the given ids, associations loaded.
// Missing ids are silently absent from the result; the caller decides what
// absence means. Order of the result is unspecified.
func (r *Repository) GetBooksByIDs(ids []uint) ([]entities.Book, error) {
	if len(ids) == 0 {
		return []entities.Book{}, nil
	}
	var books []entities.Book
	err := r.withAssociations().Where("id IN ?", ids).Find(&books).Error
	return books, err
}

// sortColumns is the projection the paginator sorts on.
type sortColumns struct {
	ID        uint
	Title     string
	Timestamp time.Time
	PubDate   *time.Time `gorm:"column:pubdate"`
}

// ListCandidates returns every book id together with its sortable columns.
func (r *Repository) ListCandidates() ([]pagination.Candidate, error) {
	var rows []sortColumns
	err := r.db.Model(&entities.Book{}).
		Select("id", "title", "timestamp", "pubdate").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCandidates(rows), nil
}

// CandidatesByIDs returns sortable columns for the given book ids only.
func (r *Repository) CandidatesByIDs(ids []uint) ([]pagination.Candidate, error) {
	if len(ids) == 0 {
		return []pagination.Candidate{}, nil
	}
	var rows []sortColumns
	err := r.db.Model(&entities.Book{}).
		Select("id", "title", "timestamp", "pubdate").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCandidates(rows), nil
}

// GetTitles returns a bookID -> title map for bookmark annotation.
func (r *Repository) GetTitles(ids []uint) (map[uint]string, error) {
	titles := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}
	var rows []struct {
		ID    uint
		Title string
	}
	err := r.db.Model(&entities.Book{}).
		Select("id", "title").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		titles[row.ID] = row.Title
	}
	return titles, nil
}

// Count returns the number of books in the library.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}

func (r *Repository) withAssociations() *gorm.DB {
	return r.db.
		Preload("Authors").
		Preload("Tags").
		Preload("Series").
		Preload("Ratings").
		Preload("Languages").
		Preload("Publishers").
		Preload("Formats").
		Preload("Comments")
}

func toCandidates(rows []sortColumns) []pagination.Candidate {
	candidates := make([]pagination.Candidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, pagination.Candidate{
			ID:        row.ID,
			Title:     row.Title,
			Timestamp: row.Timestamp,
			PubDate:   row.PubDate,
		})
	}
	return candidates
}
