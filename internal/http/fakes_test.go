package http

import (
	"errors"

	"github.com/mkarpov/readshelf/internal/database/catalog"
	"github.com/mkarpov/readshelf/internal/entities"
	"github.com/mkarpov/readshelf/internal/pagination"
)

// errStore is injected to simulate a backend failure on any call.
var errStore = errors.New("store unavailable")

type fakeCatalog struct {
	books map[uint]entities.Book
	fail  bool
}

func (f *fakeCatalog) GetBook(id uint) (*entities.Book, error) {
	if f.fail {
		return nil, errStore
	}
	book, ok := f.books[id]
	if !ok {
		return nil, catalog.ErrBookNotFound
	}
	return &book, nil
}

func (f *fakeCatalog) GetBooksByIDs(ids []uint) ([]entities.Book, error) {
	if f.fail {
		return nil, errStore
	}
	result := make([]entities.Book, 0, len(ids))
	for _, id := range ids {
		if book, ok := f.books[id]; ok {
			result = append(result, book)
		}
	}
	return result, nil
}

func (f *fakeCatalog) ListCandidates() ([]pagination.Candidate, error) {
	if f.fail {
		return nil, errStore
	}
	candidates := make([]pagination.Candidate, 0, len(f.books))
	for _, book := range f.books {
		candidates = append(candidates, pagination.Candidate{
			ID: book.ID, Title: book.Title, Timestamp: book.Timestamp, PubDate: book.PubDate,
		})
	}
	return candidates, nil
}

func (f *fakeCatalog) CandidatesByIDs(ids []uint) ([]pagination.Candidate, error) {
	if f.fail {
		return nil, errStore
	}
	candidates := make([]pagination.Candidate, 0, len(ids))
	for _, id := range ids {
		if book, ok := f.books[id]; ok {
			candidates = append(candidates, pagination.Candidate{
				ID: book.ID, Title: book.Title, Timestamp: book.Timestamp, PubDate: book.PubDate,
			})
		}
	}
	return candidates, nil
}

func (f *fakeCatalog) GetTitles(ids []uint) (map[uint]string, error) {
	if f.fail {
		return nil, errStore
	}
	titles := make(map[uint]string)
	for _, id := range ids {
		if book, ok := f.books[id]; ok {
			titles[id] = book.Title
		}
	}
	return titles, nil
}

type fakeStates struct {
	states []entities.ReadingState
	fail   bool
}

func (f *fakeStates) Get(userID, bookID uint) (*entities.ReadingState, error) {
	if f.fail {
		return nil, errStore
	}
	for i := range f.states {
		if f.states[i].UserID == userID && f.states[i].BookID == bookID {
			return &f.states[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStates) ListByStatus(userID uint, status int) ([]entities.ReadingState, error) {
	if f.fail {
		return nil, errStore
	}
	var result []entities.ReadingState
	for _, st := range f.states {
		if st.UserID == userID && st.ReadStatus == status {
			result = append(result, st)
		}
	}
	return result, nil
}

func (f *fakeStates) ListAll(userID uint) ([]entities.ReadingState, error) {
	if f.fail {
		return nil, errStore
	}
	var result []entities.ReadingState
	for _, st := range f.states {
		if st.UserID == userID {
			result = append(result, st)
		}
	}
	return result, nil
}

type fakeBookmarks struct {
	marks []entities.Bookmark
	fail  bool
}

func (f *fakeBookmarks) ListForBook(userID, bookID uint) ([]entities.Bookmark, error) {
	if f.fail {
		return nil, errStore
	}
	var result []entities.Bookmark
	for _, bm := range f.marks {
		if bm.UserID == userID && bm.BookID == bookID {
			result = append(result, bm)
		}
	}
	return result, nil
}

func (f *fakeBookmarks) ListAll(userID uint) ([]entities.Bookmark, error) {
	if f.fail {
		return nil, errStore
	}
	var result []entities.Bookmark
	for _, bm := range f.marks {
		if bm.UserID == userID {
			result = append(result, bm)
		}
	}
	return result, nil
}
