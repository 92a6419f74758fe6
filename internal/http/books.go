package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarpov/readshelf/internal/auth"
	"github.com/mkarpov/readshelf/internal/bookview"
	"github.com/mkarpov/readshelf/internal/database/catalog"
	"github.com/mkarpov/readshelf/internal/entities"
	"github.com/mkarpov/readshelf/internal/pagination"
)

// BooksController serves the book listing and per-book aggregation endpoints.
type BooksController struct {
	catalog CatalogStore
	states  ReadingStateStore
}

func NewBooksController(catalogStore CatalogStore, stateStore ReadingStateStore) *BooksController {
	return &BooksController{catalog: catalogStore, states: stateStore}
}

// GetBooks lists the whole catalog as paginated summaries, without
// reading state.
func (ctl *BooksController) GetBooks(c *gin.Context) {
	params := parseListingParams(c)

	candidates, err := ctl.catalog.ListCandidates()
	if err != nil {
		respondInternalError(c, err, "Failed to retrieve books")
		return
	}

	page, meta := pagination.Paginate(candidates, params)

	ids := make([]uint, 0, len(page))
	for _, cand := range page {
		ids = append(ids, cand.ID)
	}
	books, err := ctl.catalog.GetBooksByIDs(ids)
	if err != nil {
		respondInternalError(c, err, "Failed to retrieve books")
		return
	}
	byID := make(map[uint]*entities.Book, len(books))
	for i := range books {
		byID[books[i].ID] = &books[i]
	}

	summaries := make([]bookview.BookSummary, 0, len(page))
	for _, cand := range page {
		book, ok := byID[cand.ID]
		if !ok {
			continue
		}
		summaries = append(summaries, bookview.NewBookSummary(book))
	}

	c.JSON(http.StatusOK, gin.H{
		"books":      summaries,
		"pagination": meta,
	})
}

// GetReadBooks lists the caller's finished books.
func (ctl *BooksController) GetReadBooks(c *gin.Context) {
	ctl.listByStatus(c, entities.ReadStatusFinished)
}

// GetReadingBooks lists the books the caller is currently reading.
func (ctl *BooksController) GetReadingBooks(c *gin.Context) {
	ctl.listByStatus(c, entities.ReadStatusInProgress)
}

// listByStatus paginates over the caller's reading-state rows with the given
// status. Sorting by timestamp uses the state's last_modified, so the state
// rows drive the candidate set; title and pubdate come from the catalog.
// Pagination totals count every state row, but books that have since vanished
// from the catalog are skipped in the output.
func (ctl *BooksController) listByStatus(c *gin.Context, status int) {
	params := parseListingParams(c)
	userID := auth.GetUserID(c)

	states, err := ctl.states.ListByStatus(userID, status)
	if err != nil {
		respondInternalError(c, err, "Failed to retrieve reading states")
		return
	}

	ids := make([]uint, 0, len(states))
	for _, st := range states {
		ids = append(ids, st.BookID)
	}
	catalogCands, err := ctl.catalog.CandidatesByIDs(ids)
	if err != nil {
		respondInternalError(c, err, "Failed to retrieve books")
		return
	}
	candByID := make(map[uint]pagination.Candidate, len(catalogCands))
	for _, cand := range catalogCands {
		candByID[cand.ID] = cand
	}

	candidates := make([]pagination.Candidate, 0, len(states))
	for _, st := range states {
		cand := pagination.Candidate{ID: st.BookID, Timestamp: st.LastModified}
		if cc, ok := candByID[st.BookID]; ok {
			cand.Title = cc.Title
			cand.PubDate = cc.PubDate
		}
		candidates = append(candidates, cand)
	}

	page, meta := pagination.Paginate(candidates, params)

	pageIDs := make([]uint, 0, len(page))
	for _, cand := range page {
		pageIDs = append(pageIDs, cand.ID)
	}
	books, err := ctl.catalog.GetBooksByIDs(pageIDs)
	if err != nil {
		respondInternalError(c, err, "Failed to retrieve books")
		return
	}
	bookByID := make(map[uint]*entities.Book, len(books))
	for i := range books {
		bookByID[books[i].ID] = &books[i]
	}
	stateByBook := make(map[uint]*entities.ReadingState, len(states))
	for i := range states {
		stateByBook[states[i].BookID] = &states[i]
	}

	views := make([]*bookview.BookView, 0, len(page))
	for _, cand := range page {
		book, ok := bookByID[cand.ID]
		if !ok {
			continue
		}
		view, err := bookview.Build(book, stateByBook[cand.ID])
		if err != nil {
			respondInternalError(c, err, "Failed to serialize book")
			return
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"books":      views,
		"pagination": meta,
	})
}

// GetBook returns one book with full catalog detail and the caller's
// reading state joined in.
func (ctl *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	book, err := ctl.catalog.GetBook(id)
	if err != nil {
		if errors.Is(err, catalog.ErrBookNotFound) {
			respondNotFound(c, "Book not found")
			return
		}
		respondInternalError(c, err, "Failed to retrieve book")
		return
	}

	state, err := ctl.states.Get(auth.GetUserID(c), id)
	if err != nil {
		respondInternalError(c, err, "Failed to retrieve reading state")
		return
	}

	view, err := bookview.Build(book, state)
	if err != nil {
		respondInternalError(c, err, "Failed to serialize book")
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetReadingState returns the caller's reading state for one book.
func (ctl *BooksController) GetReadingState(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	state, err := ctl.states.Get(auth.GetUserID(c), id)
	if err != nil {
		respondInternalError(c, err, "Failed to retrieve reading state")
		return
	}
	if state == nil {
		respondNotFound(c, "No reading state found for this book")
		return
	}

	view, err := bookview.NewReadingStateView(state)
	if err != nil {
		respondInternalError(c, err, "Failed to serialize reading state")
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetProgress returns only the location-level progress for one book.
func (ctl *BooksController) GetProgress(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	state, err := ctl.states.Get(auth.GetUserID(c), id)
	if err != nil {
		respondInternalError(c, err, "Failed to retrieve reading state")
		return
	}
	if state == nil || state.Progress == nil {
		respondNotFound(c, "No progress information found")
		return
	}

	c.JSON(http.StatusOK, bookview.BookProgressView{
		BookID:       id,
		ProgressView: *bookview.NewProgressView(state.Progress),
	})
}

// GetStatistics returns only the time statistics for one book.
func (ctl *BooksController) GetStatistics(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	state, err := ctl.states.Get(auth.GetUserID(c), id)
	if err != nil {
		respondInternalError(c, err, "Failed to retrieve reading state")
		return
	}
	if state == nil || state.Statistics == nil {
		respondNotFound(c, "No statistics found")
		return
	}

	c.JSON(http.StatusOK, bookview.BookStatisticsView{
		BookID:         id,
		StatisticsView: *bookview.NewStatisticsView(state.Statistics),
	})
}
