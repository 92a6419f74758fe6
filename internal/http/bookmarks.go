package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarpov/readshelf/internal/auth"
)

// BookmarksController serves the read-only bookmark listings.
type BookmarksController struct {
	bookmarks BookmarkStore
	catalog   CatalogStore
}

func NewBookmarksController(bookmarkStore BookmarkStore, catalogStore CatalogStore) *BookmarksController {
	return &BookmarksController{bookmarks: bookmarkStore, catalog: catalogStore}
}

// AnnotatedBookmark is a bookmark with its book's title attached.
type AnnotatedBookmark struct {
	ID          uint   `json:"id"`
	BookID      uint   `json:"book_id"`
	BookTitle   string `json:"book_title"`
	Format      string `json:"format"`
	BookmarkKey string `json:"bookmark_key"`
}

// GetBookBookmarks lists the caller's bookmarks for one book.
func (ctl *BookmarksController) GetBookBookmarks(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	bookmarks, err := ctl.bookmarks.ListForBook(auth.GetUserID(c), id)
	if err != nil {
		respondInternalError(c, err, "Failed to retrieve bookmarks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"book_id":   id,
		"bookmarks": bookmarks,
		"count":     len(bookmarks),
	})
}

// GetAllBookmarks lists every bookmark of the caller, annotated with book
// titles. Bookmarks whose book left the catalog keep a placeholder title.
func (ctl *BookmarksController) GetAllBookmarks(c *gin.Context) {
	bookmarks, err := ctl.bookmarks.ListAll(auth.GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "Failed to retrieve bookmarks")
		return
	}

	seen := make(map[uint]struct{}, len(bookmarks))
	ids := make([]uint, 0, len(bookmarks))
	for _, bm := range bookmarks {
		if _, ok := seen[bm.BookID]; ok {
			continue
		}
		seen[bm.BookID] = struct{}{}
		ids = append(ids, bm.BookID)
	}

	titles, err := ctl.catalog.GetTitles(ids)
	if err != nil {
		respondInternalError(c, err, "Failed to retrieve book titles")
		return
	}

	annotated := make([]AnnotatedBookmark, 0, len(bookmarks))
	for _, bm := range bookmarks {
		title, ok := titles[bm.BookID]
		if !ok {
			title = "Unknown"
		}
		annotated = append(annotated, AnnotatedBookmark{
			ID:          bm.ID,
			BookID:      bm.BookID,
			BookTitle:   title,
			Format:      bm.Format,
			BookmarkKey: bm.BookmarkKey,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"bookmarks": annotated,
		"count":     len(annotated),
	})
}
