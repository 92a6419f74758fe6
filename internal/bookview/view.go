// Package bookview builds response-ready views by joining catalog metadata
// with per-user reading state.
//
// Everything in this package is a pure transformation: view builders never
// touch a store and never mutate their inputs. Presence is three-valued
// throughout — a book with no reading-state row serializes with
// reading_state null, which is different from an explicit unread row, and a
// row without a progress or statistics sub-record serializes those fields as
// null rather than zero-filled objects.
package bookview

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mkarpov/readshelf/internal/entities"
)

// ErrInconsistentReadStatus marks a read-status value outside the known set.
// Such a row is a data defect and is surfaced as an error instead of being
// coerced into one of the valid names.
var ErrInconsistentReadStatus = errors.New("inconsistent read status")

// StatusName maps a read-status code to its wire name.
func StatusName(status int) (string, error) {
	switch status {
	case entities.ReadStatusUnread:
		return "unread", nil
	case entities.ReadStatusFinished:
		return "finished", nil
	case entities.ReadStatusInProgress:
		return "in_progress", nil
	default:
		return "", fmt.Errorf("%w: %d", ErrInconsistentReadStatus, status)
	}
}

// Hours converts minutes to hours rounded to one decimal place.
// Hour figures are always derived here, never read from storage.
func Hours(minutes int) float64 {
	return math.Round(float64(minutes)/60*10) / 10
}

type BookSummary struct {
	ID        uint    `json:"id"`
	Title     string  `json:"title"`
	Sort      string  `json:"sort"`
	Timestamp string  `json:"timestamp"`
	PubDate   *string `json:"pubdate"`
	Path      string  `json:"path"`
	HasCover  bool    `json:"has_cover"`
	UUID      string  `json:"uuid"`
	ISBN      string  `json:"isbn"`
}

type AuthorView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Sort string `json:"sort"`
}

type TagView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type SeriesView struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Index float64 `json:"index"`
}

type RatingView struct {
	ID     uint `json:"id"`
	Rating int  `json:"rating"`
}

type LanguageView struct {
	ID       uint   `json:"id"`
	LangCode string `json:"lang_code"`
}

type PublisherView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type FormatView struct {
	ID               uint   `json:"id"`
	Format           string `json:"format"`
	UncompressedSize int64  `json:"uncompressed_size"`
}

// BookView is the full aggregated representation of one book for one user.
type BookView struct {
	BookSummary
	Authors      []AuthorView      `json:"authors"`
	Tags         []TagView         `json:"tags"`
	Series       *SeriesView       `json:"series"`
	Ratings      []RatingView      `json:"ratings"`
	Languages    []LanguageView    `json:"languages"`
	Publishers   []PublisherView   `json:"publishers"`
	Comments     *string           `json:"comments"`
	Formats      []FormatView      `json:"formats"`
	ReadingState *ReadingStateView `json:"reading_state"`
}

type ReadingStateView struct {
	BookID                 uint            `json:"book_id"`
	UserID                 uint            `json:"user_id"`
	ReadStatus             int             `json:"read_status"`
	ReadStatusName         string          `json:"read_status_name"`
	LastModified           string          `json:"last_modified"`
	LastTimeStartedReading *string         `json:"last_time_started_reading"`
	TimesStartedReading    int             `json:"times_started_reading"`
	Progress               *ProgressView   `json:"progress"`
	Statistics             *StatisticsView `json:"statistics"`
}

type ProgressView struct {
	ProgressPercent              float64 `json:"progress_percent"`
	ContentSourceProgressPercent float64 `json:"content_source_progress_percent"`
	LocationValue                string  `json:"location_value"`
	LocationType                 string  `json:"location_type"`
	LocationSource               string  `json:"location_source"`
	LastModified                 string  `json:"last_modified"`
}

type StatisticsView struct {
	RemainingTimeMinutes int     `json:"remaining_time_minutes"`
	SpentReadingMinutes  int     `json:"spent_reading_minutes"`
	RemainingTimeHours   float64 `json:"remaining_time_hours"`
	SpentReadingHours    float64 `json:"spent_reading_hours"`
	LastModified         string  `json:"last_modified"`
}

// BookProgressView is the standalone progress payload, echoing the book id.
type BookProgressView struct {
	BookID uint `json:"book_id"`
	ProgressView
}

// BookStatisticsView is the standalone statistics payload.
type BookStatisticsView struct {
	BookID uint `json:"book_id"`
	StatisticsView
}

// NewBookSummary serializes the plain catalog fields of a book.
func NewBookSummary(b *entities.Book) BookSummary {
	return BookSummary{
		ID:        b.ID,
		Title:     b.Title,
		Sort:      b.Sort,
		Timestamp: formatTime(b.Timestamp),
		PubDate:   formatTimePtr(b.PubDate),
		Path:      b.Path,
		HasCover:  b.HasCover,
		UUID:      b.UUID,
		ISBN:      b.ISBN,
	}
}

// Build joins one catalog record with the user's reading state, if any, into
// a single aggregated view. A nil state leaves reading_state null.
func Build(b *entities.Book, state *entities.ReadingState) (*BookView, error) {
	view := &BookView{
		BookSummary: NewBookSummary(b),
		Authors:     make([]AuthorView, 0, len(b.Authors)),
		Tags:        make([]TagView, 0, len(b.Tags)),
		Ratings:     make([]RatingView, 0, len(b.Ratings)),
		Languages:   make([]LanguageView, 0, len(b.Languages)),
		Publishers:  make([]PublisherView, 0, len(b.Publishers)),
		Formats:     make([]FormatView, 0, len(b.Formats)),
	}

	for _, a := range b.Authors {
		view.Authors = append(view.Authors, AuthorView{ID: a.ID, Name: a.Name, Sort: a.Sort})
	}
	for _, t := range b.Tags {
		view.Tags = append(view.Tags, TagView{ID: t.ID, Name: t.Name})
	}
	if len(b.Series) > 0 {
		view.Series = &SeriesView{ID: b.Series[0].ID, Name: b.Series[0].Name, Index: b.SeriesIndex}
	}
	for _, r := range b.Ratings {
		view.Ratings = append(view.Ratings, RatingView{ID: r.ID, Rating: r.Rating})
	}
	for _, l := range b.Languages {
		view.Languages = append(view.Languages, LanguageView{ID: l.ID, LangCode: l.LangCode})
	}
	for _, p := range b.Publishers {
		view.Publishers = append(view.Publishers, PublisherView{ID: p.ID, Name: p.Name})
	}
	if len(b.Comments) > 0 {
		text := b.Comments[0].Text
		view.Comments = &text
	}
	for _, f := range b.Formats {
		view.Formats = append(view.Formats, FormatView{ID: f.ID, Format: f.Format, UncompressedSize: f.UncompressedSize})
	}

	if state != nil {
		sv, err := NewReadingStateView(state)
		if err != nil {
			return nil, err
		}
		view.ReadingState = sv
	}

	return view, nil
}

// NewReadingStateView serializes a reading-state row. Absent progress or
// statistics sub-records stay null.
func NewReadingStateView(state *entities.ReadingState) (*ReadingStateView, error) {
	name, err := StatusName(state.ReadStatus)
	if err != nil {
		return nil, fmt.Errorf("book %d: %w", state.BookID, err)
	}

	view := &ReadingStateView{
		BookID:                 state.BookID,
		UserID:                 state.UserID,
		ReadStatus:             state.ReadStatus,
		ReadStatusName:         name,
		LastModified:           formatTime(state.LastModified),
		LastTimeStartedReading: formatTimePtr(state.LastTimeStartedReading),
		TimesStartedReading:    state.TimesStartedReading,
	}
	if state.Progress != nil {
		view.Progress = NewProgressView(state.Progress)
	}
	if state.Statistics != nil {
		view.Statistics = NewStatisticsView(state.Statistics)
	}
	return view, nil
}

func NewProgressView(p *entities.ReadingProgress) *ProgressView {
	return &ProgressView{
		ProgressPercent:              p.ProgressPercent,
		ContentSourceProgressPercent: p.ContentSourceProgressPercent,
		LocationValue:                p.LocationValue,
		LocationType:                 p.LocationType,
		LocationSource:               p.LocationSource,
		LastModified:                 formatTime(p.LastModified),
	}
}

func NewStatisticsView(s *entities.ReadingStatistics) *StatisticsView {
	return &StatisticsView{
		RemainingTimeMinutes: s.RemainingTimeMinutes,
		SpentReadingMinutes:  s.SpentReadingMinutes,
		RemainingTimeHours:   Hours(s.RemainingTimeMinutes),
		SpentReadingHours:    Hours(s.SpentReadingMinutes),
		LastModified:         formatTime(s.LastModified),
	}
}

// Timestamps serialize as RFC 3339 with an explicit UTC offset.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
