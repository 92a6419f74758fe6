package entities

import (
	"time"
)

// Read status codes stored in reading_states.read_status. The numeric values
// are fixed by the device-sync protocol and must not be renumbered.
const (
	ReadStatusUnread     = 0
	ReadStatusFinished   = 1
	ReadStatusInProgress = 2
)

// ReadingState is the per-user, per-book status record. At most one row per
// (user, book) pair. Absence of a row means the user never interacted with
// the book, which is not the same as an explicit unread row.
//
// Rows are written by the device-sync pipeline; this service only reads them.
type ReadingState struct {
	ID                     uint       `gorm:"primaryKey" json:"-"`
	BookID                 uint       `gorm:"uniqueIndex:idx_reading_states_user_book" json:"book_id"`
	UserID                 uint       `gorm:"uniqueIndex:idx_reading_states_user_book" json:"user_id"`
	ReadStatus             int        `gorm:"default:0" json:"read_status"`
	LastModified           time.Time  `json:"last_modified"`
	LastTimeStartedReading *time.Time `json:"last_time_started_reading"`
	TimesStartedReading    int        `gorm:"default:0" json:"times_started_reading"`

	Progress   *ReadingProgress   `gorm:"foreignKey:ReadingStateID" json:"progress,omitempty"`
	Statistics *ReadingStatistics `gorm:"foreignKey:ReadingStateID" json:"statistics,omitempty"`
}

// ReadingProgress is the latest device-reported position within a book.
// Only present when a sync source has reported one.
type ReadingProgress struct {
	ID                           uint      `gorm:"primaryKey" json:"-"`
	ReadingStateID               uint      `gorm:"uniqueIndex" json:"-"`
	ProgressPercent              float64   `json:"progress_percent"`
	ContentSourceProgressPercent float64   `json:"content_source_progress_percent"`
	LocationValue                string    `gorm:"size:512" json:"location_value"`
	LocationType                 string    `gorm:"size:64" json:"location_type"`
	LocationSource               string    `gorm:"size:64" json:"location_source"`
	LastModified                 time.Time `json:"last_modified"`
}

// ReadingStatistics holds device-reported time accounting in minutes.
// Hour figures are derived at view-build time, never stored.
type ReadingStatistics struct {
	ID                   uint      `gorm:"primaryKey" json:"-"`
	ReadingStateID       uint      `gorm:"uniqueIndex" json:"-"`
	RemainingTimeMinutes int       `json:"remaining_time_minutes"`
	SpentReadingMinutes  int       `json:"spent_reading_minutes"`
	LastModified         time.Time `json:"last_modified"`
}

// Bookmark marks a saved location within one format of a book. Several
// bookmarks per (user, book) are allowed, normally one per distinct key.
type Bookmark struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"index" json:"-"`
	BookID      uint   `gorm:"index" json:"book_id"`
	Format      string `gorm:"size:20" json:"format"`
	BookmarkKey string `gorm:"size:512" json:"bookmark_key"`
}

func (ReadingState) TableName() string      { return "reading_states" }
func (ReadingProgress) TableName() string   { return "reading_progress" }
func (ReadingStatistics) TableName() string { return "reading_statistics" }
func (Bookmark) TableName() string          { return "bookmarks" }
