package bookview

import (
	"github.com/mkarpov/readshelf/internal/entities"
)

// Summary aggregates every reading-state row a user owns. Books without a
// row are untracked and do not appear in any count; books_unread counts only
// rows that explicitly say unread.
type Summary struct {
	TotalBooksTracked     int     `json:"total_books_tracked"`
	BooksFinished         int     `json:"books_finished"`
	BooksInProgress       int     `json:"books_in_progress"`
	BooksUnread           int     `json:"books_unread"`
	TotalReadingMinutes   int     `json:"total_reading_minutes"`
	TotalReadingHours     float64 `json:"total_reading_hours"`
	TotalRemainingMinutes int     `json:"total_remaining_minutes"`
	TotalRemainingHours   float64 `json:"total_remaining_hours"`
	BooksWithStatistics   int     `json:"books_with_statistics"`
}

// Summarize folds a user's reading-state rows into one Summary. Minute sums
// only cover rows that carry a statistics sub-record. An empty input yields
// all-zero counts and 0.0 hour fields.
func Summarize(states []entities.ReadingState) Summary {
	s := Summary{TotalBooksTracked: len(states)}

	for i := range states {
		switch states[i].ReadStatus {
		case entities.ReadStatusFinished:
			s.BooksFinished++
		case entities.ReadStatusInProgress:
			s.BooksInProgress++
		case entities.ReadStatusUnread:
			s.BooksUnread++
		}

		if stats := states[i].Statistics; stats != nil {
			s.TotalReadingMinutes += stats.SpentReadingMinutes
			s.TotalRemainingMinutes += stats.RemainingTimeMinutes
			s.BooksWithStatistics++
		}
	}

	s.TotalReadingHours = Hours(s.TotalReadingMinutes)
	s.TotalRemainingHours = Hours(s.TotalRemainingMinutes)
	return s
}
