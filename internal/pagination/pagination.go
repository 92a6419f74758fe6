// Package pagination implements deterministic sorting and page slicing over
// candidate book sets.
//
// Listing endpoints accept page/per_page/sort/order query parameters. Out of
// range or unrecognized values are normalized to the nearest valid value
// instead of being rejected, so a sloppy client still gets a well-formed
// page. Sorting is applied to the full candidate set before slicing and uses
// a total order (ties broken by ascending book id), which keeps page
// boundaries stable: walking pages 1..N over unchanged data yields every
// candidate exactly once.
package pagination

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortTitle     SortKey = "title"
	SortTimestamp SortKey = "timestamp"
	SortPubDate   SortKey = "pubdate"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Defaults match the original listing behaviour.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MinPerPage     = 1
	MaxPerPage     = 100
)

// Params is a fully normalized set of listing parameters. Construct via
// NormalizeParams; a zero Params is not valid.
type Params struct {
	Page    int
	PerPage int
	Sort    SortKey
	Order   SortOrder
}

// NormalizeParams coerces raw listing parameters into valid ones.
//
// The normalization table:
//
//	page    <= 0            -> 1
//	per_page < 1            -> 1
//	per_page > 100          -> 100
//	sort not in {title, timestamp, pubdate} -> timestamp
//	order not in {asc, desc}                -> desc
func NormalizeParams(page, perPage int, sortKey, order string) Params {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < MinPerPage {
		perPage = MinPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	key := SortKey(sortKey)
	switch key {
	case SortTitle, SortTimestamp, SortPubDate:
	default:
		key = SortTimestamp
	}

	ord := SortOrder(order)
	switch ord {
	case OrderAsc, OrderDesc:
	default:
		ord = OrderDesc
	}

	return Params{Page: page, PerPage: perPage, Sort: key, Order: ord}
}

// Candidate carries a book id plus the columns it can be sorted by.
type Candidate struct {
	ID        uint
	Title     string
	Timestamp time.Time
	PubDate   *time.Time
}

// Meta describes the position of a page within the full candidate set.
// Total always counts the whole set, not the returned slice.
type Meta struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// Paginate sorts the full candidate set and returns the requested page along
// with pagination metadata. A page past the end yields an empty slice and
// accurate metadata. The input slice is not modified.
func Paginate(candidates []Candidate, p Params) ([]Candidate, Meta) {
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)

	// Collators buffer state internally and are not safe for concurrent
	// use, so each call gets its own.
	coll := collate.New(language.Und, collate.IgnoreCase)

	desc := p.Order == OrderDesc
	sort.Slice(sorted, func(i, j int) bool {
		cmp := compareCandidates(coll, sorted[i], sorted[j], p.Sort)
		if desc {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0
		}
		// Tie-break by ascending id regardless of order, so groups with
		// equal sort keys keep a fixed internal order in both directions.
		return sorted[i].ID < sorted[j].ID
	})

	total := len(sorted)
	pages := 0
	if total > 0 {
		pages = (total + p.PerPage - 1) / p.PerPage
	}
	meta := Meta{Page: p.Page, PerPage: p.PerPage, Total: total, Pages: pages}

	start := (p.Page - 1) * p.PerPage
	if start >= total {
		return []Candidate{}, meta
	}
	end := start + p.PerPage
	if end > total {
		end = total
	}
	return sorted[start:end], meta
}

func compareCandidates(coll *collate.Collator, a, b Candidate, key SortKey) int {
	switch key {
	case SortTitle:
		return coll.CompareString(a.Title, b.Title)
	case SortPubDate:
		return compareTimePtr(a.PubDate, b.PubDate)
	default:
		return compareTime(a.Timestamp, b.Timestamp)
	}
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// compareTimePtr orders missing publication dates before any real one, which
// keeps books without a pubdate from jumping between pages.
func compareTimePtr(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return compareTime(*a, *b)
	}
}
