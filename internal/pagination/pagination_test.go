package pagination

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeParams(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		perPage  int
		sort     string
		order    string
		expected Params
	}{
		{
			name: "all defaults", page: 1, perPage: 20, sort: "timestamp", order: "desc",
			expected: Params{Page: 1, PerPage: 20, Sort: SortTimestamp, Order: OrderDesc},
		},
		{
			name: "zero page becomes first page", page: 0, perPage: 20, sort: "timestamp", order: "desc",
			expected: Params{Page: 1, PerPage: 20, Sort: SortTimestamp, Order: OrderDesc},
		},
		{
			name: "negative page becomes first page", page: -5, perPage: 20, sort: "timestamp", order: "desc",
			expected: Params{Page: 1, PerPage: 20, Sort: SortTimestamp, Order: OrderDesc},
		},
		{
			name: "per_page clamped to minimum", page: 1, perPage: 0, sort: "timestamp", order: "desc",
			expected: Params{Page: 1, PerPage: 1, Sort: SortTimestamp, Order: OrderDesc},
		},
		{
			name: "per_page clamped to maximum", page: 1, perPage: 500, sort: "timestamp", order: "desc",
			expected: Params{Page: 1, PerPage: 100, Sort: SortTimestamp, Order: OrderDesc},
		},
		{
			name: "unknown sort falls back to timestamp", page: 1, perPage: 20, sort: "author", order: "desc",
			expected: Params{Page: 1, PerPage: 20, Sort: SortTimestamp, Order: OrderDesc},
		},
		{
			name: "unknown order falls back to desc", page: 1, perPage: 20, sort: "title", order: "sideways",
			expected: Params{Page: 1, PerPage: 20, Sort: SortTitle, Order: OrderDesc},
		},
		{
			name: "valid title asc kept", page: 3, perPage: 50, sort: "title", order: "asc",
			expected: Params{Page: 3, PerPage: 50, Sort: SortTitle, Order: OrderAsc},
		},
		{
			name: "valid pubdate kept", page: 2, perPage: 10, sort: "pubdate", order: "asc",
			expected: Params{Page: 2, PerPage: 10, Sort: SortPubDate, Order: OrderAsc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeParams(tt.page, tt.perPage, tt.sort, tt.order))
		})
	}
}

func TestNormalizeParams_ClampEquivalence(t *testing.T) {
	// A clamped value must behave identically to the boundary it clamps to.
	assert.Equal(t,
		NormalizeParams(1, 100, "timestamp", "desc"),
		NormalizeParams(1, 500, "timestamp", "desc"))
	assert.Equal(t,
		NormalizeParams(1, 1, "timestamp", "desc"),
		NormalizeParams(1, -3, "timestamp", "desc"))
	assert.Equal(t,
		NormalizeParams(1, 20, "timestamp", "desc"),
		NormalizeParams(0, 20, "timestamp", "desc"))
}

func ts(day int) time.Time {
	return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
}

func tsPtr(day int) *time.Time {
	t := ts(day)
	return &t
}

func TestPaginate(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Title: "Zebra", Timestamp: ts(3), PubDate: tsPtr(10)},
		{ID: 2, Title: "apple", Timestamp: ts(1), PubDate: nil},
		{ID: 3, Title: "Mango", Timestamp: ts(2), PubDate: tsPtr(5)},
	}

	t.Run("timestamp desc is the default ordering", func(t *testing.T) {
		page, meta := Paginate(candidates, NormalizeParams(1, 20, "", ""))
		require.Len(t, page, 3)
		assert.Equal(t, uint(1), page[0].ID)
		assert.Equal(t, uint(3), page[1].ID)
		assert.Equal(t, uint(2), page[2].ID)
		assert.Equal(t, Meta{Page: 1, PerPage: 20, Total: 3, Pages: 1}, meta)
	})

	t.Run("title sort ignores case", func(t *testing.T) {
		page, _ := Paginate(candidates, NormalizeParams(1, 20, "title", "asc"))
		require.Len(t, page, 3)
		assert.Equal(t, "apple", page[0].Title)
		assert.Equal(t, "Mango", page[1].Title)
		assert.Equal(t, "Zebra", page[2].Title)
	})

	t.Run("missing pubdate sorts before any real date", func(t *testing.T) {
		page, _ := Paginate(candidates, NormalizeParams(1, 20, "pubdate", "asc"))
		require.Len(t, page, 3)
		assert.Equal(t, uint(2), page[0].ID)
		assert.Equal(t, uint(3), page[1].ID)
		assert.Equal(t, uint(1), page[2].ID)
	})

	t.Run("asc and desc are exact reversals on distinct keys", func(t *testing.T) {
		asc, _ := Paginate(candidates, NormalizeParams(1, 20, "timestamp", "asc"))
		desc, _ := Paginate(candidates, NormalizeParams(1, 20, "timestamp", "desc"))
		require.Len(t, asc, 3)
		for i := range asc {
			assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
		}
	})

	t.Run("page past the end yields empty slice with intact metadata", func(t *testing.T) {
		page, meta := Paginate(candidates, NormalizeParams(9, 20, "timestamp", "desc"))
		assert.Empty(t, page)
		assert.Equal(t, Meta{Page: 9, PerPage: 20, Total: 3, Pages: 1}, meta)
	})

	t.Run("empty candidate set", func(t *testing.T) {
		page, meta := Paginate(nil, NormalizeParams(1, 20, "timestamp", "desc"))
		assert.Empty(t, page)
		assert.Equal(t, Meta{Page: 1, PerPage: 20, Total: 0, Pages: 0}, meta)
	})

	t.Run("input slice is not reordered", func(t *testing.T) {
		input := []Candidate{
			{ID: 5, Timestamp: ts(1)},
			{ID: 4, Timestamp: ts(2)},
		}
		Paginate(input, NormalizeParams(1, 20, "timestamp", "asc"))
		assert.Equal(t, uint(5), input[0].ID)
		assert.Equal(t, uint(4), input[1].ID)
	})
}

func TestPaginate_TieBreak(t *testing.T) {
	// All candidates share the same timestamp, so ordering falls entirely
	// to the ascending-id tie-break, in both directions.
	same := ts(1)
	candidates := []Candidate{
		{ID: 30, Timestamp: same},
		{ID: 10, Timestamp: same},
		{ID: 20, Timestamp: same},
	}

	asc, _ := Paginate(candidates, NormalizeParams(1, 20, "timestamp", "asc"))
	desc, _ := Paginate(candidates, NormalizeParams(1, 20, "timestamp", "desc"))

	expected := []uint{10, 20, 30}
	for i, id := range expected {
		assert.Equal(t, id, asc[i].ID)
		assert.Equal(t, id, desc[i].ID)
	}
}

func TestPaginate_PageWalkCoversEverythingOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	candidates := make([]Candidate, 137)
	for i := range candidates {
		candidates[i] = Candidate{
			ID: uint(i + 1),
			// Deliberately few distinct timestamps to force tie-breaks.
			Timestamp: ts(rng.Intn(5) + 1),
		}
	}

	params := NormalizeParams(1, 10, "timestamp", "desc")
	_, meta := Paginate(candidates, params)
	require.Equal(t, 137, meta.Total)
	require.Equal(t, 14, meta.Pages)

	seen := make(map[uint]int)
	for page := 1; page <= meta.Pages; page++ {
		params.Page = page
		slice, _ := Paginate(candidates, params)
		for _, cand := range slice {
			seen[cand.ID]++
		}
	}

	assert.Len(t, seen, 137)
	for id, count := range seen {
		assert.Equalf(t, 1, count, "book %d appeared %d times across pages", id, count)
	}
}
