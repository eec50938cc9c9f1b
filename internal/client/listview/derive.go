package listview

import (
	"sort"
	"strings"

	"github.com/dmitrijs2005/scpcatalog/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PageSize is the number of entries per page.
const PageSize = 5

// SortKey selects the list order.
type SortKey string

const (
	SortNone  SortKey = "none"
	SortItem  SortKey = "item"
	SortClass SortKey = "class"
)

// ParseSortKey accepts "none", "item" or "class" in any case. An empty
// string is SortNone.
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "", SortNone:
		return SortNone, true
	case SortItem, SortClass:
		return k, true
	}
	return SortNone, false
}

// View is one derived page of the list.
type View struct {
	Entries    []models.Entry
	Page       int
	TotalPages int
	// Matched is the number of entries that passed the filter.
	Matched int
	SortKey SortKey
	Query   string
}

// Derive sorts, filters and paginates entries. It does not modify entries.
// page is clamped into [1, TotalPages].
func Derive(entries []models.Entry, key SortKey, query string, page int) View {
	filtered := filterEntries(sortEntries(entries, key), query)

	total := totalPages(len(filtered))
	if page < 1 {
		page = 1
	}
	if last := max(total, 1); page > last {
		page = last
	}

	start := (page - 1) * PageSize
	end := min(start+PageSize, len(filtered))
	if start > end {
		start = end
	}

	return View{
		Entries:    filtered[start:end],
		Page:       page,
		TotalPages: total,
		Matched:    len(filtered),
		SortKey:    key,
		Query:      query,
	}
}

func totalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

func sortEntries(entries []models.Entry, key SortKey) []models.Entry {
	out := make([]models.Entry, len(entries))
	copy(out, entries)

	switch key {
	case SortItem:
		c := collate.New(language.English, collate.Numeric)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Item, out[j].Item) < 0
		})
	case SortClass:
		sort.SliceStable(out, func(i, j int) bool {
			return models.ClassRank(out[i].Class) > models.ClassRank(out[j].Class)
		})
	}
	return out
}

// filterEntries keeps entries where query is a case-insensitive substring of
// item, class, description or containment.
func filterEntries(entries []models.Entry, query string) []models.Entry {
	if query == "" {
		return entries
	}
	q := strings.ToLower(query)

	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if matches(e, q) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e models.Entry, q string) bool {
	for _, field := range []string{e.Item, string(e.Class), e.Description, e.Containment} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
