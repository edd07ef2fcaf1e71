package ops

import (
	"cmp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/antzucaro/matchr"

	"github.com/hpungsan/reel/internal/catalog"
	"github.com/hpungsan/reel/internal/engine"
)

// ShortMaxDuration is the exclusive upper bound for shorts.
const ShortMaxDuration = 5 * time.Minute

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query string // empty returns every entry
	Fuzzy bool   // also match titles within a small edit distance
	Limit int    // default: 20, max: 100
}

// SearchResultItem wraps an EntryView with its match distance.
type SearchResultItem struct {
	EntryView
	// Distance is 0 for substring matches, the edit distance otherwise
	Distance int `json:"distance"`
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Items []SearchResultItem `json:"items"`
	Total int                `json:"total"`
}

// Search matches entries by title or category label, case-insensitively.
// Substring matches rank first in display order; fuzzy matches follow,
// nearest first.
func Search(eng *engine.Engine, input SearchInput) (*SearchOutput, error) {
	query := catalog.Normalize(input.Query)
	limit := clampLimit(input.Limit, DefaultSearchLimit, MaxSearchLimit)

	var items []SearchResultItem
	for _, ent := range eng.AllEntries() {
		dist, ok := matchEntry(ent, query, input.Fuzzy)
		if !ok {
			continue
		}
		items = append(items, SearchResultItem{EntryView: NewEntryView(ent), Distance: dist})
	}
	slices.SortStableFunc(items, func(a, b SearchResultItem) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	total := len(items)
	if len(items) > limit {
		items = items[:limit]
	}
	if items == nil {
		items = []SearchResultItem{}
	}
	return &SearchOutput{Items: items, Total: total}, nil
}

// matchEntry reports whether ent matches the normalized query and at what distance.
func matchEntry(ent catalog.Entry, query string, fuzzy bool) (int, bool) {
	title := catalog.Normalize(ent.Title)
	if query == "" || strings.Contains(title, query) || strings.Contains(catalog.Normalize(ent.Category), query) {
		return 0, true
	}
	if !fuzzy {
		return 0, false
	}

	threshold := fuzzyThreshold(query)
	best := matchr.Levenshtein(query, title)
	queryWords := len(strings.Fields(query))
	words := strings.Fields(title)
	// Compare against every window of title words as long as the query.
	for i := 0; i+queryWords <= len(words); i++ {
		window := strings.Join(words[i:i+queryWords], " ")
		best = min(best, matchr.Levenshtein(query, window))
	}
	if best > threshold {
		return 0, false
	}
	return best, true
}

// fuzzyThreshold allows one edit per three characters, at least one.
func fuzzyThreshold(query string) int {
	return max(utf8.RuneCountInString(query)/3, 1)
}

// ShortsOutput contains entries shorter than five minutes.
type ShortsOutput struct {
	Items []EntryView `json:"items"`
}

// Shorts returns entries whose duration is under five minutes. Durations that
// do not parse as a clock value are excluded.
func Shorts(eng *engine.Engine) (*ShortsOutput, error) {
	var shorts []catalog.Entry
	for _, ent := range eng.AllEntries() {
		d, err := catalog.ParseDuration(ent.Duration)
		if err != nil {
			continue
		}
		if d < ShortMaxDuration {
			shorts = append(shorts, ent)
		}
	}
	return &ShortsOutput{Items: entryViews(shorts)}, nil
}
