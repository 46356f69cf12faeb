package assistant

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	maxSearchResults = 10
	snippetRunes     = 200
)

// Searchable is the view of a note the keyword search needs.
type Searchable struct {
	ID      string
	Title   string
	Content string
}

// Hit is one ranked search result.
type Hit struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// Score counts occurrences of each query word in text, normalised by its
// length in runes.
func Score(text, query string) float64 {
	text = strings.ToLower(text)
	n := 0
	for _, w := range strings.Fields(strings.ToLower(query)) {
		n += strings.Count(text, w)
	}
	return float64(n) / float64(utf8.RuneCountInString(text)+1)
}

// Search ranks notes against query and returns at most ten positive hits.
// Equal scores keep the input order.
func Search(notes []Searchable, query string) []Hit {
	hits := []Hit{}
	for _, n := range notes {
		s := Score(n.Title+"\n"+n.Content, query)
		if s <= 0 {
			continue
		}
		hits = append(hits, Hit{ID: n.ID, Title: n.Title, Snippet: snippet(n.Content), Score: s})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > maxSearchResults {
		hits = hits[:maxSearchResults]
	}
	return hits
}

func snippet(content string) string {
	if utf8.RuneCountInString(content) <= snippetRunes {
		return content
	}
	return string([]rune(content)[:snippetRunes]) + "…"
}
