package itemfetch

import (
	"sort"
	"strings"
)

// Item is a single entry in the items payload.
type Item struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Active bool    `json:"active"`
	Score  float64 `json:"score,omitempty"`
}

// ItemList is the payload shape returned by the items endpoint.
type ItemList struct {
	Items []Item `json:"items"`
}

// Summary aggregates an item list for display.
type Summary struct {
	Total    int     `json:"total"`
	Active   int     `json:"active"`
	MaxScore float64 `json:"max_score"`
}

// FilterActive returns the items that are active and score strictly above
// minScore, preserving input order.
func FilterActive(items []Item, minScore float64) []Item {
	var out []Item
	for _, it := range items {
		if it.Active && it.Score > minScore {
			out = append(out, it)
		}
	}
	return out
}

// DisplayNames projects items into uppercase display strings.
func DisplayNames(items []Item) []string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = strings.ToUpper(it.Name)
	}
	return names
}

// SortByScore returns a copy of items ordered by descending score.
// The input slice is not mutated.
func SortByScore(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Summarize computes aggregate counts over items.
func Summarize(items []Item) Summary {
	s := Summary{Total: len(items)}
	for _, it := range items {
		if it.Active {
			s.Active++
		}
		if it.Score > s.MaxScore {
			s.MaxScore = it.Score
		}
	}
	return s
}
