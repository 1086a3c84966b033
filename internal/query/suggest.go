package query

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/hightemp/isocountry/internal/countries"
)

// maxQueryLen bounds the input compared by edit distance.
const maxQueryLen = 128

// Suggest returns up to max candidates within a small case-insensitive
// edit distance of query, closest first and alphabetical among equals.
func Suggest(query string, candidates []string, max int) []string {
	query = strings.TrimSpace(query)
	if max <= 0 || query == "" {
		return nil
	}
	if runes := []rune(query); len(runes) > maxQueryLen {
		query = string(runes[:maxQueryLen])
	}

	q := strings.ToLower(query)
	tolerance := len([]rune(q)) / 3
	if tolerance < 2 {
		tolerance = 2
	}

	type scored struct {
		key  string
		dist int
	}
	var hits []scored
	for _, c := range candidates {
		if c == "" || c == countries.None {
			continue
		}
		if d := levenshtein.ComputeDistance(q, strings.ToLower(c)); d <= tolerance {
			hits = append(hits, scored{key: c, dist: d})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].key < hits[j].key
	})
	if len(hits) > max {
		hits = hits[:max]
	}

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.key
	}
	return out
}
