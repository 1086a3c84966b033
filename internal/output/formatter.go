// Package output handles output formatting.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hightemp/isocountry/internal/countries"
)

// LookupResult contains the result of a country lookup.
type LookupResult struct {
	Kind         string             `json:"kind"`
	Query        string             `json:"query"`
	Countries    []countries.Record `json:"countries"`
	Suggestions  []string           `json:"suggestions,omitempty"`
	Source       string             `json:"source"`
	SnapshotTime string             `json:"snapshot_time,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// FormatText formats result as tab-separated text, one country per line.
func (r *LookupResult) FormatText() string {
	if r.Error != "" {
		return FormatError(r.Query, r.Error)
	}

	lines := make([]string, 0, len(r.Countries))
	for i := range r.Countries {
		lines = append(lines, FormatRecord(&r.Countries[i]))
	}
	return strings.Join(lines, "\n")
}

// FormatJSON formats result as JSON.
func (r *LookupResult) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// BatchResult contains results for batch processing.
type BatchResult struct {
	Results []*LookupResult
}

// FormatText formats batch results as text, one block per query.
func (b *BatchResult) FormatText() string {
	var lines []string
	for _, r := range b.Results {
		lines = append(lines, r.FormatText())
	}
	return strings.Join(lines, "\n")
}

// FormatJSON formats batch results as JSON array.
func (b *BatchResult) FormatJSON() (string, error) {
	results := b.Results
	if results == nil {
		results = []*LookupResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatRecord renders a record as
// name, alpha-2, alpha-3, capital, region, timezones, currencies,
// languages and calling codes separated by tabs. Absent values print as "-".
func FormatRecord(r *countries.Record) string {
	zones := make([]string, 0, len(r.Timezones))
	for _, tz := range r.Timezones {
		zones = append(zones, tz.String())
	}

	currencies := make([]string, 0, len(r.Currencies))
	for _, c := range r.Currencies {
		currencies = append(currencies, firstOf(c.Code, c.Name, c.Symbol))
	}

	languages := make([]string, 0, len(r.Languages))
	for _, l := range r.Languages {
		languages = append(languages, firstOf(l.ISO639_1, l.ISO639_2, l.Name))
	}

	return strings.Join([]string{
		field(r.Name),
		field(r.Alpha2),
		field(r.Alpha3),
		field(r.Capital),
		field(r.Region),
		list(zones),
		list(currencies),
		list(languages),
		list(r.CallCodes),
	}, "\t")
}

// FormatError formats an error line for a failed query.
func FormatError(query, msg string) string {
	return fmt.Sprintf("%s\t-\t-\t-\t-\tERROR: %s", query, msg)
}

// FormatSuggestions formats a "did you mean" hint, or "" without candidates.
func FormatSuggestions(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	return "did you mean: " + strings.Join(suggestions, ", ")
}

func field(s string) string {
	if s == "" || s == countries.None {
		return "-"
	}
	return s
}

func list(items []string) string {
	kept := items[:0:0]
	for _, s := range items {
		if s != "" && s != countries.None {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return "-"
	}
	return strings.Join(kept, ",")
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
