// Package query answers country lookups against a compiled index, one at
// a time or in batches read from a stream.
package query

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/hightemp/isocountry/internal/codegen"
	"github.com/hightemp/isocountry/internal/countries"
	"github.com/hightemp/isocountry/internal/index"
	"github.com/hightemp/isocountry/internal/output"
)

// NotFound is the error text of a query that matched nothing.
const NotFound = "not found"

// DefaultSuggestions is the number of "did you mean" candidates reported
// for a miss.
const DefaultSuggestions = 3

// Source is a set of lookup tables.
type Source interface {
	Lookup(kind index.Kind, key string) ([]countries.Record, bool)
	Keys(kind index.Kind) []string
}

// Processor handles lookups of a single kind.
type Processor struct {
	src          Source
	kind         index.Kind
	label        string
	snapshotTime string
	suggestions  int
}

// NewProcessor creates a processor querying the kind table of src. label
// and snapshotTime are copied into every result.
func NewProcessor(src Source, kind index.Kind, label, snapshotTime string) *Processor {
	return &Processor{
		src:          src,
		kind:         kind,
		label:        label,
		snapshotTime: snapshotTime,
		suggestions:  DefaultSuggestions,
	}
}

// Query looks up key. Matches are returned in public form; a miss carries
// the NotFound error and the closest keys of the table.
func (p *Processor) Query(key string) *output.LookupResult {
	key = norm.NFC.String(strings.TrimSpace(key))

	result := &output.LookupResult{
		Kind:         string(p.kind),
		Query:        key,
		Source:       p.label,
		SnapshotTime: p.snapshotTime,
	}

	recs, ok := p.src.Lookup(p.kind, key)
	if !ok {
		result.Error = NotFound
		result.Suggestions = Suggest(key, p.src.Keys(p.kind), p.suggestions)
		return result
	}

	result.Countries = make([]countries.Record, len(recs))
	for i := range recs {
		result.Countries[i] = codegen.Public(&recs[i])
	}
	return result
}

// ProcessInput reads one key per line from r and writes results to w.
// Blank lines are skipped. It returns the number of queries that missed.
func (p *Processor) ProcessInput(ctx context.Context, r io.Reader, w io.Writer, jsonOutput bool) (int, error) {
	scanner := bufio.NewScanner(r)
	var results []*output.LookupResult
	misses := 0

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return misses, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		result := p.Query(line)
		if result.Error != "" {
			misses++
		}

		if jsonOutput {
			// Collect all results for JSON array output
			results = append(results, result)
			continue
		}
		// Stream output line by line
		if _, err := fmt.Fprintln(w, result.FormatText()); err != nil {
			return misses, err
		}
	}
	if err := scanner.Err(); err != nil {
		return misses, err
	}

	if jsonOutput {
		batch := &output.BatchResult{Results: results}
		jsonStr, err := batch.FormatJSON()
		if err != nil {
			return misses, err
		}
		if _, err := fmt.Fprintln(w, jsonStr); err != nil {
			return misses, err
		}
	}

	return misses, nil
}
