// Package compiler turns country records into the sealed lookup index.
package compiler

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hightemp/isocountry/internal/config"
	"github.com/hightemp/isocountry/internal/countries"
	"github.com/hightemp/isocountry/internal/index"
	"github.com/hightemp/isocountry/internal/logging"
)

var (
	// ErrDuplicateName is returned when two records share a name.
	ErrDuplicateName = errors.New("duplicate country name")
	// ErrInconsistent is returned by Verify when a table disagrees with
	// the records it indexes.
	ErrInconsistent = errors.New("inconsistent index")
)

// Field returns the value of r that keys the table of the given kind.
func Field(kind index.Kind, r *countries.Record) string {
	switch kind {
	case index.KindName:
		return r.Name
	case index.KindCapital:
		return r.Capital
	case index.KindRegion:
		return r.Region
	case index.KindAlpha2:
		return r.Alpha2
	case index.KindAlpha3:
		return r.Alpha3
	}
	return ""
}

// Indexed reports whether a record with field value v belongs in the
// table of the given kind. Records without a capital or region are left
// out of those tables; codes are grouped as delivered.
func Indexed(kind index.Kind, v string) bool {
	switch kind {
	case index.KindCapital, index.KindRegion:
		return v != "" && v != countries.None
	}
	return true
}

// Compile builds and seals the index. Tables whose feature is disabled are
// left nil. Any failure to build a perfect hash is returned as an error.
func Compile(records []countries.Record, features config.Features, logger *zap.Logger) (*index.Index, error) {
	logger = logging.OrNop(logger)

	idx := &index.Index{
		Records: records,
		Names:   index.NewTable(),
	}
	if features.Capitals {
		idx.Capitals = index.NewTable()
	}
	if features.Regions {
		idx.Regions = index.NewTable()
	}
	if features.Alpha2 {
		idx.Alpha2 = index.NewTable()
	}
	if features.Alpha3 {
		idx.Alpha3 = index.NewTable()
	}

	for i := range records {
		r := &records[i]
		if _, dup := idx.Names.Get(r.Name); dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, r.Name)
		}

		for _, kind := range index.Kinds {
			t := idx.Table(kind)
			if t == nil {
				continue
			}
			if v := Field(kind, r); Indexed(kind, v) {
				t.Add(v, i)
			}
		}
	}

	if err := idx.Seal(); err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	for _, kind := range index.Kinds {
		if t := idx.Table(kind); t != nil {
			logger.Debug("compiled table", zap.String("table", string(kind)), zap.Int("keys", t.Len()))
		}
	}

	return idx, nil
}

// Verify checks that every record is reachable by name and that each
// grouping table holds every eligible record exactly once, under the key
// equal to its field.
func Verify(idx *index.Index) error {
	if idx.Names.Len() != len(idx.Records) {
		return fmt.Errorf("%w: %d names for %d records", ErrInconsistent, idx.Names.Len(), len(idx.Records))
	}

	for i := range idx.Records {
		r := &idx.Records[i]
		got, ok := idx.Names.Get(r.Name)
		if !ok || len(got) != 1 || got[0] != i {
			return fmt.Errorf("%w: name %q does not resolve to record %d", ErrInconsistent, r.Name, i)
		}
	}

	for _, kind := range index.Kinds[1:] {
		t := idx.Table(kind)
		if t == nil {
			continue
		}

		seen := make([]int, len(idx.Records))
		for k, key := range t.Keys() {
			for _, p := range t.Groups()[k] {
				if p < 0 || p >= len(idx.Records) {
					return fmt.Errorf("%w: %s %q references record %d", ErrInconsistent, kind, key, p)
				}
				if v := Field(kind, &idx.Records[p]); v != key {
					return fmt.Errorf("%w: %s %q holds %q with value %q", ErrInconsistent, kind, key, idx.Records[p].Name, v)
				}
				seen[p]++
			}
		}

		for i := range idx.Records {
			want := 0
			if Indexed(kind, Field(kind, &idx.Records[i])) {
				want = 1
			}
			if seen[i] != want {
				return fmt.Errorf("%w: %s table holds %q %d times", ErrInconsistent, kind, idx.Records[i].Name, seen[i])
			}
		}
	}

	return nil
}
