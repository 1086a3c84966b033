// Package index holds the compiled lookup tables over country records.
package index

import (
	"fmt"

	"github.com/hightemp/isocountry/internal/countries"
	"github.com/hightemp/isocountry/internal/phf"
)

// Kind identifies one of the lookup tables.
type Kind string

const (
	KindName    Kind = "name"
	KindCapital Kind = "capital"
	KindRegion  Kind = "region"
	KindAlpha2  Kind = "alpha2"
	KindAlpha3  Kind = "alpha3"
)

// Kinds lists every table kind in emission order.
var Kinds = []Kind{KindName, KindCapital, KindRegion, KindAlpha2, KindAlpha3}

// Table maps keys to groups of record positions. Keys keep the order in
// which they were first added and each group keeps insertion order.
type Table struct {
	keys   []string
	groups [][]int
	pos    map[string]int
	hash   *phf.Table
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{pos: make(map[string]int)}
}

// Add appends record to the group for key. It must not be called after Seal.
func (t *Table) Add(key string, record int) {
	i, ok := t.pos[key]
	if !ok {
		i = len(t.keys)
		t.pos[key] = i
		t.keys = append(t.keys, key)
		t.groups = append(t.groups, nil)
	}
	t.groups[i] = append(t.groups[i], record)
}

// Seal builds the perfect hash over the current keys.
func (t *Table) Seal() error {
	h, err := phf.Build(t.keys)
	if err != nil {
		return err
	}
	t.hash = h
	return nil
}

// Sealed reports whether Seal has succeeded.
func (t *Table) Sealed() bool {
	return t != nil && t.hash != nil
}

// Get returns the record positions grouped under key.
func (t *Table) Get(key string) ([]int, bool) {
	if t == nil {
		return nil, false
	}

	var (
		i  int
		ok bool
	)
	if t.hash != nil {
		i, ok = t.hash.Lookup(key)
	} else {
		i, ok = t.pos[key]
	}
	if !ok {
		return nil, false
	}
	return t.groups[i], true
}

// Keys returns the keys in first-seen order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	return t.keys
}

// Groups returns the record groups, parallel to Keys.
func (t *Table) Groups() [][]int {
	if t == nil {
		return nil
	}
	return t.groups
}

// Len returns the number of distinct keys.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Index is the compiled dataset: record storage plus one table per kind.
// Feature tables that were not compiled are nil.
type Index struct {
	Records  []countries.Record
	Names    *Table
	Capitals *Table
	Regions  *Table
	Alpha2   *Table
	Alpha3   *Table
}

// Table returns the table for kind, or nil.
func (idx *Index) Table(kind Kind) *Table {
	switch kind {
	case KindName:
		return idx.Names
	case KindCapital:
		return idx.Capitals
	case KindRegion:
		return idx.Regions
	case KindAlpha2:
		return idx.Alpha2
	case KindAlpha3:
		return idx.Alpha3
	}
	return nil
}

// Seal builds the perfect hash of every present table.
func (idx *Index) Seal() error {
	for _, kind := range Kinds {
		t := idx.Table(kind)
		if t == nil {
			continue
		}
		if err := t.Seal(); err != nil {
			return fmt.Errorf("%s table: %w", kind, err)
		}
	}
	return nil
}

// Lookup returns the records stored under key in the table for kind. An
// absent table behaves like an empty one.
func (idx *Index) Lookup(kind Kind, key string) ([]countries.Record, bool) {
	positions, ok := idx.Table(kind).Get(key)
	if !ok {
		return nil, false
	}
	out := make([]countries.Record, len(positions))
	for i, p := range positions {
		out[i] = idx.Records[p]
	}
	return out, true
}

// ByName returns the record with the given name.
func (idx *Index) ByName(name string) (countries.Record, bool) {
	recs, ok := idx.Lookup(KindName, name)
	if !ok || len(recs) == 0 {
		return countries.Record{}, false
	}
	return recs[0], true
}

// Keys returns the keys of the table for kind, or nil when it is absent.
func (idx *Index) Keys(kind Kind) []string {
	return idx.Table(kind).Keys()
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown table %q", s)
}
