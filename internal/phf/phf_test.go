package phf

import (
	"errors"
	"fmt"
	"testing"
)

func sampleKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("country-%04d", i)
	}
	return keys
}

func TestBuildAndLookup(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 17, 250, 2000} {
		keys := sampleKeys(n)
		table, err := Build(keys)
		if err != nil {
			t.Fatalf("Build(%d keys) failed: %v", n, err)
		}
		if table.Len() != n {
			t.Errorf("Len() = %d, expected %d", table.Len(), n)
		}

		for i, k := range keys {
			got, ok := table.Lookup(k)
			if !ok || got != i {
				t.Errorf("Lookup(%q) = %d, %v; expected %d, true", k, got, ok, i)
			}
		}

		for _, miss := range []string{"", "country-", "COUNTRY-0000", fmt.Sprintf("country-%04d", n)} {
			if _, ok := table.Lookup(miss); ok {
				t.Errorf("Lookup(%q) should miss for %d keys", miss, n)
			}
		}
	}
}

func TestBuildUnicodeKeys(t *testing.T) {
	keys := []string{"India", "Côte d'Ivoire", "Åland Islands", "", "São Tomé and Príncipe", "日本"}
	table, err := Build(keys)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for i, k := range keys {
		if got, ok := table.Lookup(k); !ok || got != i {
			t.Errorf("Lookup(%q) = %d, %v", k, got, ok)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	keys := sampleKeys(500)
	a, err := Build(keys)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	b, err := Build(keys)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if a.Seed() != b.Seed() {
		t.Errorf("seeds differ: %d vs %d", a.Seed(), b.Seed())
	}
	for i := range a.disps {
		if a.disps[i] != b.disps[i] {
			t.Fatalf("displacement %d differs", i)
		}
	}
	for i := range a.slots {
		if a.slots[i] != b.slots[i] {
			t.Fatalf("slot %d differs", i)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	table, err := Build(nil)
	if err != nil {
		t.Fatalf("Build(nil) failed: %v", err)
	}
	if _, ok := table.Lookup("India"); ok {
		t.Error("empty table should never match")
	}
	if table.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", table.Len())
	}
}

func TestBuildDuplicate(t *testing.T) {
	_, err := Build([]string{"IN", "PK", "IN"})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("error = %v, expected ErrDuplicateKey", err)
	}
}

func TestBuildConstructionFailure(t *testing.T) {
	oldSeeds, oldDisp := maxSeeds, maxDisplacement
	maxSeeds, maxDisplacement = 1, 1
	defer func() { maxSeeds, maxDisplacement = oldSeeds, oldDisp }()

	_, err := Build(sampleKeys(1000))
	if !errors.Is(err, ErrConstruction) {
		t.Errorf("error = %v, expected ErrConstruction", err)
	}
}

func TestNilTable(t *testing.T) {
	var table *Table
	if _, ok := table.Lookup("x"); ok {
		t.Error("nil table should miss")
	}
	if table.Len() != 0 || table.Keys() != nil {
		t.Error("nil table should be empty")
	}
}

func TestMap(t *testing.T) {
	m := NewMap([]string{"IN", "PK", "US"}, []string{"India", "Pakistan", "United States of America"})

	if got, ok := m.Get("PK"); !ok || got != "Pakistan" {
		t.Errorf("Get(PK) = %q, %v", got, ok)
	}
	if got, ok := m.Get("GB"); ok || got != "" {
		t.Errorf("Get(GB) = %q, %v; expected miss", got, ok)
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", m.Len())
	}
	if keys := m.Keys(); len(keys) != 3 || keys[0] != "IN" || keys[2] != "US" {
		t.Errorf("Keys() = %v", keys)
	}

	var nilMap *Map[int]
	if _, ok := nilMap.Get("IN"); ok {
		t.Error("nil map should miss")
	}
}

func TestNewMapPanics(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		values []int
	}{
		{"length mismatch", []string{"a", "b"}, []int{1}},
		{"duplicate key", []string{"a", "a"}, []int{1, 2}},
	}

	for _, tc := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", tc.name)
				}
			}()
			NewMap(tc.keys, tc.values)
		}()
	}
}

func BenchmarkLookup(b *testing.B) {
	keys := sampleKeys(250)
	table := MustBuild(keys)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.Lookup(keys[i%len(keys)])
	}
}
