// Package phf builds minimal perfect hash tables over static string key
// sets using the hash-and-displace scheme.
//
// Keys are hashed once with xxhash. A per-table seed spreads them into
// buckets of about four keys; buckets are placed largest first, each one
// trying displacements until all of its keys land in free slots. Lookups
// cost one xxhash, two mixes and a string compare, and never allocate.
package phf

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

var (
	// ErrDuplicateKey is returned when the key set contains a key twice.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrConstruction is returned when no seed yields a perfect placement.
	ErrConstruction = errors.New("perfect hash construction failed")
)

const (
	bucketSize = 4
	golden     = 0x9e3779b97f4a7c15
)

// Search limits. Variables so tests can force a failure.
var (
	maxSeeds        = 64
	maxDisplacement = 1 << 16
)

// Table maps each key of a static set to its position in that set.
type Table struct {
	seed  uint64
	disps []uint32
	slots []int32
	keys  []string
}

// Build constructs a table for keys. Construction is deterministic: the
// same key set in the same order always yields the same table. An empty
// key set produces a table on which every lookup misses.
func Build(keys []string) (*Table, error) {
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, k)
		}
		seen[k] = struct{}{}
	}

	t := &Table{keys: append([]string(nil), keys...)}
	if len(keys) == 0 {
		return t, nil
	}

	hashes := make([]uint64, len(keys))
	for i, k := range keys {
		hashes[i] = xxhash.Sum64String(k)
	}

	for s := 0; s < maxSeeds; s++ {
		seed := uint64(s)
		if disps, slots, ok := place(hashes, seed); ok {
			t.seed = seed
			t.disps = disps
			t.slots = slots
			return t, nil
		}
	}

	return nil, fmt.Errorf("%w: %d keys, %d seeds tried", ErrConstruction, len(keys), maxSeeds)
}

// MustBuild is like Build but panics on error.
func MustBuild(keys []string) *Table {
	t, err := Build(keys)
	if err != nil {
		panic(fmt.Sprintf("phf: %v", err))
	}
	return t
}

type bucket struct {
	id      int
	members []int
}

func place(hashes []uint64, seed uint64) ([]uint32, []int32, bool) {
	n := len(hashes)
	nb := bucketCount(n)

	buckets := make([]bucket, nb)
	for i := range buckets {
		buckets[i].id = i
	}
	for i, h := range hashes {
		b := mix(h^seed) % uint64(nb)
		buckets[b].members = append(buckets[b].members, i)
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return len(buckets[i].members) > len(buckets[j].members)
	})

	disps := make([]uint32, nb)
	slots := make([]int32, n)
	for i := range slots {
		slots[i] = -1
	}

	taken := make([]int, 0, bucketSize*2)
	for _, b := range buckets {
		if len(b.members) == 0 {
			break
		}

		placed := false
		for d := 0; d < maxDisplacement && !placed; d++ {
			taken = taken[:0]
			placed = true
			for _, m := range b.members {
				pos := slot(mix(hashes[m]^seed), uint32(d), n)
				if slots[pos] != -1 || contains(taken, pos) {
					placed = false
					break
				}
				taken = append(taken, pos)
			}
			if placed {
				disps[b.id] = uint32(d)
				for j, m := range b.members {
					slots[taken[j]] = int32(m)
				}
			}
		}
		if !placed {
			return nil, nil, false
		}
	}

	return disps, slots, true
}

// Lookup returns the position of key in the original key set.
func (t *Table) Lookup(key string) (int, bool) {
	if t == nil || len(t.slots) == 0 {
		return 0, false
	}

	h := mix(xxhash.Sum64String(key) ^ t.seed)
	d := t.disps[h%uint64(len(t.disps))]
	idx := t.slots[slot(h, d, len(t.slots))]
	if idx < 0 || t.keys[idx] != key {
		return 0, false
	}
	return int(idx), true
}

// Len returns the number of keys.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the keys in their original order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.keys...)
}

// Seed returns the seed the table was built with.
func (t *Table) Seed() uint64 {
	return t.seed
}

func bucketCount(n int) int {
	return (n+bucketSize-1)/bucketSize + 1
}

func slot(h uint64, d uint32, n int) int {
	return int(mix(h+uint64(d+1)*golden) % uint64(n))
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
