package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hightemp/isocountry/internal/config"
	"github.com/hightemp/isocountry/internal/index"
)

// DateLayout is the layout of snapshot directory names.
const DateLayout = "2006-01-02"

var (
	// ErrNoSnapshots is returned when the cache holds no snapshot at all.
	ErrNoSnapshots = errors.New("no snapshots available, run: isogen generate")

	// ErrSnapshotNotFound is returned when a dated snapshot is missing.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// Manager handles snapshot operations.
type Manager struct {
	cacheDir string
}

// NewManager creates a new snapshot manager.
func NewManager(cacheDir string) *Manager {
	return &Manager{cacheDir: cacheDir}
}

// GetSnapshotDir returns the directory for a specific date.
func (m *Manager) GetSnapshotDir(date string) string {
	return config.SnapshotDir(m.cacheDir, date)
}

// CreateSnapshot creates a new snapshot directory.
func (m *Manager) CreateSnapshot(date string) (string, error) {
	if !ValidDate(date) {
		return "", fmt.Errorf("invalid snapshot date %q (expected YYYY-MM-DD)", date)
	}
	dir := m.GetSnapshotDir(date)
	if err := config.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	return dir, nil
}

// SnapshotExists checks if a snapshot exists for the given date.
func (m *Manager) SnapshotExists(date string) bool {
	dir := m.GetSnapshotDir(date)
	metaPath := config.MetadataPath(dir)
	_, err := os.Stat(metaPath)
	return err == nil
}

// Publish writes idx and meta into the snapshot for date, copies the raw
// source documents into its raw directory with their digests recorded in
// meta, and marks the snapshot as latest.
func (m *Manager) Publish(date string, idx *index.Index, meta *Metadata, sources []string) (string, error) {
	dir, err := m.CreateSnapshot(date)
	if err != nil {
		return "", err
	}

	if err := index.Save(config.IndexPath(dir), idx); err != nil {
		return "", fmt.Errorf("save index: %w", err)
	}

	if len(sources) > 0 {
		rawDir := config.RawDir(dir)
		if err := config.EnsureDir(rawDir); err != nil {
			return "", fmt.Errorf("create raw dir: %w", err)
		}
		meta.Sources = meta.Sources[:0]
		for _, src := range sources {
			data, err := os.ReadFile(src)
			if err != nil {
				return "", fmt.Errorf("read source: %w", err)
			}
			dst := filepath.Join(rawDir, filepath.Base(src))
			if err := config.WriteFileAtomic(dst, data); err != nil {
				return "", fmt.Errorf("copy source: %w", err)
			}
			sf, err := HashFile(dst)
			if err != nil {
				return "", err
			}
			meta.Sources = append(meta.Sources, sf)
		}
	}

	meta.Date = date
	meta.IsLatest = true
	if err := meta.Save(config.MetadataPath(dir)); err != nil {
		return "", fmt.Errorf("save metadata: %w", err)
	}

	if err := m.SetLatest(date); err != nil {
		return dir, fmt.Errorf("update latest link: %w", err)
	}
	return dir, nil
}

// GetLatestSnapshot returns the latest snapshot directory and metadata.
func (m *Manager) GetLatestSnapshot() (string, *Metadata, error) {
	// First try the latest symlink
	latestPath := config.LatestSnapshotPath(m.cacheDir)
	target, err := os.Readlink(latestPath)
	if err == nil {
		// Symlink exists, resolve it
		if !filepath.IsAbs(target) {
			target = filepath.Join(config.SnapshotsDir(m.cacheDir), target)
		}
		meta, err := LoadMetadata(config.MetadataPath(target))
		if err == nil {
			return target, meta, nil
		}
	}

	// Fallback: find the most recent snapshot by date
	snapshots, err := m.ListSnapshots()
	if err != nil {
		return "", nil, err
	}
	if len(snapshots) == 0 {
		return "", nil, ErrNoSnapshots
	}

	// Sort by date descending
	sort.Sort(sort.Reverse(sort.StringSlice(snapshots)))
	latestDate := snapshots[0]
	dir := m.GetSnapshotDir(latestDate)
	meta, err := LoadMetadata(config.MetadataPath(dir))
	if err != nil {
		return "", nil, fmt.Errorf("load metadata for %s: %w", latestDate, err)
	}

	return dir, meta, nil
}

// GetSnapshotByDate returns snapshot for a specific date.
func (m *Manager) GetSnapshotByDate(date string) (string, *Metadata, error) {
	if !ValidDate(date) {
		return "", nil, fmt.Errorf("%w: invalid date %q (expected YYYY-MM-DD)", ErrSnapshotNotFound, date)
	}
	dir := m.GetSnapshotDir(date)
	metaPath := config.MetadataPath(dir)

	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		return "", nil, fmt.Errorf("%w for %s, run: isogen generate --date %s", ErrSnapshotNotFound, date, date)
	}

	meta, err := LoadMetadata(metaPath)
	if err != nil {
		return "", nil, fmt.Errorf("load metadata: %w", err)
	}

	return dir, meta, nil
}

// LoadIndex reads the compiled index stored in a snapshot directory.
func (m *Manager) LoadIndex(dir string) (*index.Index, error) {
	return index.Load(config.IndexPath(dir))
}

// ListSnapshots returns all available snapshot dates in ascending order.
func (m *Manager) ListSnapshots() ([]string, error) {
	snapshotsDir := config.SnapshotsDir(m.cacheDir)
	entries, err := os.ReadDir(snapshotsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var dates []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		// Skip the latest symlink
		if name == config.LatestSymlink {
			continue
		}
		if ValidDate(name) {
			dates = append(dates, name)
		}
	}

	sort.Strings(dates)
	return dates, nil
}

// SetLatest updates the latest symlink to point to the given date.
func (m *Manager) SetLatest(date string) error {
	latestPath := config.LatestSnapshotPath(m.cacheDir)

	// Remove existing symlink
	os.Remove(latestPath)

	// Create new symlink (relative path)
	return os.Symlink(date, latestPath)
}

// DeleteSnapshot removes a snapshot.
func (m *Manager) DeleteSnapshot(date string) error {
	dir := m.GetSnapshotDir(date)
	return os.RemoveAll(dir)
}

// ValidDate reports whether s is a YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
