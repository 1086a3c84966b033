// Package snapshot manages compiled index snapshots.
package snapshot

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/hightemp/isocountry/internal/config"
	"github.com/hightemp/isocountry/internal/index"
)

// SourceFile records a raw input document and its content digest.
type SourceFile struct {
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	BLAKE3 string `json:"blake3"`
}

// Metadata contains snapshot metadata.
type Metadata struct {
	Version            int            `json:"version"`
	CreatedAt          time.Time      `json:"created_at"`
	BuildID            string         `json:"build_id"`
	Date               string         `json:"date"`
	CountriesCount     int            `json:"countries_count"`
	Tables             map[string]int `json:"tables"`
	Features           []string       `json:"features"`
	IndexFormatVersion uint32         `json:"index_format_version"`
	Sources            []SourceFile   `json:"sources"`
	IsLatest           bool           `json:"is_latest"`
}

// MetadataVersion is the current metadata format version.
const MetadataVersion = 1

// NewMetadata creates a new metadata instance with a fresh build id.
func NewMetadata() *Metadata {
	return &Metadata{
		Version:            MetadataVersion,
		CreatedAt:          time.Now().UTC(),
		BuildID:            uuid.NewString(),
		Tables:             map[string]int{},
		Features:           []string{},
		IndexFormatVersion: config.IndexFormatVersion,
		Sources:            []SourceFile{},
	}
}

// Describe fills the record and table counts from idx.
func (m *Metadata) Describe(idx *index.Index, features config.Features) {
	m.CountriesCount = len(idx.Records)
	m.Tables = make(map[string]int, len(index.Kinds))
	for _, kind := range index.Kinds {
		if t := idx.Table(kind); t != nil {
			m.Tables[string(kind)] = t.Len()
		}
	}
	m.Features = features.List()
	if m.Features == nil {
		m.Features = []string{}
	}
}

// Save writes metadata to a file.
func (m *Metadata) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return config.WriteFileAtomic(path, data)
}

// LoadMetadata loads metadata from a file.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return &m, nil
}

// HashFile returns the size and BLAKE3-256 digest of the file at path.
func HashFile(path string) (SourceFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return SourceFile{}, err
	}
	defer f.Close()

	h := blake3.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return SourceFile{}, fmt.Errorf("hash %s: %w", path, err)
	}

	return SourceFile{
		Name:   filepath.Base(path),
		Size:   n,
		BLAKE3: hex.EncodeToString(h.Sum(nil)),
	}, nil
}
