// Package ingest parses the raw provider documents into traversable trees.
//
// Both documents are treated best-effort: a valid document with an
// unexpected shape yields an empty result, while a document that is not
// JSON at all is an error. Comments and trailing commas are accepted so
// locally curated copies can be annotated.
package ingest

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
)

// ErrMalformedDocument is returned when a document is not valid JSON.
var ErrMalformedDocument = errors.New("malformed document")

// Parse strips comments and trailing commas from data and returns the
// root of the document.
func Parse(data []byte) (gjson.Result, error) {
	stripped := jsonc.ToJSON(data)
	if !gjson.ValidBytes(stripped) {
		return gjson.Result{}, ErrMalformedDocument
	}
	return gjson.ParseBytes(stripped), nil
}

// ParseCountries returns the country objects of a country document. The
// document must be a top-level array; any other shape yields no entries.
func ParseCountries(data []byte) ([]gjson.Result, error) {
	root, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("countries: %w", err)
	}
	if !root.IsArray() {
		return []gjson.Result{}, nil
	}
	return root.Array(), nil
}

// ParseZones returns the entries of the zones array of a timezone
// document. A missing or non-array zones key yields no entries.
func ParseZones(data []byte) ([]gjson.Result, error) {
	root, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("timezones: %w", err)
	}
	zones := root.Get("zones")
	if !root.IsObject() || !zones.IsArray() {
		return []gjson.Result{}, nil
	}
	return zones.Array(), nil
}

// ReadCountriesFile reads and parses a country document from disk.
func ReadCountriesFile(path string) ([]gjson.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	entries, err := ParseCountries(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// ReadZonesFile reads and parses a timezone document from disk.
func ReadZonesFile(path string) ([]gjson.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	zones, err := ParseZones(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return zones, nil
}
