// Package countries turns raw provider entries into canonical country
// records.
package countries

import (
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/hightemp/isocountry/internal/logging"
	"github.com/hightemp/isocountry/internal/timezone"
)

// None is stored for scalar fields and calling codes the provider omits.
const None = "None"

// noneText is the provider's own spelling for an absent optional value.
const noneText = "(none)"

// Currency describes a currency in use. Empty fields are absent.
type Currency struct {
	Code   string `cbor:"1,keyasint,omitempty" json:"code,omitempty"`
	Name   string `cbor:"2,keyasint,omitempty" json:"name,omitempty"`
	Symbol string `cbor:"3,keyasint,omitempty" json:"symbol,omitempty"`
}

// Language describes a spoken language. Empty fields are absent.
type Language struct {
	ISO639_1   string `cbor:"1,keyasint,omitempty" json:"iso639_1,omitempty"`
	ISO639_2   string `cbor:"2,keyasint,omitempty" json:"iso639_2,omitempty"`
	Name       string `cbor:"3,keyasint,omitempty" json:"name,omitempty"`
	NativeName string `cbor:"4,keyasint,omitempty" json:"nativeName,omitempty"`
}

// Record is a canonical country entry.
type Record struct {
	Name       string              `cbor:"1,keyasint" json:"name"`
	Capital    string              `cbor:"2,keyasint" json:"capital"`
	Region     string              `cbor:"3,keyasint" json:"region"`
	Alpha2     string              `cbor:"4,keyasint" json:"alpha2Code"`
	Alpha3     string              `cbor:"5,keyasint" json:"alpha3Code"`
	Timezones  []timezone.Timezone `cbor:"6,keyasint" json:"timezones"`
	Currencies []Currency          `cbor:"7,keyasint" json:"currencies"`
	Languages  []Language          `cbor:"8,keyasint" json:"languages"`
	CallCodes  []string            `cbor:"9,keyasint" json:"callingCodes"`
}

// ExtractScalar returns the string form of doc[key], or None when the key
// is missing or null.
func ExtractScalar(doc gjson.Result, key string) string {
	v := doc.Get(key)
	if !present(v) {
		return None
	}
	return v.String()
}

// ExtractList maps every element of the array doc[key] through transform.
// Any other value, including a missing key, yields a single sentinel.
func ExtractList[T any](doc gjson.Result, key string, transform func(gjson.Result) T, sentinel T) []T {
	v := doc.Get(key)
	if !v.IsArray() {
		return []T{sentinel}
	}

	elems := v.Array()
	out := make([]T, 0, len(elems))
	for _, e := range elems {
		out = append(out, transform(e))
	}
	return out
}

// CurrencyFrom reads a currency object. Non-objects yield the zero value.
func CurrencyFrom(v gjson.Result) Currency {
	if !v.IsObject() {
		return Currency{}
	}
	return Currency{
		Code:   optional(v.Get("code")),
		Name:   optional(v.Get("name")),
		Symbol: optional(v.Get("symbol")),
	}
}

// LanguageFrom reads a language object. Non-objects yield the zero value.
func LanguageFrom(v gjson.Result) Language {
	if !v.IsObject() {
		return Language{}
	}
	return Language{
		ISO639_1:   optional(v.Get("iso639_1")),
		ISO639_2:   optional(v.Get("iso639_2")),
		Name:       optional(v.Get("name")),
		NativeName: optional(v.Get("nativeName")),
	}
}

// CallCodeFrom reads a calling code element verbatim.
func CallCodeFrom(v gjson.Result) string {
	return v.String()
}

// NormalizeName strips surrounding double quotes. Names are otherwise
// compared byte for byte.
func NormalizeName(s string) string {
	return strings.Trim(s, `"`)
}

// Build folds raw entries into records. Entries that are not objects or
// have no name are skipped; of several entries with the same normalized
// name only the first is kept.
func Build(entries []gjson.Result, zones timezone.Zones, logger *zap.Logger) []Record {
	logger = logging.OrNop(logger)

	records := make([]Record, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))

	for i, e := range entries {
		name := e.Get("name")
		if !e.IsObject() || !present(name) {
			logger.Debug("skipping country entry without name", zap.Int("position", i))
			continue
		}

		key := NormalizeName(name.String())
		if _, dup := seen[key]; dup {
			logger.Debug("dropping duplicate country", zap.String("name", key), zap.Int("position", i))
			continue
		}
		seen[key] = struct{}{}

		rec := Record{
			Name:       key,
			Capital:    ExtractScalar(e, "capital"),
			Region:     ExtractScalar(e, "region"),
			Alpha2:     ExtractScalar(e, "alpha2Code"),
			Alpha3:     ExtractScalar(e, "alpha3Code"),
			Currencies: ExtractList(e, "currencies", CurrencyFrom, Currency{}),
			Languages:  ExtractList(e, "languages", LanguageFrom, Language{}),
			CallCodes:  ExtractList(e, "callingCodes", CallCodeFrom, None),
		}
		rec.Timezones = timezone.DisplayList(zones.Lookup(rec.Alpha2))

		records = append(records, rec)
	}

	logger.Debug("built country records",
		zap.Int("entries", len(entries)),
		zap.Int("records", len(records)))

	return records
}

func present(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}

func optional(v gjson.Result) string {
	if !present(v) {
		return ""
	}
	s := v.String()
	if s == noneText {
		return ""
	}
	return s
}
