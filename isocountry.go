// Package isocountry looks up countries by name, capital, region and
// ISO 3166-1 code.
//
// The data is compiled into the package by isogen: every table is a
// perfect hash built once during package initialization and never
// modified afterwards, so lookups are safe for concurrent use and do not
// allocate. Returned slices are shared and must not be modified.
//
// The grouping lookups can be compiled out to reduce binary size with the
// build tags isocountry_no_capitals, isocountry_no_regions,
// isocountry_no_alpha_2 and isocountry_no_alpha_3. FromName is always
// available.
package isocountry

//go:generate go run ./cmd/isogen generate --countries data/countries.json --timezones data/timezones.json --out . --no-snapshot

// Country is a country record. Fields the data source leaves out are
// empty.
type Country struct {
	Name       string     `json:"name"`
	Capital    string     `json:"capital,omitempty"`
	Region     string     `json:"region,omitempty"`
	Alpha2     string     `json:"alpha2Code,omitempty"`
	Alpha3     string     `json:"alpha3Code,omitempty"`
	Timezones  []Timezone `json:"timezones,omitempty"`
	Currencies []Currency `json:"currencies,omitempty"`
	Languages  []Language `json:"languages,omitempty"`
	CallCodes  []string   `json:"callingCodes,omitempty"`
}

func (c Country) String() string {
	if c.Alpha2 == "" {
		return c.Name
	}
	return c.Name + " (" + c.Alpha2 + ")"
}

// Timezone is a zone used in a country with its UTC offset, formatted as
// UTC±H:MM. Offset is empty when the source offset could not be parsed.
type Timezone struct {
	Offset string `json:"offset"`
	Zone   string `json:"zone"`
}

func (t Timezone) String() string {
	if t.Offset == "" {
		return t.Zone
	}
	return t.Offset + " " + t.Zone
}

// Currency is a currency in use in a country.
type Currency struct {
	Code   string `json:"code,omitempty"`
	Name   string `json:"name,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

// Language is a language spoken in a country.
type Language struct {
	ISO639_1   string `json:"iso639_1,omitempty"`
	ISO639_2   string `json:"iso639_2,omitempty"`
	Name       string `json:"name,omitempty"`
	NativeName string `json:"nativeName,omitempty"`
}

// All returns every country in source order.
func All() []Country {
	out := make([]Country, len(countries))
	copy(out, countries[:])
	return out
}

// Len returns the number of countries.
func Len() int {
	return len(countries)
}
