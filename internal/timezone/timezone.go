// Package timezone groups provider timezone entries by country code and
// renders their offsets as UTC labels.
package timezone

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/hightemp/isocountry/internal/logging"
)

// Zone is a raw zone entry as delivered by the provider.
type Zone struct {
	Name          string
	OffsetSeconds string
}

// Timezone is the display form of a zone.
type Timezone struct {
	Offset string `cbor:"1,keyasint" json:"offset"`
	Zone   string `cbor:"2,keyasint" json:"zone"`
}

func (t Timezone) String() string {
	if t.Offset == "" {
		return t.Zone
	}
	return t.Offset + " " + t.Zone
}

// Zones maps an ISO alpha-2 code to its zones in provider order.
type Zones map[string][]Zone

// Lookup returns the zones for code, or nil if the code is unknown.
func (z Zones) Lookup(code string) []Zone {
	return z[code]
}

// Index groups zone entries by countryCode. Entries missing countryCode or
// zoneName are skipped. Order within a country follows the input and
// duplicates are kept.
func Index(entries []gjson.Result, logger *zap.Logger) Zones {
	logger = logging.OrNop(logger)
	zones := make(Zones)

	for i, e := range entries {
		code := e.Get("countryCode")
		name := e.Get("zoneName")
		if !present(code) || !present(name) {
			logger.Debug("skipping zone entry", zap.Int("position", i))
			continue
		}
		c := code.String()
		zones[c] = append(zones[c], Zone{
			Name:          name.String(),
			OffsetSeconds: e.Get("gmtOffset").String(),
		})
	}

	return zones
}

func present(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}

// maxOffsetHours bounds the offsets FormatOffset accepts so the hour count
// always fits in an int64.
const maxOffsetHours = 1e6

// FormatOffset renders an offset in seconds as UTC±H:MM. The sign is taken
// from the leading character of the text. Unparseable or out of range
// input yields "".
func FormatOffset(offsetSeconds string) string {
	s := strings.TrimSpace(offsetSeconds)
	sign := "+"
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	} else {
		s = strings.TrimPrefix(s, "+")
	}

	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) || secs < 0 {
		return ""
	}
	if secs/3600 >= maxOffsetHours {
		return ""
	}

	hours, frac := math.Modf(secs / 3600)
	minutes := math.Floor(frac * 60)

	return fmt.Sprintf("UTC%s%d:%02d", sign, int64(hours), int64(minutes))
}

// DisplayList converts zones to their display form, preserving order.
func DisplayList(zones []Zone) []Timezone {
	out := make([]Timezone, 0, len(zones))
	for _, z := range zones {
		out = append(out, Timezone{
			Offset: FormatOffset(z.OffsetSeconds),
			Zone:   z.Name,
		})
	}
	return out
}
