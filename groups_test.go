//go:build !isocountry_no_capitals && !isocountry_no_regions && !isocountry_no_alpha_2 && !isocountry_no_alpha_3

package isocountry

import (
	. "gopkg.in/check.v1"
)

type GroupSuite struct {
	lookups map[string]func(string) ([]Country, bool)
	fields  map[string]func(Country) string
}

var _ = Suite(&GroupSuite{})

func (s *GroupSuite) SetUpSuite(c *C) {
	s.lookups = map[string]func(string) ([]Country, bool){
		"capital": FromCapital,
		"region":  FromRegion,
		"alpha2":  FromAlpha2,
		"alpha3":  FromAlpha3,
	}
	s.fields = map[string]func(Country) string{
		"capital": func(x Country) string { return x.Capital },
		"region":  func(x Country) string { return x.Region },
		"alpha2":  func(x Country) string { return x.Alpha2 },
		"alpha3":  func(x Country) string { return x.Alpha3 },
	}
}

// Every member of a group matches the key, and every country with a value
// appears in its group exactly once.
func (s *GroupSuite) TestGroupInvariants(c *C) {
	for kind, lookup := range s.lookups {
		field := s.fields[kind]
		for _, country := range All() {
			key := field(country)
			if key == "" {
				continue
			}

			group, ok := lookup(key)
			c.Assert(ok, Equals, true, Commentf("%s %q", kind, key))

			found := 0
			for _, member := range group {
				c.Assert(field(member), Equals, key)
				if member.Name == country.Name {
					found++
				}
			}
			c.Assert(found, Equals, 1, Commentf("%s in %s %q", country.Name, kind, key))
		}
	}
}

func (s *GroupSuite) TestFromRegion(c *C) {
	asia, ok := FromRegion("Asia")
	c.Assert(ok, Equals, true)
	c.Assert(asia, HasLen, 2)
	c.Assert(asia[0].Name, Equals, "India")
	c.Assert(asia[1].Name, Equals, "Pakistan")

	_, ok = FromRegion("Oceania")
	c.Assert(ok, Equals, false)
}

func (s *GroupSuite) TestFromCapital(c *C) {
	group, ok := FromCapital("London")
	c.Assert(ok, Equals, true)
	c.Assert(group, HasLen, 1)
	c.Assert(group[0].Alpha3, Equals, "GBR")

	// Bouvet Island has no capital and is not filed under an empty one.
	_, ok = FromCapital("")
	c.Assert(ok, Equals, false)
	_, ok = FromCapital("None")
	c.Assert(ok, Equals, false)
}

func (s *GroupSuite) TestFromCodes(c *C) {
	tests := []struct {
		lookup   func(string) ([]Country, bool)
		code     string
		expected string
	}{
		{FromAlpha2, "IN", "India"},
		{FromAlpha2, "GB", "United Kingdom of Great Britain and Northern Ireland"},
		{FromAlpha3, "PAK", "Pakistan"},
		{FromAlpha3, "BVT", "Bouvet Island"},
	}

	for _, tc := range tests {
		group, ok := tc.lookup(tc.code)
		c.Assert(ok, Equals, true, Commentf("code %q", tc.code))
		c.Assert(group, HasLen, 1)
		c.Assert(group[0].Name, Equals, tc.expected)
	}

	for _, miss := range []string{"in", "XX", "IND "} {
		_, ok := FromAlpha2(miss)
		c.Assert(ok, Equals, false)
		_, ok = FromAlpha3(miss)
		c.Assert(ok, Equals, false)
	}
}
