package isocountry

import (
	"go/scanner"
	"go/token"
	"os"
	"path/filepath"

	. "gopkg.in/check.v1"

	"github.com/hightemp/isocountry/internal/codegen"
	"github.com/hightemp/isocountry/internal/compiler"
	"github.com/hightemp/isocountry/internal/config"
	countrydata "github.com/hightemp/isocountry/internal/countries"
	"github.com/hightemp/isocountry/internal/ingest"
	"github.com/hightemp/isocountry/internal/timezone"
)

type GenerateSuite struct {
	files []codegen.File
}

var _ = Suite(&GenerateSuite{})

func (s *GenerateSuite) SetUpSuite(c *C) {
	dataDir := config.DefaultDataDir

	entries, err := ingest.ReadCountriesFile(config.CountriesPath(dataDir))
	c.Assert(err, IsNil)
	zoneEntries, err := ingest.ReadZonesFile(config.TimezonesPath(dataDir))
	c.Assert(err, IsNil)

	records := countrydata.Build(entries, timezone.Index(zoneEntries, nil), nil)
	idx, err := compiler.Compile(records, config.AllFeatures(), nil)
	c.Assert(err, IsNil)
	c.Assert(compiler.Verify(idx), IsNil)

	s.files, err = codegen.Emit(idx, codegen.Options{})
	c.Assert(err, IsNil)
}

// The committed sources must match what go generate would write.
func (s *GenerateSuite) TestGeneratedFilesAreCurrent(c *C) {
	c.Assert(s.files, HasLen, 5)

	for _, f := range s.files {
		committed, err := os.ReadFile(filepath.Join(".", f.Name))
		c.Assert(err, IsNil, Commentf("%s is missing, run go generate", f.Name))
		c.Assert(tokens(committed), DeepEquals, tokens(f.Data), Commentf("%s is stale, run go generate", f.Name))
	}
}

func (s *GenerateSuite) TestRecordCount(c *C) {
	c.Assert(Len(), Equals, 5)
}

// tokens returns the token stream of src, ignoring comments and layout.
func tokens(src []byte) []string {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var s scanner.Scanner
	s.Init(file, src, nil, 0)

	var out []string
	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		switch {
		case tok == token.SEMICOLON:
			out = append(out, ";")
		case lit != "":
			out = append(out, lit)
		default:
			out = append(out, tok.String())
		}
	}
	return out
}
