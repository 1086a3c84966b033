// Package codegen renders a compiled index as Go source for the
// isocountry package.
//
// Every record literal is written once, into the countries array. The
// name table maps names to array positions; the grouping tables hold
// slices of array elements. Output is produced from typed views through
// text/template and normalized with go/format.
package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/hightemp/isocountry/internal/config"
	"github.com/hightemp/isocountry/internal/countries"
	"github.com/hightemp/isocountry/internal/index"
	"github.com/hightemp/isocountry/internal/logging"
	"github.com/hightemp/isocountry/internal/phf"
)

// DefaultPHFImport is the import path of the perfect hash runtime used by
// generated code.
const DefaultPHFImport = "github.com/hightemp/isocountry/internal/phf"

// RecordsFile is the name of the unconditional output file.
const RecordsFile = "countries_gen.go"

// Options control code generation.
type Options struct {
	Package   string
	PHFImport string
	Logger    *zap.Logger
}

// File is a generated source file.
type File struct {
	Name string
	Data []byte
}

// groupSpec describes how one grouping table is emitted.
type groupSpec struct {
	Kind  index.Kind
	File  string
	Tag   string
	Var   string
	Func  string
	Param string
	Doc   string
}

var groupSpecs = []groupSpec{
	{index.KindCapital, "capitals_gen.go", "isocountry_no_capitals", "capitals", "FromCapital", "capital", "capital"},
	{index.KindRegion, "regions_gen.go", "isocountry_no_regions", "regions", "FromRegion", "region", "region"},
	{index.KindAlpha2, "alpha2_gen.go", "isocountry_no_alpha_2", "alpha2Codes", "FromAlpha2", "code", "ISO 3166-1 alpha-2 code"},
	{index.KindAlpha3, "alpha3_gen.go", "isocountry_no_alpha_3", "alpha3Codes", "FromAlpha3", "code", "ISO 3166-1 alpha-3 code"},
}

// FileName returns the output file for the table of the given kind.
func FileName(kind index.Kind) string {
	if kind == index.KindName {
		return RecordsFile
	}
	for _, g := range groupSpecs {
		if g.Kind == kind {
			return g.File
		}
	}
	return ""
}

type recordsView struct {
	Package   string
	PHFImport string
	Records   []countries.Record
}

type groupView struct {
	Key     string
	Members []int
}

type groupFileView struct {
	groupSpec
	Package   string
	PHFImport string
	Groups    []groupView
}

// Emit renders idx. It always produces the records file and one file per
// grouping table present in idx. Key sets are checked with the perfect
// hash builder so generated code cannot fail during initialization.
func Emit(idx *index.Index, opts Options) ([]File, error) {
	logger := logging.OrNop(opts.Logger)
	if opts.Package == "" {
		opts.Package = config.DefaultPackage
	}
	if opts.PHFImport == "" {
		opts.PHFImport = DefaultPHFImport
	}

	rv := recordsView{
		Package:   opts.Package,
		PHFImport: opts.PHFImport,
		Records:   make([]countries.Record, len(idx.Records)),
	}
	names := make([]string, len(idx.Records))
	for i := range idx.Records {
		rv.Records[i] = Public(&idx.Records[i])
		names[i] = rv.Records[i].Name
	}
	if _, err := phf.Build(names); err != nil {
		return nil, fmt.Errorf("names table: %w", err)
	}

	src, err := render("records", rv)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", RecordsFile, err)
	}
	files := []File{{Name: RecordsFile, Data: src}}

	for _, spec := range groupSpecs {
		t := idx.Table(spec.Kind)
		if t == nil {
			logger.Debug("table disabled", zap.String("table", string(spec.Kind)))
			continue
		}

		gv := groupFileView{
			groupSpec: spec,
			Package:   opts.Package,
			PHFImport: opts.PHFImport,
			Groups:    publicGroups(t),
		}
		keys := make([]string, len(gv.Groups))
		for i, g := range gv.Groups {
			keys[i] = g.Key
		}
		if _, err := phf.Build(keys); err != nil {
			return nil, fmt.Errorf("%s table: %w", spec.Kind, err)
		}

		src, err := render("group", gv)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.File, err)
		}
		files = append(files, File{Name: spec.File, Data: src})
	}

	return files, nil
}

func render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}

// PublicValue maps the absent-value sentinel to the empty string.
func PublicValue(s string) string {
	if s == countries.None {
		return ""
	}
	return s
}

// Public converts a record to the form exposed by the generated package:
// absent scalars become "" and lists that only carry the absent sentinel
// become nil.
func Public(r *countries.Record) countries.Record {
	v := countries.Record{
		Name:       r.Name,
		Capital:    PublicValue(r.Capital),
		Region:     PublicValue(r.Region),
		Alpha2:     PublicValue(r.Alpha2),
		Alpha3:     PublicValue(r.Alpha3),
		Timezones:  r.Timezones,
		Currencies: r.Currencies,
		Languages:  r.Languages,
		CallCodes:  r.CallCodes,
	}
	if len(v.Currencies) == 1 && v.Currencies[0] == (countries.Currency{}) {
		v.Currencies = nil
	}
	if len(v.Languages) == 1 && v.Languages[0] == (countries.Language{}) {
		v.Languages = nil
	}
	if len(v.CallCodes) == 1 && v.CallCodes[0] == countries.None {
		v.CallCodes = nil
	}
	return v
}

// publicGroups rewrites table keys to their public form. Keys that become
// equal, such as the sentinel and a literal empty value, are merged.
func publicGroups(t *index.Table) []groupView {
	pos := make(map[string]int, t.Len())
	var out []groupView

	for k, key := range t.Keys() {
		pk := PublicValue(key)
		i, ok := pos[pk]
		if !ok {
			i = len(out)
			pos[pk] = i
			out = append(out, groupView{Key: pk})
		}
		out[i].Members = append(out[i].Members, t.Groups()[k]...)
	}

	for i := range out {
		sort.Ints(out[i].Members)
	}
	return out
}

// WriteFiles writes files into dir. Every file is staged next to its
// target before any target is replaced, so a failed write leaves the
// previous output untouched. Generated table files left over from an
// earlier run with more features enabled are removed.
func WriteFiles(dir string, files []File) error {
	if err := config.EnsureDir(dir); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	staged := make([]string, 0, len(files))
	cleanup := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}

	for _, f := range files {
		tmp, err := stage(filepath.Join(dir, f.Name), f.Data)
		if err != nil {
			cleanup()
			return fmt.Errorf("write %s: %w", f.Name, err)
		}
		staged = append(staged, tmp)
	}

	written := make(map[string]bool, len(files))
	for i, f := range files {
		if err := os.Rename(staged[i], filepath.Join(dir, f.Name)); err != nil {
			staged = staged[i:]
			cleanup()
			return fmt.Errorf("replace %s: %w", f.Name, err)
		}
		written[f.Name] = true
	}

	for _, g := range groupSpecs {
		if written[g.File] {
			continue
		}
		if err := os.Remove(filepath.Join(dir, g.File)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove stale %s: %w", g.File, err)
		}
	}
	return nil
}

// stage writes data to a temporary file beside path and returns its name.
func stage(path string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", err
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	if err := os.Chmod(name, 0644); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}
