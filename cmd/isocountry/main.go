// isocountry looks up countries in the tables compiled into the
// isocountry package.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/hightemp/isocountry"
	"github.com/hightemp/isocountry/internal/countries"
	"github.com/hightemp/isocountry/internal/output"
	"github.com/hightemp/isocountry/internal/query"
	"github.com/hightemp/isocountry/internal/timezone"
)

// Exit codes, shared with isogen.
const (
	exitSuccess      = 0
	exitInvalidInput = 2
	exitNotFound     = 4
)

// finder is one of the package accessors together with the field it
// matches.
type finder struct {
	flag   string
	lookup func(string) ([]isocountry.Country, bool)
	field  func(isocountry.Country) string
}

var finders = []finder{
	{"name", fromName, func(c isocountry.Country) string { return c.Name }},
	{"capital", isocountry.FromCapital, func(c isocountry.Country) string { return c.Capital }},
	{"region", isocountry.FromRegion, func(c isocountry.Country) string { return c.Region }},
	{"alpha2", isocountry.FromAlpha2, func(c isocountry.Country) string { return c.Alpha2 }},
	{"alpha3", isocountry.FromAlpha3, func(c isocountry.Country) string { return c.Alpha3 }},
}

func fromName(name string) ([]isocountry.Country, bool) {
	c, ok := isocountry.FromName(name)
	if !ok {
		return nil, false
	}
	return []isocountry.Country{c}, true
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("isocountry", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: isocountry --name|--capital|--region|--alpha2|--alpha3 KEY [--json]")
		fmt.Fprintln(stderr, "       isocountry --all [--json]")
		fs.PrintDefaults()
	}

	keys := make([]string, len(finders))
	for i, f := range finders {
		fs.StringVar(&keys[i], f.flag, "", "look up by "+f.flag)
	}
	jsonOutput := fs.Bool("json", false, "output in JSON format")
	list := fs.Bool("all", false, "list every country")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitSuccess
		}
		fmt.Fprintln(stderr, "Error:", err)
		return exitInvalidInput
	}

	if *list {
		result := &output.LookupResult{Kind: "all", Source: "builtin"}
		for _, c := range isocountry.All() {
			result.Countries = append(result.Countries, fromCountry(c))
		}
		return emit(result, *jsonOutput, stdout, stderr)
	}

	selected := -1
	for i, f := range finders {
		if !fs.Changed(f.flag) {
			continue
		}
		if selected >= 0 {
			fmt.Fprintln(stderr, "Error: only one lookup flag may be given")
			return exitInvalidInput
		}
		selected = i
	}
	if selected < 0 {
		fs.Usage()
		return exitInvalidInput
	}

	f, key := finders[selected], keys[selected]
	result := &output.LookupResult{Kind: f.flag, Query: key, Source: "builtin"}

	found, ok := f.lookup(key)
	if !ok {
		result.Error = query.NotFound
		result.Suggestions = query.Suggest(key, values(f.field), query.DefaultSuggestions)
	}
	for _, c := range found {
		result.Countries = append(result.Countries, fromCountry(c))
	}
	return emit(result, *jsonOutput, stdout, stderr)
}

func emit(result *output.LookupResult, jsonOutput bool, stdout, stderr io.Writer) int {
	if jsonOutput {
		jsonStr, err := result.FormatJSON()
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return exitInvalidInput
		}
		fmt.Fprintln(stdout, jsonStr)
	} else if result.Error == "" {
		fmt.Fprintln(stdout, result.FormatText())
	}

	if result.Error != "" {
		if hint := output.FormatSuggestions(result.Suggestions); hint != "" && !jsonOutput {
			fmt.Fprintln(stderr, hint)
		}
		fmt.Fprintf(stderr, "Error: no country with %s %q\n", result.Kind, result.Query)
		return exitNotFound
	}
	return exitSuccess
}

// values returns the distinct non-empty values of field in source order.
func values(field func(isocountry.Country) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range isocountry.All() {
		v := field(c)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func fromCountry(c isocountry.Country) countries.Record {
	r := countries.Record{
		Name:      c.Name,
		Capital:   c.Capital,
		Region:    c.Region,
		Alpha2:    c.Alpha2,
		Alpha3:    c.Alpha3,
		CallCodes: c.CallCodes,
	}
	for _, tz := range c.Timezones {
		r.Timezones = append(r.Timezones, timezone.Timezone(tz))
	}
	for _, cur := range c.Currencies {
		r.Currencies = append(r.Currencies, countries.Currency(cur))
	}
	for _, l := range c.Languages {
		r.Languages = append(r.Languages, countries.Language(l))
	}
	return r
}
