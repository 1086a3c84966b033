package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hightemp/isocountry/internal/config"
	"github.com/hightemp/isocountry/internal/index"
)

var (
	testCountries = filepath.Join("..", "..", "data", config.CountriesFileName)
	testTimezones = filepath.Join("..", "..", "data", config.TimezonesFileName)
)

// execute runs the root command with args and returns stdout and the
// exit code. Flag values left over from earlier runs are reset first.
func execute(t *testing.T, stdin string, args ...string) (string, int) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	code := Execute(context.Background())
	return out.String(), code
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestGenerate(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")
	cacheDir := filepath.Join(tmpDir, "cache")

	opts := generateOptions{
		CountriesPath: testCountries,
		TimezonesPath: testTimezones,
		OutputDir:     outDir,
		Package:       "countries",
		Features:      config.AllFeatures(),
		Snapshot:      true,
		Date:          "2026-01-15",
	}

	report, err := generate(opts, cacheDir, logger)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if report.Records != 5 {
		t.Errorf("Records = %d, expected 5", report.Records)
	}
	if report.Tables[index.KindRegion] != 4 {
		t.Errorf("region keys = %d, expected 4", report.Tables[index.KindRegion])
	}
	if len(report.Files) != 5 {
		t.Errorf("Files = %v, expected 5 files", report.Files)
	}
	for _, name := range report.Files {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Errorf("%s not written: %v", name, err)
			continue
		}
		if !bytes.Contains(data, []byte("package countries")) {
			t.Errorf("%s has wrong package clause", name)
		}
	}

	if report.SnapshotDir == "" {
		t.Fatal("snapshot not stored")
	}
	if _, err := os.Stat(config.IndexPath(report.SnapshotDir)); err != nil {
		t.Errorf("index missing: %v", err)
	}

	// An existing snapshot is kept unless forced
	report, err = generate(opts, cacheDir, logger)
	if err != nil {
		t.Fatalf("second generate failed: %v", err)
	}
	if report.SnapshotDir != "" {
		t.Error("existing snapshot should not be replaced without --force")
	}

	opts.Force = true
	report, err = generate(opts, cacheDir, logger)
	if err != nil {
		t.Fatalf("forced generate failed: %v", err)
	}
	if report.SnapshotDir == "" {
		t.Error("forced generate should store the snapshot")
	}
}

func TestGenerateFeatures(t *testing.T) {
	outDir := t.TempDir()

	opts := generateOptions{
		CountriesPath: testCountries,
		TimezonesPath: testTimezones,
		OutputDir:     outDir,
		Package:       config.DefaultPackage,
		Features:      config.Features{Alpha2: true},
	}

	report, err := generate(opts, t.TempDir(), logger)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if len(report.Files) != 2 {
		t.Errorf("Files = %v, expected records and alpha2 only", report.Files)
	}
	if _, ok := report.Tables[index.KindCapital]; ok {
		t.Error("capital table should not be compiled")
	}
	if report.SnapshotDir != "" {
		t.Error("snapshot should be skipped")
	}
}

func TestGenerateInvalidInput(t *testing.T) {
	tmpDir := t.TempDir()
	bad := filepath.Join(tmpDir, "bad.json")
	os.WriteFile(bad, []byte(`[{"name": "India",`), 0644)

	tests := []struct {
		name string
		opts generateOptions
	}{
		{"malformed countries", generateOptions{CountriesPath: bad, TimezonesPath: testTimezones}},
		{"malformed timezones", generateOptions{CountriesPath: testCountries, TimezonesPath: bad}},
		{"missing countries", generateOptions{CountriesPath: filepath.Join(tmpDir, "missing.json"), TimezonesPath: testTimezones}},
		{"invalid date", generateOptions{CountriesPath: testCountries, TimezonesPath: testTimezones, Snapshot: true, Date: "15/01/2026"}},
	}

	for _, tc := range tests {
		outDir := filepath.Join(tmpDir, strings.ReplaceAll(tc.name, " ", "-"))
		tc.opts.OutputDir = outDir
		tc.opts.Package = config.DefaultPackage

		_, err := generate(tc.opts, filepath.Join(tmpDir, "cache"), logger)
		var ee *ExitError
		if !errors.As(err, &ee) || ee.Code != ExitInvalidInput {
			t.Errorf("%s: error = %v, expected exit code %d", tc.name, err, ExitInvalidInput)
		}
		if _, err := os.Stat(outDir); !os.IsNotExist(err) {
			t.Errorf("%s: output directory should not be created", tc.name)
		}
	}
}

func TestCommands(t *testing.T) {
	tmpDir := t.TempDir()
	cacheDir := filepath.Join(tmpDir, "cache")

	// No snapshot yet
	if _, code := execute(t, "", "lookup", "--cache-dir", cacheDir, "--alpha2", "IN"); code != ExitNoSnapshot {
		t.Errorf("lookup without snapshot: code %d, expected %d", code, ExitNoSnapshot)
	}

	out, code := execute(t, "", "generate",
		"--countries", testCountries,
		"--timezones", testTimezones,
		"--out", filepath.Join(tmpDir, "out"),
		"--cache-dir", cacheDir,
		"--date", "2026-01-15",
		"--features", "from_regions,from_alpha_2",
		"--log-level", "error")
	if code != ExitSuccess {
		t.Fatalf("generate: code %d", code)
	}
	if !strings.Contains(out, "Generated 5 countries") {
		t.Errorf("generate output = %q", out)
	}

	tests := []struct {
		name  string
		stdin string
		args  []string
		code  int
		has   string
	}{
		{"alpha2", "", []string{"lookup", "--alpha2", "IN"}, ExitSuccess, "India\tIN\tIND"},
		{"region", "", []string{"lookup", "--region", "Asia"}, ExitSuccess, "Pakistan"},
		{"disabled table", "", []string{"lookup", "--capital", "London"}, ExitNotFound, ""},
		{"name miss", "", []string{"lookup", "--name", "Atlantis"}, ExitNotFound, ""},
		{"two queries", "", []string{"lookup", "--name", "India", "--alpha2", "IN"}, ExitInvalidInput, ""},
		{"unknown table", "IN\n", []string{"lookup", "--by", "city"}, ExitInvalidInput, ""},
		{"missing date", "", []string{"lookup", "--time", "2020-01-01", "--name", "India"}, ExitNoSnapshot, ""},
		{"dated", "", []string{"lookup", "--time", "2026-01-15", "--name", "India"}, ExitSuccess, "New Delhi"},
		{"batch", "IN\nPK\n", []string{"lookup", "--by", "alpha2"}, ExitSuccess, "Pakistan"},
		{"batch miss", "IN\nXX\n", []string{"lookup", "--by", "alpha2"}, ExitNotFound, "ERROR: not found"},
		{"snapshots", "", []string{"snapshots"}, ExitSuccess, "* 2026-01-15"},
		{"version", "", []string{"version"}, ExitSuccess, "isogen dev"},
		{"bad flag", "", []string{"lookup", "--nope"}, ExitInvalidInput, ""},
	}

	for _, tc := range tests {
		args := append(tc.args, "--cache-dir", cacheDir)
		out, code := execute(t, tc.stdin, args...)
		if code != tc.code {
			t.Errorf("%s: code %d, expected %d", tc.name, code, tc.code)
		}
		if !strings.Contains(out, tc.has) {
			t.Errorf("%s: output %q does not contain %q", tc.name, out, tc.has)
		}
	}
}

func TestLookupJSON(t *testing.T) {
	tmpDir := t.TempDir()
	cacheDir := filepath.Join(tmpDir, "cache")

	_, code := execute(t, "", "generate",
		"--countries", testCountries,
		"--timezones", testTimezones,
		"--out", filepath.Join(tmpDir, "out"),
		"--cache-dir", cacheDir,
		"--date", "2026-01-15",
		"--log-level", "error")
	if code != ExitSuccess {
		t.Fatalf("generate: code %d", code)
	}

	out, code := execute(t, "", "lookup", "--cache-dir", cacheDir, "--json", "--alpha3", "BVT")
	if code != ExitSuccess {
		t.Fatalf("lookup: code %d", code)
	}

	var result struct {
		Source       string                   `json:"source"`
		SnapshotTime string                   `json:"snapshot_time"`
		Countries    []map[string]interface{} `json:"countries"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Invalid JSON %q: %v", out, err)
	}
	if result.Source != "snapshot" || result.SnapshotTime != "2026-01-15" {
		t.Errorf("source=%q snapshot_time=%q", result.Source, result.SnapshotTime)
	}
	if len(result.Countries) != 1 {
		t.Fatalf("countries = %v", result.Countries)
	}
	bouvet := result.Countries[0]
	if bouvet["capital"] != "" {
		t.Errorf("capital = %v, expected empty", bouvet["capital"])
	}
	if bouvet["callingCodes"] != nil {
		t.Errorf("callingCodes = %v, expected null", bouvet["callingCodes"])
	}
}
