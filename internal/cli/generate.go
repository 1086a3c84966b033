package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hightemp/isocountry/internal/codegen"
	"github.com/hightemp/isocountry/internal/compiler"
	"github.com/hightemp/isocountry/internal/config"
	"github.com/hightemp/isocountry/internal/countries"
	"github.com/hightemp/isocountry/internal/index"
	"github.com/hightemp/isocountry/internal/ingest"
	"github.com/hightemp/isocountry/internal/snapshot"
	"github.com/hightemp/isocountry/internal/timezone"
)

// generateOptions are the inputs of one generator run.
type generateOptions struct {
	CountriesPath string
	TimezonesPath string
	OutputDir     string
	Package       string
	Features      config.Features
	Snapshot      bool
	Date          string
	Force         bool
}

// generateReport summarizes a generator run.
type generateReport struct {
	Records     int
	Tables      map[index.Kind]int
	Files       []string
	SnapshotDir string
}

var (
	genCountries  string
	genTimezones  string
	genOutputDir  string
	genPackage    string
	genFeatures   config.Features
	genSnapshot   bool
	genNoSnapshot bool
	genDate       string
	genForce      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile the raw documents into Go lookup tables",
	Long: `Reads the country and timezone documents, normalizes and deduplicates
the records, builds the perfect hash tables and writes the generated Go
sources. A snapshot of the compiled index is stored in the cache unless
--no-snapshot is given.

Examples:
  isogen generate
  isogen generate --features from_alpha_2,from_alpha_3
  isogen generate --out ./pkg/countries --package countries --no-snapshot`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genCountries, "countries", "", "country document (default <data_dir>/"+config.CountriesFileName+")")
	generateCmd.Flags().StringVar(&genTimezones, "timezones", "", "timezone document (default <data_dir>/"+config.TimezonesFileName+")")
	generateCmd.Flags().StringVar(&genOutputDir, "out", "", "output directory for generated sources (default output_dir)")
	generateCmd.Flags().StringVar(&genPackage, "package", "", "package name of generated sources (default package)")
	generateCmd.Flags().Var(&genFeatures, "features", "optional tables: "+strings.Join(config.FeatureNames, ", ")+", all or none")
	generateCmd.Flags().BoolVar(&genSnapshot, "snapshot", true, "store a snapshot of the compiled index")
	generateCmd.Flags().BoolVar(&genNoSnapshot, "no-snapshot", false, "do not store a snapshot")
	generateCmd.Flags().StringVar(&genDate, "date", "", "snapshot date (YYYY-MM-DD, default today)")
	generateCmd.Flags().BoolVar(&genForce, "force", false, "replace an existing snapshot for the date")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts := generateOptions{
		CountriesPath: orDefault(genCountries, config.CountriesPath(cfg.DataDir)),
		TimezonesPath: orDefault(genTimezones, config.TimezonesPath(cfg.DataDir)),
		OutputDir:     orDefault(genOutputDir, cfg.OutputDir),
		Package:       orDefault(genPackage, cfg.Package),
		Features:      cfg.Features,
		Snapshot:      genSnapshot && !genNoSnapshot,
		Date:          orDefault(genDate, time.Now().Format(snapshot.DateLayout)),
		Force:         genForce,
	}
	if cmd.Flags().Changed("features") {
		opts.Features = genFeatures
	}

	report, err := generate(opts, cfg.CacheDir, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generated %d countries into %s\n", report.Records, opts.OutputDir)
	for _, kind := range index.Kinds {
		if n, ok := report.Tables[kind]; ok {
			fmt.Fprintf(out, "  %-8s %d keys\n", kind, n)
		}
	}
	for _, f := range report.Files {
		fmt.Fprintf(out, "  wrote %s\n", f)
	}
	if report.SnapshotDir != "" {
		fmt.Fprintf(out, "  snapshot %s\n", report.SnapshotDir)
	}
	return nil
}

// generate runs the whole pipeline. Nothing is written unless every
// stage succeeds.
func generate(opts generateOptions, cacheDir string, logger *zap.Logger) (*generateReport, error) {
	if opts.Snapshot && !snapshot.ValidDate(opts.Date) {
		return nil, withCode(ExitInvalidInput, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", opts.Date))
	}

	countryEntries, err := ingest.ReadCountriesFile(opts.CountriesPath)
	if err != nil {
		return nil, withCode(ExitInvalidInput, err)
	}
	zoneEntries, err := ingest.ReadZonesFile(opts.TimezonesPath)
	if err != nil {
		return nil, withCode(ExitInvalidInput, err)
	}
	logger.Debug("read documents",
		zap.Int("countries", len(countryEntries)),
		zap.Int("zones", len(zoneEntries)))

	zones := timezone.Index(zoneEntries, logger)
	records := countries.Build(countryEntries, zones, logger)

	idx, err := compiler.Compile(records, opts.Features, logger)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	if err := compiler.Verify(idx); err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}

	files, err := codegen.Emit(idx, codegen.Options{Package: opts.Package, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("emit: %w", err)
	}
	if err := config.EnsureDir(opts.OutputDir); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := codegen.WriteFiles(opts.OutputDir, files); err != nil {
		return nil, fmt.Errorf("write sources: %w", err)
	}

	report := &generateReport{
		Records: len(idx.Records),
		Tables:  make(map[index.Kind]int),
	}
	for _, kind := range index.Kinds {
		if t := idx.Table(kind); t != nil {
			report.Tables[kind] = t.Len()
		}
	}
	for _, f := range files {
		report.Files = append(report.Files, f.Name)
	}
	logger.Info("generated sources",
		zap.Int("countries", report.Records),
		zap.Strings("files", report.Files),
		zap.Strings("features", opts.Features.List()))

	if !opts.Snapshot {
		return report, nil
	}

	mgr := snapshot.NewManager(cacheDir)
	if !opts.Force && mgr.SnapshotExists(opts.Date) {
		logger.Info("snapshot already exists, use --force to rebuild", zap.String("date", opts.Date))
		return report, nil
	}

	meta := snapshot.NewMetadata()
	meta.Describe(idx, opts.Features)
	dir, err := mgr.Publish(opts.Date, idx, meta, []string{opts.CountriesPath, opts.TimezonesPath})
	if err != nil {
		return nil, fmt.Errorf("publish snapshot: %w", err)
	}
	report.SnapshotDir = dir
	logger.Info("stored snapshot", zap.String("date", opts.Date), zap.String("build_id", meta.BuildID))

	return report, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
