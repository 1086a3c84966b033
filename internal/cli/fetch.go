package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hightemp/isocountry/internal/config"
	"github.com/hightemp/isocountry/internal/source"
)

var (
	fetchDataDir       string
	fetchCountriesOnly bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the raw country and timezone documents",
	Long: `Downloads the country document and the timezone list into the data
directory, replacing the files generate reads. The timezone service needs
an API key, set sources.timezonedb_key or $` + config.EnvTimezoneDBKey + `.

Examples:
  isogen fetch
  isogen fetch --countries-only
  isogen fetch --data-dir ./testdata`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchDataDir, "data-dir", "", "directory to write the documents to (default data_dir)")
	fetchCmd.Flags().BoolVar(&fetchCountriesOnly, "countries-only", false, "skip the timezone document")
}

func runFetch(cmd *cobra.Command, args []string) error {
	dataDir := orDefault(fetchDataDir, cfg.DataDir)
	if err := config.EnsureDir(dataDir); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	ctx := cmd.Context()
	client := source.NewClient(logger)

	body, err := client.FetchCountries(ctx, cfg.Sources.CountriesURL)
	if err != nil {
		return withCode(ExitFetchFailed, err)
	}
	countriesPath := config.CountriesPath(dataDir)
	if err := config.WriteFileAtomic(countriesPath, body); err != nil {
		return fmt.Errorf("save countries: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", countriesPath, len(body))

	if fetchCountriesOnly {
		return nil
	}

	body, err = client.FetchTimezones(ctx, cfg.Sources.TimezonesURL, cfg.Sources.TimezoneDBKey)
	if errors.Is(err, source.ErrMissingKey) {
		return withCode(ExitInvalidInput, err)
	}
	if err != nil {
		return withCode(ExitFetchFailed, err)
	}
	timezonesPath := config.TimezonesPath(dataDir)
	if err := config.WriteFileAtomic(timezonesPath, body); err != nil {
		return fmt.Errorf("save timezones: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", timezonesPath, len(body))

	logger.Debug("fetch complete", zap.String("data_dir", dataDir))
	return nil
}
