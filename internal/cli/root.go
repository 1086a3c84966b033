// Package cli implements the command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hightemp/isocountry/internal/config"
	"github.com/hightemp/isocountry/internal/logging"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags
var (
	configPath string
	cacheDir   string
	logLevel   string
)

// Resolved by the root command before any subcommand runs.
var (
	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "isogen",
	Short: "Compile country data into Go lookup tables",
	Long: `isogen builds the isocountry package from a country information
document and a timezone document.

Generate the package sources and a snapshot:
  isogen generate

Download fresh documents first:
  isogen fetch && isogen generate

Query the latest snapshot:
  isogen lookup --alpha2 IN
  isogen lookup --region Europe --json`,
	PersistentPreRunE: setup,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

// ExitCode constants
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitNoSnapshot   = 3
	ExitNotFound     = 4
	ExitFetchFailed  = 5
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	_ = logger.Sync()
	if err == nil {
		return ExitSuccess
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitFailure
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $"+config.ConfigEnvVar+")")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", config.DefaultCacheDir(), "cache directory path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return withCode(ExitInvalidInput, err)
	})

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads the configuration and applies explicitly set global flags
// over it.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return withCode(ExitInvalidInput, err)
	}
	if cmd.Flags().Changed("cache-dir") {
		c.CacheDir = cacheDir
	}
	if cmd.Flags().Changed("log-level") {
		c.LogLevel = logLevel
	}

	l, err := logging.New(c.LogLevel)
	if err != nil {
		return withCode(ExitInvalidInput, err)
	}

	cfg, logger = c, l
	return nil
}
