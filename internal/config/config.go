// Package config provides configuration and path management.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// AppName is the application name.
	AppName = "isogen"

	// CacheDirName is the cache directory name.
	CacheDirName = ".isogen"

	// SnapshotsDirName is the snapshots subdirectory name.
	SnapshotsDirName = "snapshots"

	// LatestSymlink is the name of the latest snapshot symlink.
	LatestSymlink = "latest"

	// MetadataFileName is the metadata file name.
	MetadataFileName = "metadata.json"

	// IndexFileName is the compiled index file name.
	IndexFileName = "index.bin"

	// RawDirName is the raw data directory name.
	RawDirName = "raw"

	// CountriesFileName is the raw country document file name.
	CountriesFileName = "countries.json"

	// TimezonesFileName is the raw timezone document file name.
	TimezonesFileName = "timezones.json"

	// DefaultDataDir holds the raw documents consumed by generate.
	DefaultDataDir = "data"

	// DefaultOutputDir is where generated Go files are written.
	DefaultOutputDir = "."

	// DefaultPackage is the package name of the generated files.
	DefaultPackage = "isocountry"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultCountriesURL is the country information service endpoint.
	DefaultCountriesURL = "https://restcountries.com/v2/all"

	// DefaultTimezonesURL is the timezone information service endpoint.
	DefaultTimezonesURL = "http://api.timezonedb.com/v2.1/list-time-zone"

	// IndexFormatVersion is the current index format version.
	IndexFormatVersion uint32 = 1

	// ConfigEnvVar names the environment variable holding the config file path.
	ConfigEnvVar = "ISOGEN_CONFIG"
)

// Config holds runtime configuration.
type Config struct {
	// CacheDir holds snapshots.
	CacheDir string `yaml:"cache_dir"`

	// DataDir holds the raw provider documents.
	DataDir string `yaml:"data_dir"`

	// OutputDir is where generate writes Go source.
	OutputDir string `yaml:"output_dir"`

	// Package is the package clause of the generated files.
	Package string `yaml:"package"`

	// Features lists the optional lookup tables to emit.
	// Default: all of them.
	Features Features `yaml:"features"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Sources configures the upstream data providers.
	Sources SourcesConfig `yaml:"sources"`
}

// SourcesConfig configures the upstream data providers used by fetch.
type SourcesConfig struct {
	CountriesURL string `yaml:"countries_url"`
	TimezonesURL string `yaml:"timezones_url"`

	// TimezoneDBKey is the API key for the timezone service.
	TimezoneDBKey string `yaml:"timezonedb_key"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		CacheDir:  DefaultCacheDir(),
		DataDir:   DefaultDataDir,
		OutputDir: DefaultOutputDir,
		Package:   DefaultPackage,
		Features:  AllFeatures(),
		LogLevel:  DefaultLogLevel,
		Sources: SourcesConfig{
			CountriesURL: DefaultCountriesURL,
			TimezonesURL: DefaultTimezonesURL,
		},
	}
}

// DefaultCacheDir returns the default cache directory path.
func DefaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory
		home = "."
	}
	return filepath.Join(home, CacheDirName, "cache")
}

// SnapshotsDir returns the snapshots directory path.
func SnapshotsDir(cacheDir string) string {
	return filepath.Join(cacheDir, SnapshotsDirName)
}

// SnapshotDir returns the path for a specific snapshot.
func SnapshotDir(cacheDir, date string) string {
	return filepath.Join(SnapshotsDir(cacheDir), date)
}

// LatestSnapshotPath returns the path to the latest symlink.
func LatestSnapshotPath(cacheDir string) string {
	return filepath.Join(SnapshotsDir(cacheDir), LatestSymlink)
}

// MetadataPath returns the metadata file path for a snapshot.
func MetadataPath(snapshotDir string) string {
	return filepath.Join(snapshotDir, MetadataFileName)
}

// IndexPath returns the compiled index file path for a snapshot.
func IndexPath(snapshotDir string) string {
	return filepath.Join(snapshotDir, IndexFileName)
}

// RawDir returns the raw data directory path for a snapshot.
func RawDir(snapshotDir string) string {
	return filepath.Join(snapshotDir, RawDirName)
}

// CountriesPath returns the raw country document path inside dataDir.
func CountriesPath(dataDir string) string {
	return filepath.Join(dataDir, CountriesFileName)
}

// TimezonesPath returns the raw timezone document path inside dataDir.
func TimezonesPath(dataDir string) string {
	return filepath.Join(dataDir, TimezonesFileName)
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// IsWindows returns true if running on Windows.
func IsWindows() bool {
	return runtime.GOOS == "windows"
}
