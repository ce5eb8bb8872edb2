// Package config provides configuration management for dscache.
// It handles loading, validating and saving application settings and the list of
// datasets to keep cached, as well as reading API credentials. Settings live in a
// YAML file; missing files fall back to sensible defaults.
package config

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glorpus-work/dscache/pkg/dataset"
	"github.com/glorpus-work/dscache/pkg/errors"
	"github.com/glorpus-work/dscache/pkg/fsutil"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// Datasets synced by `dscache sync` when no handle is given.
	Datasets []*DatasetConfig `yaml:"datasets"`

	// General settings
	Settings Settings `yaml:"settings"`
}

// DatasetConfig pins one dataset version and the files wanted from it.
type DatasetConfig struct {
	Handle  string   `yaml:"handle"`
	Version int      `yaml:"version"`
	Files   []string `yaml:"files"`
	Extract bool     `yaml:"extract,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	// Remote API
	APIBaseURL      string `yaml:"api_base_url"`
	CredentialsFile string `yaml:"credentials_file,omitempty"`

	// Local cache root; files land in <datasets_dir>/<owner>/<dataset>/versions/<n>/<file>.
	DatasetsDir string `yaml:"datasets_dir"`

	// Network settings
	HTTPTimeout       time.Duration `yaml:"http_timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`

	// Output settings
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json
	Progress  string `yaml:"progress"`   // log, console
}

// Default configuration values.
const (
	// DefaultAPIBaseURL is the dataset API root.
	DefaultAPIBaseURL = "https://www.kaggle.com/api/v1"

	// DefaultDatasetsDir is relative to the working directory.
	DefaultDatasetsDir = "datasets"

	// DefaultHTTPTimeout bounds metadata requests and the wait for download response headers.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultRequestsPerSecond and DefaultBurst throttle outbound API calls.
	DefaultRequestsPerSecond = 5
	DefaultBurst             = 5

	// ProgressLog emits one log record per downloaded chunk.
	ProgressLog = "log"
	// ProgressConsole redraws a single console line.
	ProgressConsole = "console"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"text": true, "json": true}
	validProgress   = map[string]bool{ProgressLog: true, ProgressConsole: true}
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Datasets: []*DatasetConfig{},
		Settings: Settings{
			APIBaseURL:        DefaultAPIBaseURL,
			DatasetsDir:       DefaultDatasetsDir,
			HTTPTimeout:       DefaultHTTPTimeout,
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
			LogLevel:          "info",
			LogFormat:         "text",
			Progress:          ProgressLog,
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// SaveConfig atomically writes the configuration to path.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	data, err := c.ToYAML()
	if err != nil {
		return err
	}

	if err := fsutil.WriteFileAtomic(absPath, data, fsutil.FileModeSecure); err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return buf.Bytes(), nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validateSettings(c.Settings); err != nil {
		return err
	}
	return validateDatasets(c.Datasets)
}

func validateSettings(s Settings) error {
	u, err := url.Parse(s.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api_base_url %q: must be an absolute URL", s.APIBaseURL)
	}
	if s.DatasetsDir == "" {
		return fmt.Errorf("datasets_dir cannot be empty")
	}
	if s.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout cannot be negative")
	}
	if s.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second cannot be negative")
	}
	if s.Burst < 0 {
		return fmt.Errorf("burst cannot be negative")
	}
	if !validLogLevels[strings.ToLower(s.LogLevel)] {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", s.LogLevel)
	}
	if !validLogFormats[s.LogFormat] {
		return fmt.Errorf("invalid log_format %q: must be text or json", s.LogFormat)
	}
	if !validProgress[s.Progress] {
		return fmt.Errorf("invalid progress %q: must be log or console", s.Progress)
	}
	return nil
}

func validateDatasets(datasets []*DatasetConfig) error {
	seen := make(map[string]bool)
	for i, ds := range datasets {
		if ds == nil {
			return fmt.Errorf("dataset at index %d is empty", i)
		}
		if _, _, err := dataset.ParseHandle(ds.Handle); err != nil {
			return fmt.Errorf("dataset at index %d: %w", i, err)
		}
		if ds.Version < 1 {
			return fmt.Errorf("dataset %s: version must be a positive number", ds.Handle)
		}
		if len(ds.Files) == 0 {
			return fmt.Errorf("dataset %s: at least one file is required", ds.Handle)
		}
		key := fmt.Sprintf("%s@%d", ds.Handle, ds.Version)
		if seen[key] {
			return fmt.Errorf("dataset %s is listed more than once", key)
		}
		seen[key] = true
	}
	return nil
}

// GetDataset returns the configured entry for handle, or nil.
func (c *Config) GetDataset(handle string) *DatasetConfig {
	for _, ds := range c.Datasets {
		if ds.Handle == handle {
			return ds
		}
	}
	return nil
}

// GetDatasetsDir returns the cache root from settings.
func (c *Config) GetDatasetsDir() string {
	return c.Settings.DatasetsDir
}

// GetCredentialsFile returns the configured credentials path, falling back to
// ~/.kaggle/kaggle.json.
func (c *Config) GetCredentialsFile() (string, error) {
	if c.Settings.CredentialsFile != "" {
		return c.Settings.CredentialsFile, nil
	}
	return fsutil.GetDefaultCredentialsPath()
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Settings.APIBaseURL == "" {
		c.Settings.APIBaseURL = defaults.Settings.APIBaseURL
	}
	c.Settings.APIBaseURL = strings.TrimRight(c.Settings.APIBaseURL, "/")
	if c.Settings.DatasetsDir == "" {
		c.Settings.DatasetsDir = defaults.Settings.DatasetsDir
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
	if c.Settings.LogFormat == "" {
		c.Settings.LogFormat = defaults.Settings.LogFormat
	}
	if c.Settings.Progress == "" {
		c.Settings.Progress = defaults.Settings.Progress
	}
	if c.Datasets == nil {
		c.Datasets = defaults.Datasets
	}
}
