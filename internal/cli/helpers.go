package cli

import (
	"fmt"
	"net/http"

	"github.com/fatih/color"
	"github.com/glorpus-work/dscache/internal/logger"
	"github.com/glorpus-work/dscache/pkg/archive"
	"github.com/glorpus-work/dscache/pkg/auth"
	"github.com/glorpus-work/dscache/pkg/config"
	"github.com/glorpus-work/dscache/pkg/dataset"
	"github.com/glorpus-work/dscache/pkg/download"
	"github.com/glorpus-work/dscache/pkg/fsutil"
	dshttp "github.com/glorpus-work/dscache/pkg/http"
	"github.com/glorpus-work/dscache/pkg/orchestrator"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
	NoColor    *bool
)

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := fsutil.GetDefaultConfigPath()
	if err != nil {
		// An empty path fails later with ErrEmptyConfigPath.
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

// loadConfig loads the configuration and applies the global flags and logging settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Settings.LogLevel
	if Verbose != nil && *Verbose {
		level = "debug"
	}
	logger.InitLogger(level, logger.OutputFormat(cfg.Settings.LogFormat))

	if NoColor != nil && *NoColor {
		color.NoColor = true
	}

	return cfg, nil
}

func loadCredentials(cfg *config.Config) (auth.Authenticator, error) {
	path, err := cfg.GetCredentialsFile()
	if err != nil {
		return nil, fmt.Errorf("failed to locate credentials: %w", err)
	}
	creds, err := config.LoadCredentials(path)
	if err != nil {
		return nil, err
	}
	return creds.ToAuthenticator(), nil
}

func loadHTTPClient(cfg *config.Config) (*http.Client, error) {
	return dshttp.NewClient(dshttp.Options{
		Timeout:           cfg.Settings.HTTPTimeout,
		HeaderTimeout:     cfg.Settings.HTTPTimeout,
		UserAgent:         "dscache/" + Version,
		RequestsPerSecond: cfg.Settings.RequestsPerSecond,
		Burst:             cfg.Settings.Burst,
	})
}

func loadDatasetClient(cfg *config.Config, client dshttp.Doer, authn auth.Authenticator) *dataset.Client {
	return dataset.NewClient(cfg.Settings.APIBaseURL, client, authn)
}

func loadDownloadManager(cfg *config.Config, client dshttp.Doer) *download.ManagerImpl {
	progress := download.LogProgress
	if cfg.Settings.Progress == config.ProgressConsole {
		progress = newConsoleProgress(consoleOutput).Report
	}
	return download.NewManager(download.Options{
		BaseURL:  cfg.Settings.APIBaseURL,
		Dir:      cfg.GetDatasetsDir(),
		Client:   client,
		Progress: progress,
	})
}

// services bundles everything a network command needs.
type services struct {
	cfg   *config.Config
	authn auth.Authenticator
	api   *dataset.Client
	dl    *download.ManagerImpl
}

func loadServices() (*services, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	authn, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}
	client, err := loadHTTPClient(cfg)
	if err != nil {
		return nil, err
	}
	// Dataset files can take longer than http_timeout to stream.
	dl := loadDownloadManager(cfg, dshttp.Streaming(client))
	return &services{
		cfg:   cfg,
		authn: authn,
		api:   loadDatasetClient(cfg, client, authn),
		dl:    dl,
	}, nil
}

func (s *services) orchestrator(hooks orchestrator.Hooks) *orchestrator.Orchestrator {
	return &orchestrator.Orchestrator{
		API:       s.api,
		DL:        s.dl,
		Extractor: archive.NewManager(),
		Hooks:     hooks,
	}
}
