package fsutil

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the name of the application used in paths
	AppName = "dscache"

	// credentialsDirName and credentialsFileName follow the Kaggle CLI layout.
	credentialsDirName  = ".kaggle"
	credentialsFileName = "kaggle.json"
)

// GetConfigDir returns the platform-specific configuration directory for the application
// On Linux: ~/.config/dscache/
// On macOS: ~/Library/Application Support/dscache/
// On Windows: %AppData%\dscache\
func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}

// GetDefaultConfigPath returns <config_dir>/config.yaml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// GetDefaultCredentialsPath returns ~/.kaggle/kaggle.json.
func GetDefaultCredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, credentialsDirName, credentialsFileName), nil
}
