package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/glorpus-work/dscache/pkg/errors"
)

// SetValue sets a settings value by its YAML key and re-validates the settings.
// Supported keys:
//   - api_base_url, credentials_file, datasets_dir: strings
//   - http_timeout: duration (e.g. 45s)
//   - requests_per_second: float, 0 disables throttling
//   - burst: integer
//   - log_level, log_format, progress: enumerations checked by Validate
func (c *Config) SetValue(key, value string) error {
	s := c.Settings
	switch key {
	case "api_base_url":
		s.APIBaseURL = strings.TrimRight(value, "/")
	case "credentials_file":
		s.CredentialsFile = value
	case "datasets_dir":
		s.DatasetsDir = value
	case "http_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %s", key, value)
		}
		s.HTTPTimeout = d
	case "requests_per_second":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number value for %s: %s", key, value)
		}
		s.RequestsPerSecond = f
	case "burst":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %s", key, value)
		}
		s.Burst = n
	case "log_level":
		s.LogLevel = strings.ToLower(value)
	case "log_format":
		s.LogFormat = value
	case "progress":
		s.Progress = value
	default:
		return errors.Wrapf(errors.ErrConfigKey, "%s", key)
	}

	if err := validateSettings(s); err != nil {
		return errors.Wrap(errors.ErrConfigValidation, err.Error())
	}
	c.Settings = s
	return nil
}

// GetValue returns a settings value by its YAML key.
func (c *Config) GetValue(key string) (string, error) {
	value, ok := c.ToMap()[key]
	if !ok {
		return "", errors.Wrapf(errors.ErrConfigKey, "%s", key)
	}
	return value, nil
}

// ToMap flattens Settings into YAML key → string value, for display.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string)

	settingsValue := reflect.ValueOf(c.Settings)
	settingsType := settingsValue.Type()

	for i := 0; i < settingsValue.NumField(); i++ {
		field := settingsType.Field(i)
		yamlTag := field.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}

		// Handle yaml tags with options (e.g., "credentials_file,omitempty")
		yamlKey := strings.Split(yamlTag, ",")[0]

		fieldValue := settingsValue.Field(i)
		var strValue string

		switch {
		case field.Type == reflect.TypeOf(time.Duration(0)):
			strValue = time.Duration(fieldValue.Int()).String()
		case fieldValue.Kind() == reflect.Int:
			strValue = strconv.FormatInt(fieldValue.Int(), 10)
		case fieldValue.Kind() == reflect.Float64:
			strValue = strconv.FormatFloat(fieldValue.Float(), 'f', -1, 64)
		case fieldValue.Kind() == reflect.String:
			strValue = fieldValue.String()
		default:
			strValue = fmt.Sprintf("%v", fieldValue.Interface())
		}

		result[yamlKey] = strValue
	}

	return result
}
