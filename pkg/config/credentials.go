package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/glorpus-work/dscache/pkg/auth"
	"github.com/glorpus-work/dscache/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// Environment variables that override the credentials file when both are set.
const (
	EnvUsername = "KAGGLE_USERNAME"
	EnvKey      = "KAGGLE_KEY"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Credentials is the API account, as stored in kaggle.json.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Key      string `json:"key" validate:"required"`
}

// ToAuthenticator converts the credentials to HTTP basic auth.
func (c *Credentials) ToAuthenticator() auth.Authenticator {
	return &auth.BasicAuth{
		Username: c.Username,
		Password: c.Key,
	}
}

// LoadCredentials reads credentials from the environment, or from the JSON file at path.
func LoadCredentials(path string) (*Credentials, error) {
	if creds, ok := credentialsFromEnv(); ok {
		return creds, nil
	}
	return ReadCredentialsFile(path)
}

// ReadCredentialsFile parses a kaggle.json style file.
func ReadCredentialsFile(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrCredentialsNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "failed to read credentials file: %s", path)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, errors.Wrap(errors.ErrCredentialsParse, err.Error())
	}

	creds.Username = strings.TrimSpace(creds.Username)
	creds.Key = strings.TrimSpace(creds.Key)
	if err := validate.Struct(&creds); err != nil {
		return nil, errors.Wrapf(errors.ErrCredentialsInvalid, "%s", path)
	}

	return &creds, nil
}

func credentialsFromEnv() (*Credentials, bool) {
	creds := &Credentials{
		Username: strings.TrimSpace(os.Getenv(EnvUsername)),
		Key:      strings.TrimSpace(os.Getenv(EnvKey)),
	}
	if validate.Struct(creds) != nil {
		return nil, false
	}
	return creds, true
}
