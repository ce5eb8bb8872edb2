package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigKey         = fmt.Errorf("unknown configuration key")
	ErrConfigFileExists  = fmt.Errorf("configuration file already exists")

	// Credential errors.
	ErrCredentialsNotFound = fmt.Errorf("credentials file not found")
	ErrCredentialsParse    = fmt.Errorf("invalid JSON in credentials file")
	ErrCredentialsInvalid  = fmt.Errorf("credentials must contain 'username' and 'key' fields")

	// Remote errors.
	ErrRemote            = fmt.Errorf("remote request failed")
	ErrMalformedResponse = fmt.Errorf("malformed response")
	ErrDatasetNotFound   = fmt.Errorf("dataset not found")
	ErrInvalidHandle     = fmt.Errorf("invalid dataset handle")
	ErrInvalidVersion    = fmt.Errorf("invalid dataset version")

	// Cache errors.
	ErrCacheInfo = fmt.Errorf("failed to get cache info")
)

// RemoteError reports a non-success HTTP status returned by the dataset API.
type RemoteError struct {
	StatusCode int
	URL        string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: unexpected status code: %d from %s", ErrRemote, e.StatusCode, e.URL)
}

// Is reports whether target is ErrRemote.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}

// MalformedResponseError reports a response whose headers cannot describe the remote file.
type MalformedResponseError struct {
	Header string
	Value  string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s header %s", ErrMalformedResponse, e.Header, e.Reason)
	}
	return fmt.Sprintf("%s: %s header %q %s", ErrMalformedResponse, e.Header, e.Value, e.Reason)
}

// Is reports whether target is ErrMalformedResponse.
func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
