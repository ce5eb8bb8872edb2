package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/dscache/pkg/auth"
	"github.com/glorpus-work/dscache/pkg/errors"
	"github.com/glorpus-work/dscache/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kaggle.json")
	require.NoError(t, os.WriteFile(path, []byte(content), fsutil.FileModeSecure))
	return path
}

func TestReadCredentialsFile(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected *Credentials
		wantErr  error
	}{
		{
			name:     "valid file",
			content:  `{"username": "alice", "key": "0123abcd"}`,
			expected: &Credentials{Username: "alice", Key: "0123abcd"},
		},
		{
			name:    "invalid json",
			content: `{"username": "alice",`,
			wantErr: errors.ErrCredentialsParse,
		},
		{
			name:    "missing key",
			content: `{"username": "alice"}`,
			wantErr: errors.ErrCredentialsInvalid,
		},
		{
			name:    "blank username",
			content: `{"username": "  ", "key": "0123abcd"}`,
			wantErr: errors.ErrCredentialsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := ReadCredentialsFile(writeCredentials(t, tt.content))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, creds)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, creds)
		})
	}
}

func TestReadCredentialsFile_NotFound(t *testing.T) {
	_, err := ReadCredentialsFile(filepath.Join(t.TempDir(), "kaggle.json"))
	require.ErrorIs(t, err, errors.ErrCredentialsNotFound)
}

func TestLoadCredentials_EnvironmentWins(t *testing.T) {
	path := writeCredentials(t, `{"username": "file-user", "key": "file-key"}`)

	t.Setenv(EnvUsername, "env-user")
	t.Setenv(EnvKey, "env-key")

	creds, err := LoadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, &Credentials{Username: "env-user", Key: "env-key"}, creds)
}

func TestLoadCredentials_PartialEnvironmentIgnored(t *testing.T) {
	path := writeCredentials(t, `{"username": "file-user", "key": "file-key"}`)

	t.Setenv(EnvUsername, "env-user")
	t.Setenv(EnvKey, "")

	creds, err := LoadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, "file-user", creds.Username)
}

func TestCredentialsToAuthenticator(t *testing.T) {
	creds := &Credentials{Username: "alice", Key: "secret"}

	authn := creds.ToAuthenticator()
	require.IsType(t, &auth.BasicAuth{}, authn)
	assert.Equal(t, auth.BasicAuthType, authn.Type())
	assert.Equal(t, "alice", authn.(*auth.BasicAuth).Username)
	assert.Equal(t, "secret", authn.(*auth.BasicAuth).Password)
}
