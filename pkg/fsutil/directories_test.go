package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureFileDir(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "creates missing version directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "owner", "dataset", "versions", "3", "data.csv")
			},
		},
		{
			name: "succeeds when parent directory exists",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "data.csv")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := tt.setup(t)

			require.NoError(t, EnsureFileDir(filePath))
			require.NoError(t, EnsureFileDir(filePath), "second call must be idempotent")

			dir := filepath.Dir(filePath)
			assert.DirExists(t, dir)
			assert.NoFileExists(t, filePath)
		})
	}
}

func TestEnsureDir_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping permission test on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("Skipping permission test when running as root")
	}

	readonlyDir := filepath.Join(t.TempDir(), "readonly")
	require.NoError(t, os.Mkdir(readonlyDir, DirModeReadOnly))

	err := EnsureDir(filepath.Join(readonlyDir, "shouldfail"))
	assert.Error(t, err)
	assert.False(t, os.IsExist(err))
}
