package cache

import (
	"os"
	"path/filepath"
	"time"

	"github.com/glorpus-work/dscache/pkg/dataset"
	"github.com/glorpus-work/dscache/pkg/errors"
	"github.com/glorpus-work/dscache/pkg/fsutil"
)

// EntryPath returns the deterministic location of ref below root:
// <root>/<owner>/<dataset>/versions/<version>/<file>.
func EntryPath(root string, ref dataset.FileRef) string {
	return ref.CachePath(root)
}

// NeedsOverwrite reports whether the file at localPath must be (re)downloaded to match a
// remote file last modified at remoteLastModified with remoteSize bytes.
//
// The parent directory of localPath is always created first, so a caller that goes on
// to write the file never has to. A local copy is stale when it is missing, when its
// modification time is strictly before the remote one, or when its size differs. A file
// newer than the remote but of the wrong size is therefore stale too.
func NeedsOverwrite(localPath string, remoteLastModified time.Time, remoteSize int64) (bool, error) {
	if err := fsutil.EnsureDir(filepath.Dir(localPath)); err != nil {
		return false, errors.Wrapf(err, "failed to create directory for %s", localPath)
	}

	info, err := os.Stat(localPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, errors.Wrapf(err, "failed to stat %s", localPath)
	}

	if info.ModTime().UTC().Before(remoteLastModified.UTC()) {
		return true, nil
	}

	return info.Size() != remoteSize, nil
}
