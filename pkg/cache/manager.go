// Package cache decides whether cached dataset files are still fresh and reports on
// what the datasets directory holds.
package cache

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/glorpus-work/dscache/pkg/errors"
)

// DefaultManager implements the Manager interface for cache operations.
type DefaultManager struct {
	directory string
}

// NewManager creates a new cache manager rooted at the datasets directory.
func NewManager(directory string) *DefaultManager {
	return &DefaultManager{
		directory: directory,
	}
}

// GetInfo walks the datasets directory and summarizes it per dataset.
// Files outside the <owner>/<dataset>/versions/<n>/ layout count towards the totals only.
func (cm *DefaultManager) GetInfo() (*Info, error) {
	info := &Info{Directory: cm.directory}

	if _, err := os.Stat(cm.directory); os.IsNotExist(err) {
		return info, nil
	}

	byHandle := make(map[string]*DatasetInfo)
	err := filepath.WalkDir(cm.directory, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}

		info.TotalSize += fi.Size()
		info.TotalFiles++

		rel, err := filepath.Rel(cm.directory, path)
		if err != nil {
			return err
		}
		handle, version, ok := splitEntry(rel)
		if !ok {
			return nil
		}

		ds, found := byHandle[handle]
		if !found {
			ds = &DatasetInfo{Handle: handle}
			byHandle[handle] = ds
		}
		ds.Size += fi.Size()
		ds.Files++
		if !slices.Contains(ds.Versions, version) {
			ds.Versions = append(ds.Versions, version)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCacheInfo, "error walking directory %s: %v", cm.directory, err)
	}

	for _, ds := range byHandle {
		sort.Ints(ds.Versions)
		info.Datasets = append(info.Datasets, *ds)
	}
	sort.Slice(info.Datasets, func(i, j int) bool {
		return info.Datasets[i].Handle < info.Datasets[j].Handle
	})

	return info, nil
}

// GetDirectory returns the cache directory path.
func (cm *DefaultManager) GetDirectory() string {
	return cm.directory
}

// splitEntry extracts "<owner>/<dataset>" and the version from a path relative to the root.
func splitEntry(rel string) (string, int, bool) {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 5 || parts[2] != "versions" {
		return "", 0, false
	}
	version, err := strconv.Atoi(parts[3])
	if err != nil || version < 1 {
		return "", 0, false
	}
	return parts[0] + "/" + parts[1], version, true
}
