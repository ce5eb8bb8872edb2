package cache

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// CacheOperation renders cache manager results for display.
type CacheOperation struct {
	manager Manager
}

// NewCacheOperation creates a new cache operation instance.
func NewCacheOperation(manager Manager) *CacheOperation {
	return &CacheOperation{
		manager: manager,
	}
}

// GetInfo returns a human-readable summary of the cache with one table row per dataset.
func (op *CacheOperation) GetInfo() (string, error) {
	info, err := op.manager.GetInfo()
	if err != nil {
		return "", fmt.Errorf("failed to get cache info: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Cache Information:\n  Directory:  %s\n  Total Size: %s (%d files)\n",
		info.Directory, humanize.IBytes(uint64(info.TotalSize)), info.TotalFiles)

	if len(info.Datasets) == 0 {
		sb.WriteString("  No datasets cached.\n")
		return sb.String(), nil
	}

	sb.WriteString("\n")
	table := tablewriter.NewTable(&sb)
	table.Header([]string{"Dataset", "Versions", "Files", "Size"})
	for _, ds := range info.Datasets {
		if err := table.Append([]string{
			ds.Handle,
			joinVersions(ds.Versions),
			strconv.Itoa(ds.Files),
			humanize.IBytes(uint64(ds.Size)),
		}); err != nil {
			return "", fmt.Errorf("failed to render cache info: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("failed to render cache info: %w", err)
	}

	return sb.String(), nil
}

// GetDirectory returns the cache directory path.
func (op *CacheOperation) GetDirectory() string {
	return op.manager.GetDirectory()
}

func joinVersions(versions []int) string {
	parts := make([]string, len(versions))
	for i, v := range versions {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
