// Package archive detects and unpacks downloaded dataset archives.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/dscache/pkg/fsutil"
	"github.com/mholt/archives"
)

// Extraction errors.
var (
	ErrEntryEscapes      = fmt.Errorf("archive entry escapes the destination")
	ErrInvalidLinkTarget = fmt.Errorf("invalid link target in archive")
)

// Manager handles archive detection and extraction.
type Manager struct{}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// IsArchive reports whether the file at path is an archive with extractable entries.
// Plain compressed files (a lone .gz, for example) are not archives.
func (am *Manager) IsArchive(ctx context.Context, path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	format, _, err := archives.Identify(ctx, filepath.Base(path), file)
	if errors.Is(err, archives.NoMatch) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to identify %s: %w", path, err)
	}

	_, ok := format.(archives.Extractor)
	return ok, nil
}

// ExtractAll extracts all entries from an archive into destDir. Entries are never
// written outside destDir, neither directly nor through a symlink, and links may only
// point inside it.
func (am *Manager) ExtractAll(ctx context.Context, archivePath, destDir string) error {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return fmt.Errorf("failed to open archive file: %w", err)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	if err := fsutil.EnsureDir(destDir); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}
	root, err := filepath.EvalSymlinks(destDir)
	if err != nil {
		return fmt.Errorf("failed to resolve destination directory: %w", err)
	}

	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return am.extractEntry(fsys, path, root, d)
	})
}

// extractEntry writes a single archive entry below root, which has no symlinks in it.
func (am *Manager) extractEntry(fsys fs.FS, path, root string, d fs.DirEntry) error {
	if path == "." {
		return nil
	}
	if !fs.ValidPath(path) {
		return fmt.Errorf("%w: %q", ErrEntryEscapes, path)
	}

	targetPath := filepath.Join(root, filepath.FromSlash(path))

	if d.IsDir() {
		if err := checkInside(root, targetPath); err != nil {
			return err
		}
		return fsutil.EnsureDir(targetPath)
	}

	// Links already extracted may redirect the parent directory.
	if err := checkInside(root, filepath.Dir(targetPath)); err != nil {
		return err
	}

	info, err := d.Info()
	if err != nil {
		return fmt.Errorf("failed to get file info for %s: %w", path, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return am.writeSymlink(fsys, path, root, targetPath, info)
	}

	return am.writeRegularFile(fsys, path, targetPath, info)
}

// writeSymlink recreates the link stored at path after checking that it points inside root.
func (am *Manager) writeSymlink(fsys fs.FS, path, root, targetPath string, info fs.FileInfo) error {
	target, err := readLinkTarget(fsys, path, info)
	if err != nil {
		return err
	}
	if err := validateLinkTarget(root, targetPath, target); err != nil {
		return err
	}

	if err := fsutil.EnsureFileDir(targetPath); err != nil {
		return fmt.Errorf("failed to create parent directory for symlink %s: %w", path, err)
	}

	_ = os.Remove(targetPath)

	return os.Symlink(target, targetPath)
}

func readLinkTarget(fsys fs.FS, path string, info fs.FileInfo) (string, error) {
	if fi, ok := info.(archives.FileInfo); ok && fi.LinkTarget != "" {
		return fi.LinkTarget, nil
	}

	link, err := fsys.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read symlink %s: %w", path, err)
	}
	defer func() { _ = link.Close() }()

	target, err := io.ReadAll(link)
	if err != nil {
		return "", fmt.Errorf("failed to read symlink target %s: %w", path, err)
	}
	return string(target), nil
}

// validateLinkTarget rejects absolute targets and targets resolving outside root,
// following any links already present on disk.
func validateLinkTarget(root, linkPath, target string) error {
	if target == "" || filepath.IsAbs(target) || filepath.VolumeName(target) != "" {
		return fmt.Errorf("%w: %q", ErrInvalidLinkTarget, target)
	}

	parent, err := resolveExisting(filepath.Dir(linkPath))
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", linkPath, err)
	}
	if !isInside(root, filepath.Join(parent, target)) {
		return fmt.Errorf("%w: %q", ErrInvalidLinkTarget, target)
	}

	// Join cleans ".." lexically; EvalSymlinks applies it after following each link.
	if resolved, err := filepath.EvalSymlinks(parent + string(filepath.Separator) + target); err == nil && !isInside(root, resolved) {
		return fmt.Errorf("%w: %q", ErrInvalidLinkTarget, target)
	}
	return nil
}

// checkInside fails when path, with the links on disk followed, is not below root.
func checkInside(root, path string) error {
	resolved, err := resolveExisting(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if !isInside(root, resolved) {
		return fmt.Errorf("%w: %s", ErrEntryEscapes, path)
	}
	return nil
}

// resolveExisting follows symlinks along the longest existing prefix of path and
// appends the rest unchanged.
func resolveExisting(path string) (string, error) {
	var rest []string
	for {
		resolved, err := filepath.EvalSymlinks(path)
		if err == nil {
			return filepath.Join(append([]string{resolved}, rest...)...), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", err
		}
		rest = append([]string{filepath.Base(path)}, rest...)
		path = parent
	}
}

func isInside(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// writeRegularFile copies the entry at path to targetPath, keeping mode and mtime.
func (am *Manager) writeRegularFile(fsys fs.FS, path, targetPath string, info fs.FileInfo) error {
	srcFile, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", path, err)
	}
	defer func() { _ = srcFile.Close() }()

	if err := fsutil.EnsureFileDir(targetPath); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", path, err)
	}

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = fsutil.FileModeDefault
	}

	// A link left by an earlier entry is replaced, not written through.
	if fi, err := os.Lstat(targetPath); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		if err := os.Remove(targetPath); err != nil {
			return fmt.Errorf("failed to replace symlink %s: %w", targetPath, err)
		}
	}

	dstFile, err := fsutil.CreateFilePerm(targetPath, perm)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", targetPath, err)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file %s: %w", path, err)
	}

	if err := os.Chtimes(targetPath, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to set modification time for %s: %w", targetPath, err)
	}
	return nil
}
