// Package download fetches dataset files into the local cache, skipping the transfer
// when the cached copy is still fresh.
package download

import (
	"context"
	"io"
	"net/http"

	"github.com/glorpus-work/dscache/internal/logger"
	"github.com/glorpus-work/dscache/pkg/auth"
	"github.com/glorpus-work/dscache/pkg/cache"
	"github.com/glorpus-work/dscache/pkg/dataset"
	"github.com/glorpus-work/dscache/pkg/errors"
	"github.com/glorpus-work/dscache/pkg/fsutil"
	dshttp "github.com/glorpus-work/dscache/pkg/http"
)

// ManagerImpl downloads one file per call through the configured client.
// Concurrent fetches of the same file are not supported.
type ManagerImpl struct {
	opts Options
}

// NewManager creates a new download manager.
func NewManager(opts Options) *ManagerImpl {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	return &ManagerImpl{opts: opts}
}

// Fetch downloads ref into <Dir>/<owner>/<dataset>/versions/<version>/<file> unless the
// local copy is fresh, and returns that path.
//
// A non-2xx status fails before anything touches the filesystem. A failure while the
// body is streamed leaves a truncated file behind; the next call sees the size
// mismatch and downloads again.
func (m *ManagerImpl) Fetch(ctx context.Context, ref dataset.FileRef, authn auth.Authenticator) (string, error) {
	if err := ref.Validate(); err != nil {
		return "", err
	}

	path := cache.EntryPath(m.opts.Dir, ref)
	downloadURL, err := ref.DownloadURL(m.opts.BaseURL)
	if err != nil {
		return "", errors.Wrapf(err, "failed to build download URL for %s", ref)
	}

	resp, err := m.doRequest(ctx, downloadURL, authn)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := dshttp.CheckResponse(resp); err != nil {
		return "", err
	}

	remote, err := ParseRemoteFile(resp)
	if err != nil {
		return "", errors.Wrapf(err, "cannot fetch %s", ref)
	}

	stale, err := cache.NeedsOverwrite(path, remote.LastModified, remote.Size)
	if err != nil {
		return "", err
	}
	if !stale {
		logger.Info("file already exists and is up to date", logger.Fields{"path": path})
		return path, nil
	}

	logger.Debug("downloading file", logger.Fields{"file": ref.String(), "size": remote.Size, "path": path})
	if err := m.writeBody(path, ref.FileName, resp.Body, remote.Size); err != nil {
		return "", err
	}

	logger.Success("file downloaded", logger.Fields{"path": path, "size": remote.Size})
	return path, nil
}

func (m *ManagerImpl) doRequest(ctx context.Context, downloadURL string, authn auth.Authenticator) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	// Content-Length must describe the bytes written to disk.
	req.Header.Set("Accept-Encoding", "identity")
	if err := auth.ApplyTo(req, authn); err != nil {
		return nil, err
	}

	resp, err := m.opts.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "download failed")
	}
	return resp, nil
}

func (m *ManagerImpl) writeBody(path, name string, body io.Reader, total int64) error {
	file, err := fsutil.OpenTruncate(path)
	if err != nil {
		return errors.Wrapf(err, "could not open %s", path)
	}

	pw := &progressWriter{w: file, file: name, total: total, report: m.opts.Progress}
	_, copyErr := io.CopyBuffer(pw, readerOnly{body}, make([]byte, m.opts.ChunkSize))
	closeErr := file.Close()

	if copyErr != nil {
		return errors.Wrapf(copyErr, "could not write %s", path)
	}
	if closeErr != nil {
		return errors.Wrapf(closeErr, "could not close %s", path)
	}
	return nil
}
