// Package dataset models the remote dataset API: file identities, dataset records and
// the metadata calls used to list and inspect datasets.
package dataset

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/glorpus-work/dscache/pkg/errors"
)

// FileRef identifies one file of one dataset version.
type FileRef struct {
	Owner    string
	Dataset  string
	FileName string
	Version  int
}

// Handle returns "<owner>/<dataset>".
func (r FileRef) Handle() string {
	return r.Owner + "/" + r.Dataset
}

func (r FileRef) String() string {
	return fmt.Sprintf("%s/%s@%d", r.Handle(), r.FileName, r.Version)
}

// Validate rejects refs that cannot name a file below the cache root.
func (r FileRef) Validate() error {
	if r.Owner == "" || r.Dataset == "" || r.FileName == "" {
		return errors.Wrapf(errors.ErrInvalidHandle, "%s: owner, dataset and file name are required", r)
	}
	if strings.ContainsAny(r.Owner+r.Dataset, "/\\") {
		return errors.Wrapf(errors.ErrInvalidHandle, "%s: owner and dataset cannot contain path separators", r)
	}
	if isDotName(r.Owner) || isDotName(r.Dataset) {
		return errors.Wrapf(errors.ErrInvalidHandle, "%s: owner and dataset must name a directory", r)
	}
	if r.Version < 1 {
		return errors.Wrapf(errors.ErrInvalidVersion, "%s: version must be positive", r)
	}
	clean := path.Clean(strings.ReplaceAll(r.FileName, "\\", "/"))
	if path.IsAbs(clean) || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.Wrapf(errors.ErrInvalidHandle, "%s: file name escapes the dataset directory", r)
	}
	return nil
}

func isDotName(name string) bool {
	return name == "." || name == ".."
}

// CachePath returns root/<owner>/<dataset>/versions/<version>/<file>.
func (r FileRef) CachePath(root string) string {
	return filepath.Join(root, r.Owner, r.Dataset, "versions", strconv.Itoa(r.Version), r.FileName)
}

// DownloadURL returns <base>/datasets/download/<owner>/<dataset>/<file>?datasetVersionNumber=<version>.
func (r FileRef) DownloadURL(baseURL string) (string, error) {
	u, err := url.JoinPath(baseURL, "datasets", "download", r.Owner, r.Dataset, r.FileName)
	if err != nil {
		return "", err
	}
	return u + "?" + url.Values{"datasetVersionNumber": {strconv.Itoa(r.Version)}}.Encode(), nil
}

// VersionDetails describes one published dataset version.
type VersionDetails struct {
	VersionNumber   int     `json:"versionNumber"`
	HasVersionNotes bool    `json:"hasVersionNotes"`
	VersionNotes    *string `json:"versionNotes,omitempty"`
}

// Notes returns the version notes or an empty string.
func (v VersionDetails) Notes() string {
	if v.VersionNotes == nil {
		return ""
	}
	return *v.VersionNotes
}

// Details is the subset of the dataset record dscache uses.
type Details struct {
	Ref                     string           `json:"ref"`
	OwnerRef                string           `json:"ownerRef"`
	Title                   string           `json:"title,omitempty"`
	CurrentVersionNumber    int              `json:"currentVersionNumber"`
	HasCurrentVersionNumber bool             `json:"hasCurrentVersionNumber"`
	TotalBytes              int64            `json:"totalBytes,omitempty"`
	Versions                []VersionDetails `json:"versions,omitempty"`
}

func (d Details) String() string {
	return fmt.Sprintf("Details(ownerRef=%s, currentVersionNumber=%d, ref=%s)", d.OwnerRef, d.CurrentVersionNumber, d.Ref)
}
