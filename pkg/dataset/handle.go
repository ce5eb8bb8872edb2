package dataset

import (
	"strings"

	"github.com/glorpus-work/dscache/pkg/errors"
)

// ParseHandle splits "<owner>/<dataset>" into its parts.
func ParseHandle(handle string) (owner, slug string, err error) {
	owner, slug, ok := strings.Cut(strings.TrimSpace(handle), "/")
	if !ok || owner == "" || slug == "" || strings.Contains(slug, "/") {
		return "", "", errors.Wrapf(errors.ErrInvalidHandle, "%q: expected <owner>/<dataset>", handle)
	}
	return owner, slug, nil
}
