package download

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/glorpus-work/dscache/pkg/errors"
)

// LastModifiedLayout is the RFC 1123 layout accepted for Last-Modified.
const LastModifiedLayout = "Mon, 02 Jan 2006 15:04:05 MST"

// RemoteFile is what the response headers say about the remote file.
type RemoteFile struct {
	LastModified time.Time
	Size         int64
}

// ParseRemoteFile extracts the modification time and size of the remote file from resp.
// The size is resp.ContentLength, or the Content-Length header when a Doer leaves the
// field unset.
func ParseRemoteFile(resp *http.Response) (RemoteFile, error) {
	lastModified, err := ParseLastModified(resp.Header.Get("Last-Modified"))
	if err != nil {
		return RemoteFile{}, err
	}

	size, err := contentLength(resp)
	if err != nil {
		return RemoteFile{}, err
	}

	switch {
	case size < 0:
		return RemoteFile{}, &errors.MalformedResponseError{Header: "Content-Length", Reason: "is missing"}
	case size == 0:
		// Empty remote files are rejected.
		return RemoteFile{}, &errors.MalformedResponseError{
			Header: "Content-Length",
			Value:  strconv.FormatInt(size, 10),
			Reason: "is zero",
		}
	}

	return RemoteFile{LastModified: lastModified, Size: size}, nil
}

func contentLength(resp *http.Response) (int64, error) {
	if resp.ContentLength > 0 {
		return resp.ContentLength, nil
	}
	raw := strings.TrimSpace(resp.Header.Get("Content-Length"))
	if raw == "" {
		return resp.ContentLength, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, &errors.MalformedResponseError{Header: "Content-Length", Value: raw, Reason: "is not a number"}
	}
	return n, nil
}

// ParseLastModified parses value with LastModifiedLayout. The wall-clock fields are
// taken as UTC whatever zone abbreviation the header carries.
func ParseLastModified(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, &errors.MalformedResponseError{Header: "Last-Modified", Reason: "is missing"}
	}

	t, err := time.Parse(LastModifiedLayout, value)
	if err != nil {
		return time.Time{}, &errors.MalformedResponseError{
			Header: "Last-Modified",
			Value:  value,
			Reason: "is not an RFC 1123 date",
		}
	}

	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
}
