// Package http builds the outbound HTTP client shared by the dataset API client and
// the download manager.
package http

import (
	"net/http"
	"time"

	"github.com/glorpus-work/dscache/pkg/errors"
)

// DefaultUserAgent is sent when Options.UserAgent is empty.
const DefaultUserAgent = "dscache/1.0"

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configure NewClient.
type Options struct {
	Timeout           time.Duration // whole exchange including the body
	HeaderTimeout     time.Duration // wait for response headers, 0 means no limit
	UserAgent         string
	RequestsPerSecond float64 // 0 disables throttling
	Burst             int
	Transport         http.RoundTripper // defaults to http.DefaultTransport
}

// NewClient returns an *http.Client whose transport sets the User-Agent and
// throttles outbound requests.
func NewClient(opts Options) (*http.Client, error) {
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if t, ok := base.(*http.Transport); ok && opts.HeaderTimeout > 0 {
		t = t.Clone()
		t.ResponseHeaderTimeout = opts.HeaderTimeout
		base = t
	}

	rt, err := newThrottle(opts.RequestsPerSecond, opts.Burst, base)
	if err != nil {
		return nil, err
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: userAgent{value: ua, base: rt},
	}, nil
}

// Streaming returns a copy of c without the total timeout, for responses whose body
// may take longer to read than Timeout allows. The transport, and with it the header
// timeout and the request throttle, is shared with c.
func Streaming(c *http.Client) *http.Client {
	cp := *c
	cp.Timeout = 0
	return &cp
}

// CheckResponse returns a *errors.RemoteError for any non-2xx response.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}
	url := ""
	if resp.Request != nil && resp.Request.URL != nil {
		url = resp.Request.URL.Redacted()
	}
	return &errors.RemoteError{StatusCode: resp.StatusCode, URL: url}
}

// userAgent is an http.RoundTripper setting a persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
