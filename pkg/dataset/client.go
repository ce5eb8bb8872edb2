package dataset

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/glorpus-work/dscache/pkg/auth"
	"github.com/glorpus-work/dscache/pkg/errors"
	dshttp "github.com/glorpus-work/dscache/pkg/http"
)

// Client calls the dataset metadata endpoints.
type Client struct {
	baseURL string
	doer    dshttp.Doer
	authn   auth.Authenticator
}

// NewClient creates a metadata client rooted at baseURL (e.g. https://www.kaggle.com/api/v1).
func NewClient(baseURL string, doer dshttp.Doer, authn auth.Authenticator) *Client {
	return &Client{baseURL: baseURL, doer: doer, authn: authn}
}

// ListByOwner returns the datasets published by owner.
func (c *Client) ListByOwner(ctx context.Context, owner string) ([]Details, error) {
	u, err := url.JoinPath(c.baseURL, "datasets", "list")
	if err != nil {
		return nil, errors.Wrap(err, "failed to build list URL")
	}
	u += "?" + url.Values{"user": {owner}}.Encode()

	var out []Details
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, errors.Wrapf(err, "failed to list datasets of %s", owner)
	}
	return out, nil
}

// View returns the details of owner/slug including its version history.
func (c *Client) View(ctx context.Context, owner, slug string) (*Details, error) {
	u, err := url.JoinPath(c.baseURL, "datasets", "view", owner, slug)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build view URL")
	}

	var out Details
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, errors.Wrapf(err, "failed to view dataset %s/%s", owner, slug)
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, u string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	if err := auth.ApplyTo(req, c.authn); err != nil {
		return err
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if err := dshttp.CheckResponse(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}
