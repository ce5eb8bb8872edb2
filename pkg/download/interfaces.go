//go:generate mockgen -destination=mocks/manager.go . Manager
package download

import (
	"context"

	"github.com/glorpus-work/dscache/pkg/auth"
	"github.com/glorpus-work/dscache/pkg/dataset"
	dshttp "github.com/glorpus-work/dscache/pkg/http"
)

// DefaultChunkSize is the number of bytes read from the response body per progress observation.
const DefaultChunkSize = 8192

// Manager fetches dataset files into the local cache.
type Manager interface {
	// Fetch makes sure ref is present and fresh below the datasets directory and
	// returns its local path. A fresh local copy is returned without reading the body.
	Fetch(ctx context.Context, ref dataset.FileRef, authn auth.Authenticator) (string, error)
}

// Options control the behavior of the download manager.
type Options struct {
	BaseURL   string      // API root, e.g. https://www.kaggle.com/api/v1
	Dir       string      // datasets directory (cache root)
	Client    dshttp.Doer // defaults to http.DefaultClient
	ChunkSize int         // defaults to DefaultChunkSize
	Progress  ProgressFunc
}
