//go:generate mockgen -destination=mocks/cache.go . Manager
package cache

// Manager defines the read-only inspection operations on the datasets cache.
type Manager interface {
	GetInfo() (*Info, error)
	GetDirectory() string
}

// Info represents cache information.
type Info struct {
	Directory  string
	TotalSize  int64
	TotalFiles int
	Datasets   []DatasetInfo
}

// DatasetInfo summarizes the cached files of one dataset.
type DatasetInfo struct {
	Handle   string
	Size     int64
	Files    int
	Versions []int
}
