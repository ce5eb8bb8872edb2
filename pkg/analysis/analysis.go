// Package analysis computes engagement statistics over a trending-videos dataset.
package analysis

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/glorpus-work/dscache/pkg/errors"
	"github.com/jszwec/csvutil"
)

// CommentWeight is how many likes or dislikes one comment is worth.
const CommentWeight = 5

// ErrNoVideos is returned when no row with views is available.
var ErrNoVideos = fmt.Errorf("no videos with views")

// Video is one row of the trending-videos CSV. Other columns are ignored.
type Video struct {
	VideoID      string `csv:"video_id"`
	CategoryID   int    `csv:"category_id"`
	Views        int64  `csv:"views"`
	Likes        int64  `csv:"likes"`
	Dislikes     int64  `csv:"dislikes"`
	CommentCount int64  `csv:"comment_count"`
}

// Engagement is likes + dislikes + CommentWeight × comments.
func (v Video) Engagement() int64 {
	return v.Likes + v.Dislikes + CommentWeight*v.CommentCount
}

// EngagementPerView returns Engagement / Views, or false when the video has no views.
func (v Video) EngagementPerView() (float64, bool) {
	if v.Views <= 0 {
		return 0, false
	}
	return float64(v.Engagement()) / float64(v.Views), true
}

// Categories maps a category id to its display name.
type Categories map[int]string

// Name returns the category name, or the id itself when unmapped.
func (c Categories) Name(id int) string {
	if name, ok := c[id]; ok {
		return name
	}
	return strconv.Itoa(id)
}

// CategoryEngagement is the mean engagement per view of one category.
type CategoryEngagement struct {
	Category string
	Videos   int
	Mean     float64
}

// LoadVideos decodes the trending-videos CSV.
func LoadVideos(r io.Reader) ([]Video, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true

	dec, err := csvutil.NewDecoder(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read videos header")
	}

	var videos []Video
	for {
		var v Video
		if err := dec.Decode(&v); err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrap(err, "failed to decode video row")
		}
		videos = append(videos, v)
	}
	return videos, nil
}

type categoryFile struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

// LoadCategories decodes the category JSON ({"items": [{"id": "1", "snippet": {"title": ...}}]}).
func LoadCategories(r io.Reader) (Categories, error) {
	var file categoryFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Wrap(err, "failed to decode categories")
	}

	cats := make(Categories, len(file.Items))
	for _, item := range file.Items {
		id, err := strconv.Atoi(item.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid category id %q", item.ID)
		}
		cats[id] = item.Snippet.Title
	}
	return cats, nil
}

// EngagementByCategory averages engagement per view per category name, highest first.
// Videos without views are skipped.
func EngagementByCategory(videos []Video, cats Categories) []CategoryEngagement {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, v := range videos {
		perView, ok := v.EngagementPerView()
		if !ok {
			continue
		}
		name := cats.Name(v.CategoryID)
		sums[name] += perView
		counts[name]++
	}

	out := make([]CategoryEngagement, 0, len(sums))
	for name, sum := range sums {
		out = append(out, CategoryEngagement{Category: name, Videos: counts[name], Mean: sum / float64(counts[name])})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// AnalyzeFiles loads both files and returns EngagementByCategory.
func AnalyzeFiles(videosPath, categoriesPath string) ([]CategoryEngagement, error) {
	vf, err := os.Open(videosPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", videosPath)
	}
	defer func() { _ = vf.Close() }()

	videos, err := LoadVideos(vf)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", videosPath)
	}

	cf, err := os.Open(categoriesPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", categoriesPath)
	}
	defer func() { _ = cf.Close() }()

	cats, err := LoadCategories(cf)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", categoriesPath)
	}

	result := EngagementByCategory(videos, cats)
	if len(result) == 0 {
		return nil, ErrNoVideos
	}
	return result, nil
}
