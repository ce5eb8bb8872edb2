package analysis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const videosCSV = `video_id,trending_date,title,category_id,views,likes,dislikes,comment_count,description
a1,17.14.11,"Music ""video""",10,1000,80,10,2,"multi
line"
a2,17.14.11,Another song,10,500,40,5,1,plain
b1,17.14.11,Funny cat,23,200,30,0,2,cat
c1,17.14.11,Unknown,99,100,1,0,0,x
z0,17.14.11,No views,23,0,10,0,0,x
`

const categoriesJSON = `{
  "kind": "youtube#videoCategoryListResponse",
  "items": [
    {"id": "10", "snippet": {"title": "Music"}},
    {"id": "23", "snippet": {"title": "Comedy"}}
  ]
}`

func TestVideo_Engagement(t *testing.T) {
	v := Video{Views: 1000, Likes: 80, Dislikes: 10, CommentCount: 2}
	assert.Equal(t, int64(100), v.Engagement())

	perView, ok := v.EngagementPerView()
	require.True(t, ok)
	assert.InDelta(t, 0.1, perView, 1e-9)

	_, ok = Video{Likes: 1}.EngagementPerView()
	assert.False(t, ok)
}

func TestLoadVideos(t *testing.T) {
	videos, err := LoadVideos(strings.NewReader(videosCSV))
	require.NoError(t, err)
	require.Len(t, videos, 5)
	assert.Equal(t, Video{VideoID: "a1", CategoryID: 10, Views: 1000, Likes: 80, Dislikes: 10, CommentCount: 2}, videos[0])
}

func TestLoadVideos_BadNumber(t *testing.T) {
	_, err := LoadVideos(strings.NewReader("video_id,category_id,views\nx,ten,1\n"))
	assert.Error(t, err)
}

func TestLoadCategories(t *testing.T) {
	cats, err := LoadCategories(strings.NewReader(categoriesJSON))
	require.NoError(t, err)
	assert.Equal(t, Categories{10: "Music", 23: "Comedy"}, cats)
	assert.Equal(t, "Music", cats.Name(10))
	assert.Equal(t, "99", cats.Name(99))

	_, err = LoadCategories(strings.NewReader(`{"items":[{"id":"abc"}]}`))
	assert.Error(t, err)
}

func TestEngagementByCategory(t *testing.T) {
	videos, err := LoadVideos(strings.NewReader(videosCSV))
	require.NoError(t, err)
	cats, err := LoadCategories(strings.NewReader(categoriesJSON))
	require.NoError(t, err)

	got := EngagementByCategory(videos, cats)
	require.Len(t, got, 3)

	// Comedy: (30+0+10)/200 = 0.2, the zero-view row is skipped.
	assert.Equal(t, "Comedy", got[0].Category)
	assert.Equal(t, 1, got[0].Videos)
	assert.InDelta(t, 0.2, got[0].Mean, 1e-9)

	// Music: mean of 100/1000 and 50/500.
	assert.Equal(t, "Music", got[1].Category)
	assert.Equal(t, 2, got[1].Videos)
	assert.InDelta(t, 0.1, got[1].Mean, 1e-9)

	// Unmapped id falls back to its string form.
	assert.Equal(t, "99", got[2].Category)
	assert.InDelta(t, 0.01, got[2].Mean, 1e-9)
}

func TestAnalyzeFiles(t *testing.T) {
	dir := t.TempDir()
	videosPath := filepath.Join(dir, "GBvideos.csv")
	categoriesPath := filepath.Join(dir, "GB_category_id.json")
	require.NoError(t, os.WriteFile(videosPath, []byte(videosCSV), 0o644))
	require.NoError(t, os.WriteFile(categoriesPath, []byte(categoriesJSON), 0o644))

	got, err := AnalyzeFiles(videosPath, categoriesPath)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = AnalyzeFiles(filepath.Join(dir, "missing.csv"), categoriesPath)
	assert.Error(t, err)

	emptyPath := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(emptyPath, []byte("video_id,category_id,views\nx,1,0\n"), 0o644))
	_, err = AnalyzeFiles(emptyPath, categoriesPath)
	assert.ErrorIs(t, err, ErrNoVideos)
}
