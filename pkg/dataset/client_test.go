package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glorpus-work/dscache/pkg/auth"
	"github.com/glorpus-work/dscache/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewClient(server.URL+"/api/v1", server.Client(), &auth.BasicAuth{Username: "alice", Password: "s3cret"})
}

func TestClient_ListByOwner(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/datasets/list", r.URL.Path)
		assert.Equal(t, "datasnaek", r.URL.Query().Get("user"))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "alice", user)
		assert.Equal(t, "s3cret", pass)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"ref": "datasnaek/youtube-new", "ownerRef": "datasnaek", "currentVersionNumber": 115, "hasCurrentVersionNumber": true},
			{"ref": "datasnaek/chess", "ownerRef": "datasnaek", "currentVersionNumber": 1, "hasCurrentVersionNumber": true}
		]`))
	})

	list, err := client.ListByOwner(context.Background(), "datasnaek")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "datasnaek/youtube-new", list[0].Ref)
	assert.Equal(t, 115, list[0].CurrentVersionNumber)
	assert.True(t, list[0].HasCurrentVersionNumber)
}

func TestClient_View(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/datasets/view/datasnaek/youtube-new", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"ref": "datasnaek/youtube-new",
			"ownerRef": "datasnaek",
			"title": "Trending YouTube Video Statistics",
			"currentVersionNumber": 116,
			"hasCurrentVersionNumber": true,
			"versions": [
				{"versionNumber": 116, "hasVersionNotes": true, "versionNotes": "new week"},
				{"versionNumber": 115, "hasVersionNotes": false}
			]
		}`))
	})

	details, err := client.View(context.Background(), "datasnaek", "youtube-new")
	require.NoError(t, err)
	assert.Equal(t, "Trending YouTube Video Statistics", details.Title)
	require.Len(t, details.Versions, 2)
	assert.Equal(t, "new week", details.Versions[0].Notes())
	assert.Nil(t, details.Versions[1].VersionNotes)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: errors.ErrRemote},
		{name: "not found", status: http.StatusNotFound, wantErr: errors.ErrRemote},
		{name: "bad json", status: http.StatusOK, body: "{not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.View(context.Background(), "o", "d")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				var remoteErr *errors.RemoteError
				require.ErrorAs(t, err, &remoteErr)
				assert.Equal(t, tt.status, remoteErr.StatusCode)
			} else {
				assert.Contains(t, err.Error(), "failed to decode response")
			}
		})
	}
}

func TestClient_EmptyUsername(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("request must not be sent")
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), &auth.BasicAuth{})
	_, err := client.ListByOwner(context.Background(), "o")
	assert.ErrorIs(t, err, auth.ErrEmptyUsername)
}
