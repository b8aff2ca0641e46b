package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/model"
	errx "github.com/JIoffe/LearnAI-Bootcamp/internal/core/error"
)

func newIndexTestClient(srv *httptest.Server) *IndexClient {
	return NewIndexClient(model.SearchIndexConfig{
		Endpoint:   srv.URL,
		Index:      "images",
		APIKey:     "test-key",
		APIVersion: "2020-06-30",
		TimeoutSec: 5,
	})
}

func TestIndexQuery_MapsDocumentsInOrder(t *testing.T) {
	var gotPath, gotKey, gotSearch string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("api-key")

		var body struct {
			Search string `json:"search"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotSearch = body.Search

		_ = json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]string{
				{"title": "First", "imageUrl": "https://cdn.example.com/1.jpg", "sourceUrl": "https://example.com/1"},
				{"title": "Second", "imageUrl": "https://cdn.example.com/2.jpg", "sourceUrl": "https://example.com/2"},
			},
		})
	}))
	defer srv.Close()

	hits, err := newIndexTestClient(srv).Query(context.Background(), "mountains")
	require.NoError(t, err)
	require.Equal(t, "/indexes/images/docs/search", gotPath)
	require.Equal(t, "test-key", gotKey)
	require.Equal(t, "mountains", gotSearch)

	require.Equal(t, []model.SearchHit{
		{Title: "First", ImageURL: "https://cdn.example.com/1.jpg", SourceURL: "https://example.com/1"},
		{Title: "Second", ImageURL: "https://cdn.example.com/2.jpg", SourceURL: "https://example.com/2"},
	}, hits)
}

func TestIndexQuery_EmptyResultIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"value":[]}`))
	}))
	defer srv.Close()

	hits, err := newIndexTestClient(srv).Query(context.Background(), "nothing here")
	require.NoError(t, err)
	require.Empty(t, hits)
}

func TestIndexQuery_NonSuccessStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newIndexTestClient(srv).Query(context.Background(), "mountains")
	require.Error(t, err)

	var appErr *errx.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, errx.SearchErrorMessage, appErr.Message)
}

func TestIndexQuery_MalformedBodyIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"value": not json`))
	}))
	defer srv.Close()

	_, err := newIndexTestClient(srv).Query(context.Background(), "mountains")
	require.Error(t, err)
}
