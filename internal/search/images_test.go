package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/model"
)

func newImageTestClient(srv *httptest.Server) *ImageClient {
	return NewImageClient(model.ImageSearchConfig{
		Endpoint:   srv.URL,
		APIKey:     "sub-key",
		TimeoutSec: 5,
	})
}

func TestImageQuery_SendsQueryAndCount(t *testing.T) {
	var gotQ, gotCount, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		gotCount = r.URL.Query().Get("count")
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]string{
				{"name": "Sunset", "contentUrl": "https://img.example.com/s.jpg", "hostPageUrl": "https://example.com/s"},
			},
		})
	}))
	defer srv.Close()

	hits, err := newImageTestClient(srv).Query(context.Background(), "sunset", 5)
	require.NoError(t, err)
	require.Equal(t, "sunset", gotQ)
	require.Equal(t, "5", gotCount)
	require.Equal(t, "sub-key", gotKey)

	require.Equal(t, []model.SearchHit{
		{Title: "Sunset", ImageURL: "https://img.example.com/s.jpg", SourceURL: "https://example.com/s"},
	}, hits)
}

func TestImageQuery_EmptyResultIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"value":[]}`))
	}))
	defer srv.Close()

	hits, err := newImageTestClient(srv).Query(context.Background(), "nothing", 5)
	require.NoError(t, err)
	require.Empty(t, hits)
}

func TestImageQuery_NonSuccessStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newImageTestClient(srv).Query(context.Background(), "sunset", 5)
	require.Error(t, err)
}
