package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/model"
	errx "github.com/JIoffe/LearnAI-Bootcamp/internal/core/error"
	logx "github.com/JIoffe/LearnAI-Bootcamp/pkg/logger"
)

// IndexClient queries the managed document index holding the curated picture
// catalog. The service speaks plain JSON over REST; an api-key header
// authenticates every call.
type IndexClient struct {
	endpoint   string
	index      string
	apiKey     string
	apiVersion string
	httpClient *http.Client
}

func NewIndexClient(cfg model.SearchIndexConfig) *IndexClient {
	return &IndexClient{
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		index:      cfg.Index,
		apiKey:     cfg.APIKey,
		apiVersion: cfg.APIVersion,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
	}
}

type indexSearchRequest struct {
	Search string `json:"search"`
}

// indexDocument is the service-defined record schema; the field mapping to
// SearchHit is stable and must not depend on result content.
type indexDocument struct {
	Title     string `json:"title"`
	ImageURL  string `json:"imageUrl"`
	SourceURL string `json:"sourceUrl"`
}

type indexSearchResponse struct {
	Value []indexDocument `json:"value"`
}

// Query runs a keyword search and maps each record to a SearchHit, keeping
// the index's relevance ordering. An empty result set is a valid answer.
func (c *IndexClient) Query(ctx context.Context, text string) ([]model.SearchHit, error) {
	body, err := json.Marshal(indexSearchRequest{Search: text})
	if err != nil {
		return nil, fmt.Errorf("encode index query: %w", err)
	}

	url := fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s", c.endpoint, c.index, c.apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build index request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errx.WrapSearch(fmt.Errorf("index request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		logx.Warn().
			Str("component", "search_index").
			Int("status", resp.StatusCode).
			Str("body", string(snippet)).
			Msg("index query rejected")
		return nil, errx.WrapSearch(fmt.Errorf("index query: status %d", resp.StatusCode))
	}

	var decoded indexSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errx.WrapSearch(fmt.Errorf("decode index response: %w", err))
	}

	hits := make([]model.SearchHit, 0, len(decoded.Value))
	for _, doc := range decoded.Value {
		hits = append(hits, model.SearchHit{
			Title:     doc.Title,
			ImageURL:  doc.ImageURL,
			SourceURL: doc.SourceURL,
		})
	}
	return hits, nil
}
