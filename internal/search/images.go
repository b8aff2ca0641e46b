package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/model"
	errx "github.com/JIoffe/LearnAI-Bootcamp/internal/core/error"
)

// ImageClient talks to the general web image-search API used for fallback
// searches. Credentials and quota are managed by the service side; here a
// subscription key header is all that is needed.
type ImageClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewImageClient(cfg model.ImageSearchConfig) *ImageClient {
	return &ImageClient{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
	}
}

type imageResult struct {
	Name        string `json:"name"`
	ContentURL  string `json:"contentUrl"`
	HostPageURL string `json:"hostPageUrl"`
}

type imageSearchResponse struct {
	Value []imageResult `json:"value"`
}

// Query asks for up to count images matching text, in the API's own order.
func (c *ImageClient) Query(ctx context.Context, text string, count int) ([]model.SearchHit, error) {
	q := url.Values{}
	q.Set("q", text)
	if count > 0 {
		q.Set("count", strconv.Itoa(count))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errx.WrapSearch(fmt.Errorf("image request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errx.WrapSearch(fmt.Errorf("image query: status %d", resp.StatusCode))
	}

	var decoded imageSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errx.WrapSearch(fmt.Errorf("decode image response: %w", err))
	}

	hits := make([]model.SearchHit, 0, len(decoded.Value))
	for _, item := range decoded.Value {
		hits = append(hits, model.SearchHit{
			Title:     item.Name,
			ImageURL:  item.ContentURL,
			SourceURL: item.HostPageURL,
		})
	}
	return hits, nil
}
