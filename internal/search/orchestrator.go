// Package search queries the two picture backends: the curated document
// index first, and a general image-search API as fallback when the index
// has nothing.
package search

import (
	"context"

	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/model"
	logx "github.com/JIoffe/LearnAI-Bootcamp/pkg/logger"
)

const defaultMaxFallbackImages = 5

// DocumentSearcher is the primary structured index collaborator.
type DocumentSearcher interface {
	Query(ctx context.Context, text string) ([]model.SearchHit, error)
}

// ImageSearcher is the secondary general image-search collaborator.
type ImageSearcher interface {
	Query(ctx context.Context, text string, count int) ([]model.SearchHit, error)
}

// Orchestrator fronts both backends for the dialog engine.
type Orchestrator struct {
	index     DocumentSearcher
	images    ImageSearcher
	maxImages int
}

func NewOrchestrator(index DocumentSearcher, images ImageSearcher, maxFallbackImages int) *Orchestrator {
	if maxFallbackImages <= 0 {
		maxFallbackImages = defaultMaxFallbackImages
	}
	return &Orchestrator{
		index:     index,
		images:    images,
		maxImages: maxFallbackImages,
	}
}

// SearchPrimary queries the curated index. Zero hits is a valid result that
// signals the caller to offer the fallback.
func (o *Orchestrator) SearchPrimary(ctx context.Context, query string) ([]model.SearchHit, error) {
	hits, err := o.index.Query(ctx, query)
	if err != nil {
		logx.Error().Err(err).Str("query", query).Msg("primary index search failed")
		return nil, err
	}

	logx.Debug().Str("query", query).Int("hits", len(hits)).Msg("primary index search completed")
	return hits, nil
}

// SearchFallback queries the image-search API, returning at most the
// configured number of hits in the API's order.
func (o *Orchestrator) SearchFallback(ctx context.Context, query string) ([]model.SearchHit, error) {
	hits, err := o.images.Query(ctx, query, o.maxImages)
	if err != nil {
		logx.Error().Err(err).Str("query", query).Msg("fallback image search failed")
		return nil, err
	}

	if len(hits) > o.maxImages {
		hits = hits[:o.maxImages]
	}

	logx.Debug().Str("query", query).Int("hits", len(hits)).Msg("fallback image search completed")
	return hits, nil
}
