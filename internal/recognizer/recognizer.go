// Package recognizer resolves an inbound message to an intent. It fronts two
// sources: fast pattern rules and a probabilistic NLU service, normalized to
// one IntentResult shape. Confidence thresholding is the caller's concern.
package recognizer

import (
	"context"
	"fmt"

	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/model"
)

// Classifier is the probabilistic intent service collaborator.
type Classifier interface {
	Classify(ctx context.Context, text string) (*model.IntentResult, error)
}

// Recognizer is the intent facade consumed by the dialog engine.
type Recognizer struct {
	rules      []rule
	classifier Classifier
}

// New builds a recognizer with the default pattern rules. The classifier may
// be nil, in which case only pattern matching is available.
func New(classifier Classifier) *Recognizer {
	return &Recognizer{
		rules:      defaultRules,
		classifier: classifier,
	}
}

// Resolve returns the intent for a turn. A pre-classified intent attached by
// upstream middleware wins outright; then the pattern rules; then the
// probabilistic service, whose result is returned as-is.
func (r *Recognizer) Resolve(ctx context.Context, text string, pre *model.IntentResult) (*model.IntentResult, error) {
	if pre != nil {
		return pre, nil
	}

	if m := matchRules(r.rules, text); m != nil {
		return m, nil
	}

	if r.classifier == nil {
		return nil, nil
	}
	result, err := r.classifier.Classify(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}
	return result, nil
}
