package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/model"
)

// MemoryStateRepository is the in-process store used for development and
// tests. Snapshots are kept as JSON so load/save semantics match the Redis
// repository exactly, including copy isolation.
type MemoryStateRepository struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{items: make(map[string][]byte)}
}

func (r *MemoryStateRepository) Load(_ context.Context, conversationID string) (*model.Snapshot, error) {
	r.mu.RLock()
	raw, ok := r.items[conversationID]
	r.mu.RUnlock()

	if !ok {
		return model.NewSnapshot(), nil
	}

	var snap model.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return model.NewSnapshot(), nil
	}
	return &snap, nil
}

func (r *MemoryStateRepository) Save(_ context.Context, conversationID string, snap *model.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	r.mu.Lock()
	r.items[conversationID] = b
	r.mu.Unlock()
	return nil
}

func (r *MemoryStateRepository) Clear(_ context.Context, conversationID string) error {
	r.mu.Lock()
	delete(r.items, conversationID)
	r.mu.Unlock()
	return nil
}

var _ model.StateRepository = (*MemoryStateRepository)(nil)
