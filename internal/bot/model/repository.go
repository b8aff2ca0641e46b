package model

import "context"

// StateRepository persists conversation snapshots keyed by conversation id.
type StateRepository interface {
	// Load retrieves the snapshot for a conversation. A conversation that was
	// never seen (or whose state expired) yields a fresh default snapshot,
	// not an error.
	Load(ctx context.Context, conversationID string) (*Snapshot, error)

	// Save stores the snapshot, replacing any previous one.
	Save(ctx context.Context, conversationID string, snap *Snapshot) error

	// Clear removes all state for a conversation.
	Clear(ctx context.Context, conversationID string) error
}
