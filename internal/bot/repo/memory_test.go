package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/model"
)

func TestMemoryLoad_UnknownConversationIsFresh(t *testing.T) {
	r := NewMemoryStateRepository()

	snap, err := r.Load(context.Background(), "never-seen")
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.False(t, snap.Conversation.HasGreeted)
	require.False(t, snap.Dialog.Active())
}

func TestMemorySaveLoad_RoundTrip(t *testing.T) {
	r := NewMemoryStateRepository()

	saved := &model.Snapshot{
		Conversation: model.ConversationState{
			HasGreeted:   true,
			IsSearching:  true,
			PendingQuery: "mountains",
		},
		Dialog: model.DialogState{Frames: []model.DialogFrame{
			{Dialog: "root", Step: 2},
			{Dialog: "search", Step: 1},
		}},
	}
	require.NoError(t, r.Save(context.Background(), "conv-1", saved))

	loaded, err := r.Load(context.Background(), "conv-1")
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestMemoryLoad_ReturnsIsolatedCopies(t *testing.T) {
	r := NewMemoryStateRepository()
	require.NoError(t, r.Save(context.Background(), "conv-1", &model.Snapshot{
		Conversation: model.ConversationState{PendingQuery: "mountains"},
	}))

	first, err := r.Load(context.Background(), "conv-1")
	require.NoError(t, err)
	first.Conversation.PendingQuery = "mutated"

	second, err := r.Load(context.Background(), "conv-1")
	require.NoError(t, err)
	require.Equal(t, "mountains", second.Conversation.PendingQuery)
}

func TestMemoryClear_MakesConversationFresh(t *testing.T) {
	r := NewMemoryStateRepository()
	require.NoError(t, r.Save(context.Background(), "conv-1", &model.Snapshot{
		Conversation: model.ConversationState{HasGreeted: true},
	}))

	require.NoError(t, r.Clear(context.Background(), "conv-1"))

	snap, err := r.Load(context.Background(), "conv-1")
	require.NoError(t, err)
	require.False(t, snap.Conversation.HasGreeted)
}

func TestRedisStateKey(t *testing.T) {
	r := NewRedisStateRepository(nil, 0)
	require.Equal(t, "conversation:abc:state", r.stateKey("abc"))
}
