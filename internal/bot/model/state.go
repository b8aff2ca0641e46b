package model

// ConversationState holds the per-conversation flags the dialogs read and
// write. A zero value is a valid fresh conversation.
type ConversationState struct {
	HasGreeted   bool   `json:"has_greeted"`
	IsSearching  bool   `json:"is_searching"`
	PendingQuery string `json:"pending_query,omitempty"`
}

// DialogFrame is one entry of the dialog stack: which dialog is active, the
// index of the step that runs on the next turn, and the result handed to it
// (a prompt answer or a child dialog result).
type DialogFrame struct {
	Dialog  string `json:"dialog"`
	Step    int    `json:"step"`
	Pending string `json:"pending,omitempty"`
}

// DialogState is the serializable stack of active dialog frames. The top of
// the stack is the dialog that resumes when the next message arrives.
type DialogState struct {
	Frames []DialogFrame `json:"frames,omitempty"`
}

// Active reports whether any dialog is currently in progress.
func (d *DialogState) Active() bool {
	return len(d.Frames) > 0
}

// Push begins a dialog at its first step.
func (d *DialogState) Push(dialog string) {
	d.Frames = append(d.Frames, DialogFrame{Dialog: dialog})
}

// Pop removes the top frame. It is a no-op on an empty stack.
func (d *DialogState) Pop() {
	if len(d.Frames) == 0 {
		return
	}
	d.Frames = d.Frames[:len(d.Frames)-1]
}

// Top returns the currently active frame, or nil when no dialog is active.
func (d *DialogState) Top() *DialogFrame {
	if len(d.Frames) == 0 {
		return nil
	}
	return &d.Frames[len(d.Frames)-1]
}

// Snapshot is everything persisted for one conversation. Conversation and
// dialog state are always stored together so a turn observes a consistent
// view of both.
type Snapshot struct {
	Conversation ConversationState `json:"conversation"`
	Dialog       DialogState       `json:"dialog"`
}

// NewSnapshot returns the default state for a conversation that has never
// been seen before.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}
