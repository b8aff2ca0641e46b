// Package bot implements the dialog engine: an explicit waterfall state
// machine that resumes per-conversation dialogs across turns. Dialogs are
// named ordered step lists; a serializable frame stack records which step
// runs next, so no closures survive between turns.
package bot

import (
	"context"
	"fmt"

	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/model"
	logx "github.com/JIoffe/LearnAI-Bootcamp/pkg/logger"
	"github.com/rs/zerolog"
)

// IntentResolver is the intent recognition facade consumed by the engine.
type IntentResolver interface {
	Resolve(ctx context.Context, text string, pre *model.IntentResult) (*model.IntentResult, error)
}

// PictureSearcher is the search orchestrator collaborator.
type PictureSearcher interface {
	SearchPrimary(ctx context.Context, query string) ([]model.SearchHit, error)
	SearchFallback(ctx context.Context, query string) ([]model.SearchHit, error)
}

// Step executes one waterfall step. sc.Input carries the answer to the
// prompt this step suspended for on a previous turn, or a child dialog's
// result; it is empty otherwise.
type Step func(ctx context.Context, tc *TurnContext, sc *StepContext) (StepResult, error)

type stepAction int

const (
	actionNext stepAction = iota
	actionSuspend
	actionBegin
	actionEnd
)

// StepResult is the tagged outcome of one step.
type StepResult struct {
	action stepAction
	prompt string
	child  string
	result string
}

// Next continues to the following step within the same turn.
func Next() StepResult {
	return StepResult{action: actionNext}
}

// SuspendForInput sends prompt and pauses the dialog. The next inbound
// message resumes at the following step with that message as its input.
func SuspendForInput(prompt string) StepResult {
	return StepResult{action: actionSuspend, prompt: prompt}
}

// BeginChild pushes the named dialog; it runs to completion before the
// current dialog's next step executes.
func BeginChild(name string) StepResult {
	return StepResult{action: actionBegin, child: name}
}

// End pops the current dialog, returning control to the parent's next step.
func End() StepResult {
	return StepResult{action: actionEnd}
}

// EndWith ends the dialog and hands result to the parent's next step.
func EndWith(result string) StepResult {
	return StepResult{action: actionEnd, result: result}
}

// StepContext carries the per-step input.
type StepContext struct {
	Input string
}

// TurnContext is the per-turn view the steps operate on: the inbound
// message, the optional pre-classified intent, mutable conversation state
// and the outgoing reply accumulator.
type TurnContext struct {
	ConversationID string
	Message        string
	Intent         *model.IntentResult
	State          *model.ConversationState

	snap    *model.Snapshot
	replies []model.Reply
}

// Send queues an outgoing reply.
func (tc *TurnContext) Send(reply model.Reply) {
	tc.replies = append(tc.replies, reply)
}

// SendText queues a plain text reply.
func (tc *TurnContext) SendText(format string, args ...any) {
	tc.Send(model.TextReply(format, args...))
}

// Replies returns everything queued so far, in send order.
func (tc *TurnContext) Replies() []model.Reply {
	return tc.replies
}

// Dialog names registered with the engine.
const (
	dialogRoot   = "root"
	dialogSearch = "search"
)

// Engine drives the waterfall dialogs. One Engine serves all conversations;
// all mutable state lives in the per-conversation snapshot, so turns for
// distinct conversations may run concurrently.
type Engine struct {
	cfg     model.EngineConfig
	store   model.StateRepository
	intents IntentResolver
	search  PictureSearcher
	dialogs map[string][]Step
	log     zerolog.Logger
}

func NewEngine(cfg model.EngineConfig, store model.StateRepository, intents IntentResolver, search PictureSearcher) *Engine {
	e := &Engine{
		cfg:     cfg,
		store:   store,
		intents: intents,
		search:  search,
		log:     logx.With("engine"),
	}
	e.dialogs = map[string][]Step{
		dialogRoot:   {e.stepGreetOnce, e.stepRoute},
		dialogSearch: {e.stepEnsureSearching, e.stepExecuteSearch, e.stepFallbackSearch},
	}
	return e
}

// HandleTurn processes one inbound message for a conversation: it resumes
// the active dialog with the message as input, or begins the root dialog
// when nothing is active and no reply was produced. The snapshot is saved
// as the final action of every completed turn; a failing turn produces a
// generic apology and persists nothing past the last checkpoint.
func (e *Engine) HandleTurn(ctx context.Context, conversationID, message string, pre *model.IntentResult) (replies []model.Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().
				Str("conversationID", conversationID).
				Interface("panic", r).
				Msg("turn processing panicked")
			replies = []model.Reply{model.TextReply(replySomethingWrong)}
			err = nil
		}
	}()

	snap, err := e.store.Load(ctx, conversationID)
	if err != nil {
		e.log.Error().Err(err).Str("conversationID", conversationID).Msg("failed to load conversation state")
		return []model.Reply{model.TextReply(replySomethingWrong)}, nil
	}

	tc := &TurnContext{
		ConversationID: conversationID,
		Message:        message,
		Intent:         pre,
		State:          &snap.Conversation,
		snap:           snap,
	}

	if snap.Dialog.Active() {
		if err := e.run(ctx, tc, message); err != nil {
			e.log.Error().Err(err).Str("conversationID", conversationID).Msg("dialog step failed")
			return []model.Reply{model.TextReply(replySomethingWrong)}, nil
		}
	}

	// Fallback entry point: nothing replied and nothing active means the
	// root dialog owns this message.
	if len(tc.replies) == 0 && !snap.Dialog.Active() {
		snap.Dialog.Push(dialogRoot)
		if err := e.run(ctx, tc, message); err != nil {
			e.log.Error().Err(err).Str("conversationID", conversationID).Msg("dialog step failed")
			return []model.Reply{model.TextReply(replySomethingWrong)}, nil
		}
	}

	if err := e.store.Save(ctx, conversationID, snap); err != nil {
		// The user already got their replies; losing one save costs at most
		// a repeated greeting on the next turn.
		e.log.Error().Err(err).Str("conversationID", conversationID).Msg("failed to save conversation state")
	}

	return tc.replies, nil
}

// run executes steps until the stack empties or a step suspends. The
// inbound input is consumed by exactly one step.
func (e *Engine) run(ctx context.Context, tc *TurnContext, input string) error {
	dlg := &tc.snap.Dialog

	for dlg.Active() {
		frame := dlg.Top()
		steps, ok := e.dialogs[frame.Dialog]
		if !ok {
			// A stale frame from an older deployment; drop it.
			e.log.Warn().Str("dialog", frame.Dialog).Msg("dropping frame for unknown dialog")
			dlg.Pop()
			continue
		}
		if frame.Step >= len(steps) {
			dlg.Pop()
			input = ""
			continue
		}

		result, err := steps[frame.Step](ctx, tc, &StepContext{Input: input})
		if err != nil {
			return fmt.Errorf("dialog %s step %d: %w", frame.Dialog, frame.Step, err)
		}
		input = ""

		switch result.action {
		case actionNext:
			frame.Step++
		case actionSuspend:
			tc.SendText("%s", result.prompt)
			frame.Step++
			return nil
		case actionBegin:
			frame.Step++
			dlg.Push(result.child)
		case actionEnd:
			dlg.Pop()
			input = result.result
		}
	}
	return nil
}

// checkpoint persists the snapshot mid-turn so a retried turn observes the
// same state. Failures are soft; the end-of-turn save will try again.
func (e *Engine) checkpoint(ctx context.Context, tc *TurnContext) {
	if err := e.store.Save(ctx, tc.ConversationID, tc.snap); err != nil {
		e.log.Warn().Err(err).Str("conversationID", tc.ConversationID).Msg("mid-turn checkpoint failed")
	}
}

// accepted applies the confidence policy: probabilistic intents must score
// strictly above the threshold; exactly at the threshold is rejected.
func (e *Engine) accepted(intent *model.IntentResult) bool {
	return intent != nil && intent.Confidence > e.cfg.IntentThreshold
}
