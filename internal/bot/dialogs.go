package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/model"
)

// ================ Root dialog ================

// stepGreetOnce sends the greeting and help text on the very first turn of
// a conversation, whatever the message was. It always continues to routing.
func (e *Engine) stepGreetOnce(_ context.Context, tc *TurnContext, _ *StepContext) (StepResult, error) {
	if !tc.State.HasGreeted {
		tc.SendText(replyGreeting)
		tc.SendText(replyHelp)
		tc.State.HasGreeted = true
	}
	return Next(), nil
}

// stepRoute resolves the turn's intent and dispatches on it.
func (e *Engine) stepRoute(ctx context.Context, tc *TurnContext, _ *StepContext) (StepResult, error) {
	intent, err := e.intents.Resolve(ctx, tc.Message, tc.Intent)
	if err != nil {
		// Recognition failures never kill a turn.
		e.log.Warn().Err(err).Str("conversationID", tc.ConversationID).Msg("intent resolution failed")
		tc.SendText(replyRecognizerTrouble)
		return End(), nil
	}

	if !e.accepted(intent) {
		tc.SendText(replyDidNotUnderstand)
		return End(), nil
	}

	e.log.Debug().
		Str("conversationID", tc.ConversationID).
		Str("intent", intent.Name).
		Float64("confidence", intent.Confidence).
		Msg("routing intent")

	if intent.IsSearch() {
		// A facet lets the search dialog skip its prompt.
		if facet := intent.Facet(); facet != "" {
			tc.State.PendingQuery = facet
			tc.State.IsSearching = true
		}
		return BeginChild(dialogSearch), nil
	}

	switch intent.Name {
	case model.IntentGreeting:
		tc.SendText(replyGreetAgain)
	case model.IntentShare:
		tc.SendText(replyShare)
	case model.IntentOrder:
		tc.SendText(replyOrder)
	case model.IntentHelp:
		tc.SendText(replyHelp)
	default:
		tc.SendText(replyDidNotUnderstand)
	}
	return End(), nil
}

// ================ Search dialog ================

// stepEnsureSearching marks the conversation as searching, prompting for a
// query unless one is already pending.
func (e *Engine) stepEnsureSearching(_ context.Context, tc *TurnContext, _ *StepContext) (StepResult, error) {
	if tc.State.IsSearching {
		return Next(), nil
	}
	tc.State.IsSearching = true
	return SuspendForInput(promptWhatToSearch), nil
}

// stepExecuteSearch resolves the query, persists it, and runs the primary
// index search. Zero hits offers the fallback; anything found is rendered
// and the dialog ends.
func (e *Engine) stepExecuteSearch(ctx context.Context, tc *TurnContext, sc *StepContext) (StepResult, error) {
	query := strings.TrimSpace(tc.State.PendingQuery)
	if query == "" {
		query = strings.TrimSpace(sc.Input)
	}
	if query == "" {
		tc.SendText(replyEmptyQuery)
		e.resetSearch(tc.State)
		return End(), nil
	}

	// Persist the resolved query before the search call so a retried turn
	// observes the same query.
	tc.State.PendingQuery = query
	e.checkpoint(ctx, tc)

	hits, err := e.search.SearchPrimary(ctx, query)
	if err != nil {
		tc.SendText(replySearchTrouble)
		e.resetSearch(tc.State)
		return End(), nil
	}

	if len(hits) == 0 {
		return SuspendForInput(fmt.Sprintf(promptOfferFallback, query)), nil
	}

	tc.Send(model.PictureReply(fmt.Sprintf(replyFoundPictures, len(hits), query), hits))
	e.resetSearch(tc.State)
	return End(), nil
}

// stepFallbackSearch reads the yes/no answer to the fallback offer. The
// search state is cleared on every path out of this step.
func (e *Engine) stepFallbackSearch(ctx context.Context, tc *TurnContext, sc *StepContext) (StepResult, error) {
	query := tc.State.PendingQuery
	defer e.resetSearch(tc.State)

	if !isAffirmative(sc.Input) {
		tc.SendText(replyFallbackDeclined)
		return End(), nil
	}

	hits, err := e.search.SearchFallback(ctx, query)
	switch {
	case err != nil:
		tc.SendText(replyFallbackTrouble)
	case len(hits) == 0:
		tc.SendText(replyFallbackEmpty, query)
	default:
		tc.Send(model.PictureReply(fmt.Sprintf(replyFallbackFound, query), hits))
	}
	return End(), nil
}

func (e *Engine) resetSearch(state *model.ConversationState) {
	state.IsSearching = false
	state.PendingQuery = ""
}

func isAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(strings.TrimRight(answer, ".!"))) {
	case "yes", "y", "yeah", "yep", "sure", "ok", "okay", "please", "yes please":
		return true
	}
	return false
}
