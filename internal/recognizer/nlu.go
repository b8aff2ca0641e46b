package recognizer

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/model"
	logx "github.com/JIoffe/LearnAI-Bootcamp/pkg/logger"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

//go:embed template/nlu_prompt.txt
var nluSystemPrompt string

// ClassifierConfig holds what is needed to construct the Gemini-backed
// probabilistic classifier.
type ClassifierConfig struct {
	APIKey  string
	BaseURL string
	NLU     model.NLUModelConfig
}

// GeminiClassifier is the probabilistic side of intent recognition: it asks
// a Gemini model to classify the raw message text and parses the delimited
// response into an IntentResult. Thresholding is deliberately not applied
// here; that policy belongs to the dialog engine.
type GeminiClassifier struct {
	chatModel einomodel.BaseChatModel
	modelName string
	system    string
}

// NewGeminiClassifier builds the genai client and chat model.
func NewGeminiClassifier(ctx context.Context, cfg ClassifierConfig) (*GeminiClassifier, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.NLU.Model,
		Temperature: &cfg.NLU.Temperature,
		MaxTokens:   &cfg.NLU.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating NLU model")
		return nil, fmt.Errorf("error creating NLU model: %w", err)
	}

	return &GeminiClassifier{
		chatModel: chatModel,
		modelName: cfg.NLU.Model,
		system:    renderSystemPrompt(),
	}, nil
}

func renderSystemPrompt() string {
	intents := []string{
		model.IntentGreeting,
		model.IntentShare,
		model.IntentOrder,
		model.IntentHelp,
		model.IntentSearchPics,
	}
	return strings.NewReplacer(
		"{TD}", tupDelim,
		"{RD}", recDelim,
		"{CD}", endDelim,
		"{intents}", "- "+strings.Join(intents, "\n- "),
	).Replace(nluSystemPrompt)
}

// Classify sends the message text to the model and parses the result.
func (c *GeminiClassifier) Classify(ctx context.Context, text string) (*model.IntentResult, error) {
	messages := []*schema.Message{
		schema.SystemMessage(c.system),
		schema.UserMessage(text),
	}

	out, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("nlu generate: %w", err)
	}
	if out == nil || out.Content == "" {
		return nil, fmt.Errorf("nlu generate: empty response")
	}

	result, err := ParseClassifierResponse(out.Content)
	if err != nil {
		return nil, fmt.Errorf("nlu parse: %w", err)
	}

	logx.Debug().
		Str("component", "nlu").
		Str("model", c.modelName).
		Str("intent", result.Name).
		Float64("confidence", result.Confidence).
		Msg("classified message")
	return result, nil
}
