package model

// ================ Config ================

// EngineConfig carries the dialog engine's policy knobs. The confidence
// threshold and fallback image cap are deliberately configurable rather than
// hard-coded.
type EngineConfig struct {
	// IntentThreshold is exclusive: a probabilistic intent is accepted only
	// when its confidence is strictly greater than this value.
	IntentThreshold   float64 `envconfig:"ENGINE_INTENT_THRESHOLD" default:"0.65"`
	FallbackMaxImages int     `envconfig:"ENGINE_FALLBACK_MAX_IMAGES" default:"5"`
}

// NLUModelConfig configures the Gemini model backing the probabilistic
// intent classifier.
type NLUModelConfig struct {
	Model       string  `envconfig:"NLU_MODEL" default:"gemini-2.0-flash"`
	MaxTokens   int     `envconfig:"NLU_MAX_TOKENS" default:"1000"`
	Temperature float32 `envconfig:"NLU_TEMPERATURE" default:"0.1"`
}

// SearchIndexConfig configures the primary structured picture index.
type SearchIndexConfig struct {
	Endpoint   string `envconfig:"SEARCH_INDEX_ENDPOINT" required:"true"`
	Index      string `envconfig:"SEARCH_INDEX_NAME" default:"images"`
	APIKey     string `envconfig:"SEARCH_INDEX_API_KEY" required:"true"`
	APIVersion string `envconfig:"SEARCH_INDEX_API_VERSION" default:"2020-06-30"`
	TimeoutSec int    `envconfig:"SEARCH_INDEX_TIMEOUT" default:"10"`
}

// ImageSearchConfig configures the secondary general image-search API used
// when the index comes back empty.
type ImageSearchConfig struct {
	Endpoint   string `envconfig:"IMAGE_SEARCH_ENDPOINT" default:"https://api.bing.microsoft.com/v7.0/images/search"`
	APIKey     string `envconfig:"IMAGE_SEARCH_API_KEY" required:"true"`
	TimeoutSec int    `envconfig:"IMAGE_SEARCH_TIMEOUT" default:"10"`
}

// ConversationConfig controls snapshot persistence.
type ConversationConfig struct {
	TTL string `envconfig:"CONVERSATION_TTL" default:"24h"`
}
