package model

// ================ Config ================
type ConversationConfig struct {
	// TTL bounds how long an idle conversation survives in the durable store.
	TTL string `envconfig:"CONVERSATION_TTL" default:"24h"`
	// MaxTurns caps the stored history per user; oldest turns are evicted first.
	MaxTurns int `envconfig:"CONVERSATION_MAX_TURNS" default:"100"`
	// DescriptionTurns is how many recent user turns feed description synthesis.
	DescriptionTurns int `envconfig:"CONVERSATION_DESCRIPTION_TURNS" default:"3"`
}

type ResponseModelConfig struct {
	Model       string  `envconfig:"RESPONSE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"RESPONSE_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"RESPONSE_TEMPERATURE" default:"0.4"`
}

type DescriptionModelConfig struct {
	Model       string  `envconfig:"DESCRIPTION_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"DESCRIPTION_MAX_TOKENS" default:"300"`
	Temperature float32 `envconfig:"DESCRIPTION_TEMPERATURE" default:"0.2"`
	// Timeout bounds the secondary model call; expiry takes the fallback
	// description path rather than failing the turn.
	Timeout string `envconfig:"DESCRIPTION_TIMEOUT" default:"10s"`
}

type SupportPromptConfig struct {
	AgentName    string `envconfig:"PROMPT_AGENT_NAME" default:"Emma"`
	BusinessName string `envconfig:"PROMPT_BUSINESS_NAME" default:"VServe"`
}
