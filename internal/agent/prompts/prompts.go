package prompts

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/vserve-support/server/internal/agent/model"
	"github.com/vserve-support/server/internal/agent/parsers"
)

//go:embed template/system_prompt.txt
var supportSystemPrompt string

//go:embed template/description_prompt.txt
var descriptionSystemPrompt string

// RenderSupportSystem renders the main system prompt. Only known tokens are
// substituted so bracketed placeholder examples in the template survive
// untouched.
func RenderSupportSystem(cfg model.SupportPromptConfig) string {
	return strings.NewReplacer(
		"{agent_name}", cfg.AgentName,
		"{business_name}", cfg.BusinessName,
		"{needs_details_update}", parsers.MarkerNeedsDetailsUpdate,
		"{needs_details}", parsers.MarkerNeedsDetails,
		"{needs_time}", parsers.MarkerNeedsTime,
		"{needs_ticket}", parsers.MarkerNeedsTicket,
	).Replace(supportSystemPrompt)
}

// DescriptionSystem is the system prompt for the secondary description-
// synthesis model call.
func DescriptionSystem() string {
	return strings.TrimSpace(descriptionSystemPrompt)
}

// DescriptionRequest builds the user message for description synthesis from
// the recent user turns.
func DescriptionRequest(recentQueries []string) string {
	return fmt.Sprintf(
		"Based on these user messages: %s, provide a 1-2 sentence description of their issue.",
		strings.Join(recentQueries, ", "),
	)
}

// ContextualQuery wraps the user's query with the retrieved knowledge-base
// context for the model call.
func ContextualQuery(context, query string) string {
	return fmt.Sprintf("Context from knowledge base: %s\n\nUser query: %s", context, query)
}
