package dialogue

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/cloudwego/eino/schema"

	"github.com/vserve-support/server/internal/agent/model"
	"github.com/vserve-support/server/internal/agent/parsers"
	"github.com/vserve-support/server/internal/agent/prompts"
	logx "github.com/vserve-support/server/pkg/logger"
)

// maxDescriptionLen caps the synthesized issue description.
const maxDescriptionLen = 150

// describeIssue synthesizes a short issue description from the most recent
// user turns via the secondary model. Any failure, including the timeout,
// is non-fatal and yields the deterministic fallback.
func (e *Engine) describeIssue(ctx context.Context, state *model.ConversationState) string {
	turns := e.cfg.Conversation.DescriptionTurns
	if turns <= 0 {
		turns = 3
	}
	recent := e.manager.RecentUserContents(state, turns)
	if len(recent) == 0 {
		return fallbackDescription(state.Draft.IssueTitle)
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.DescriptionTimeout)
	defer cancel()

	out, err := e.descriptionModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(prompts.DescriptionSystem()),
		schema.UserMessage(prompts.DescriptionRequest(recent)),
	})
	if err != nil || out == nil {
		logx.Error().Err(err).Str("user_id", state.UserID).Msg("description synthesis failed, using fallback")
		return fallbackDescription(state.Draft.IssueTitle)
	}

	description := parsers.StripReasoning(out.Content)
	description = strings.TrimSpace(strings.ReplaceAll(description, `"`, ""))
	if description == "" {
		return fallbackDescription(state.Draft.IssueTitle)
	}
	// Cap counts characters, not bytes; never split a rune.
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		runes := []rune(description)
		description = string(runes[:maxDescriptionLen-3]) + "..."
	}

	logx.Debug().Str("user_id", state.UserID).Str("description", description).Msg("issue description synthesized")
	return description
}

func fallbackDescription(issueTitle string) string {
	return "Customer reported an issue with " + strings.ToLower(issueTitle)
}
