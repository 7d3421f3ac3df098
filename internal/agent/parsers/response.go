package parsers

import (
	"regexp"
	"strings"

	"github.com/vserve-support/server/internal/agent/model"
	logx "github.com/vserve-support/server/pkg/logger"
)

// Control markers the model is instructed to emit. They are an untrusted,
// best-effort signal: absence, duplication, or malformed output must never
// panic and falls back to the ordinary-answer path.
const (
	MarkerNeedsDetails       = "<needs_details>"
	MarkerNeedsDetailsUpdate = "<needs_details_update>"
	MarkerNeedsTime          = "<needs_time>"
	MarkerNeedsTicket        = "<needs_ticket>"
)

// maxContentLen guards against pathological model output.
const maxContentLen = 128 * 1024 // 128KB

var (
	thinkPattern = regexp.MustCompile(`(?is)<think\b[^>]*>.*?</think>`)

	placeholderFirstName = regexp.MustCompile(`(?i)\[First Name\]`)
	placeholderLastName  = regexp.MustCompile(`(?i)\[Last Name\]`)
	placeholderAddress   = regexp.MustCompile(`(?i)\[Address\]`)
	placeholderContact   = regexp.MustCompile(`(?i)\[Contact Number\]`)
)

// Signals reports which control markers a model reply carries.
type Signals struct {
	NeedsDetails       bool
	NeedsDetailsUpdate bool
	NeedsTime          bool
	NeedsTicket        bool
}

// StripReasoning removes internal reasoning sections from model output. Runs
// before any marker detection so a marker inside a reasoning block is never
// acted on.
func StripReasoning(content string) string {
	if len(content) > maxContentLen {
		logx.Warn().
			Str("component", "response_parser").
			Int("max_len", maxContentLen).
			Int("orig_len", len(content)).
			Msg("content truncated due to size limit")
		content = content[:maxContentLen]
	}
	return strings.TrimSpace(thinkPattern.ReplaceAllString(content, ""))
}

// ScanMarkers detects the control markers present in a reply.
func ScanMarkers(content string) Signals {
	return Signals{
		NeedsDetails:       strings.Contains(content, MarkerNeedsDetails),
		NeedsDetailsUpdate: strings.Contains(content, MarkerNeedsDetailsUpdate),
		NeedsTime:          strings.Contains(content, MarkerNeedsTime),
		NeedsTicket:        strings.Contains(content, MarkerNeedsTicket),
	}
}

// StripMarkers removes every occurrence of all control markers. Replies sent
// to the caller carry no markers.
func StripMarkers(content string) string {
	r := strings.NewReplacer(
		MarkerNeedsDetailsUpdate, "",
		MarkerNeedsDetails, "",
		MarkerNeedsTime, "",
		MarkerNeedsTicket, "",
	)
	return strings.TrimSpace(r.Replace(content))
}

// SubstitutePlaceholders replaces the four bracketed placeholder tokens with
// resolved draft values, case-insensitively. The model may echo placeholders
// both at the details step and at the time-completion step.
func SubstitutePlaceholders(content string, draft *model.TicketDraft) string {
	if draft == nil {
		return content
	}
	content = placeholderFirstName.ReplaceAllLiteralString(content, draft.FirstName)
	content = placeholderLastName.ReplaceAllLiteralString(content, draft.LastName)
	content = placeholderAddress.ReplaceAllLiteralString(content, draft.Address)
	content = placeholderContact.ReplaceAllLiteralString(content, draft.ContactNumber)
	return content
}
