package parsers

import (
	"regexp"
	"strings"

	"github.com/vserve-support/server/internal/agent/model"
)

// Field labels are matched case-insensitively; the value is everything after
// the colon up to the next comma. No semantic validation is applied:
// malformed-but-matching values pass through unchecked.
var (
	fieldFirstName = regexp.MustCompile(`(?i)First Name:\s*([^,]+)`)
	fieldLastName  = regexp.MustCompile(`(?i)Last Name:\s*([^,]+)`)
	fieldAddress   = regexp.MustCompile(`(?i)Address:\s*([^,]+)`)
	fieldContact   = regexp.MustCompile(`(?i)Contact Number:\s*([^,]+)`)

	timePattern = regexp.MustCompile(`(?i)\d{4}-\d{2}-\d{2}\s+\d{1,2}:\d{2}\s*(?:AM|PM)`)
)

// Fields holds values extracted from free text. An empty string means the
// field was not found and the caller keeps its prior value.
type Fields struct {
	FirstName     string
	LastName      string
	Address       string
	ContactNumber string
}

// ExtractFields pulls labelled contact fields out of free-form text.
func ExtractFields(text string) Fields {
	capture := func(re *regexp.Regexp) string {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return ""
		}
		return strings.TrimSpace(m[1])
	}
	return Fields{
		FirstName:     capture(fieldFirstName),
		LastName:      capture(fieldLastName),
		Address:       capture(fieldAddress),
		ContactNumber: capture(fieldContact),
	}
}

// ApplyTo overwrites draft fields for which a value was extracted; fields
// that were not found retain their prior value.
func (f Fields) ApplyTo(draft *model.TicketDraft) {
	if f.FirstName != "" {
		draft.FirstName = f.FirstName
	}
	if f.LastName != "" {
		draft.LastName = f.LastName
	}
	if f.Address != "" {
		draft.Address = f.Address
	}
	if f.ContactNumber != "" {
		draft.ContactNumber = f.ContactNumber
	}
}

// ExtractScheduledTime matches the fixed "YYYY-MM-DD H:MM AM/PM" pattern
// anywhere in the text. Absence is reported so the caller re-asks instead of
// silently keeping a stale value.
func ExtractScheduledTime(text string) (string, bool) {
	m := timePattern.FindString(text)
	if m == "" {
		return "", false
	}
	return strings.TrimSpace(m), true
}
