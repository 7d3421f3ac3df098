// Package classify maps a raw user query to one of the fixed issue
// categories by keyword matching. It is deliberately not an NLU layer: the
// first keyword set with any hit wins, checked in fixed priority order.
package classify

import (
	"strings"

	"github.com/vserve-support/server/internal/agent/model"
)

var keywordSets = []struct {
	title    string
	keywords []string
}{
	{model.IssueRepair, []string{"fix", "repair", "won't turn on", "broken"}},
	{model.IssueExchange, []string{"exchange", "defective", "defect", "faulty"}},
	{model.IssueTechnical, []string{"software", "crashed", "technical", "error"}},
	{model.IssueBilling, []string{"bill", "charge", "payment", "billing"}},
}

// IssueTitle returns the issue category for a query. Queries matching no
// keyword set classify as General Issue.
func IssueTitle(query string) string {
	q := strings.ToLower(query)
	for _, set := range keywordSets {
		for _, kw := range set.keywords {
			if strings.Contains(q, kw) {
				return set.title
			}
		}
	}
	return model.IssueGeneral
}
