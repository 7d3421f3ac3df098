// Package knowledge provides the retrieval collaborator for the chat
// pipeline: given a query, return the best supporting passages from the
// knowledge base, or a sentinel when nothing relevant exists.
package knowledge

import (
	"context"
	"os"
	"regexp"
	"sort"
	"strings"

	logx "github.com/vserve-support/server/pkg/logger"
)

// NoContextSentinel is returned when the knowledge base has nothing relevant.
// It is a normal result, not an error.
const NoContextSentinel = "No relevant context found."

// topMatches is how many ranked passages are joined into the context string.
const topMatches = 2

// Finder retrieves supporting context for a query. A similarity-search
// service backed by a vector index satisfies this; transport failures are
// returned as errors and surfaced as a failed request, never swallowed.
type Finder interface {
	Find(ctx context.Context, query string) (string, error)
}

type Config struct {
	// Path points at a plain-text knowledge base: passages separated by
	// blank lines. Empty path yields a finder that always reports no context.
	Path string `envconfig:"KNOWLEDGE_PATH"`
}

// StaticFinder ranks configured passages by keyword overlap with the query.
// It stands in for a real similarity-search service behind the same Finder
// interface.
type StaticFinder struct {
	passages []string
}

var tokenPattern = regexp.MustCompile(`[a-z0-9']+`)

func NewStaticFinder(passages []string) *StaticFinder {
	kept := make([]string, 0, len(passages))
	for _, p := range passages {
		if s := strings.TrimSpace(p); s != "" {
			kept = append(kept, s)
		}
	}
	return &StaticFinder{passages: kept}
}

// Load builds a StaticFinder from the configured knowledge file.
func (c Config) Load() (*StaticFinder, error) {
	if c.Path == "" {
		logx.Warn().Msg("no knowledge path configured; all lookups will report no context")
		return NewStaticFinder(nil), nil
	}
	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, err
	}
	passages := regexp.MustCompile(`\n\s*\n`).Split(string(raw), -1)
	f := NewStaticFinder(passages)
	logx.Info().Int("passages", len(f.passages)).Str("path", c.Path).Msg("knowledge base loaded")
	return f, nil
}

func (f *StaticFinder) Find(_ context.Context, query string) (string, error) {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 || len(f.passages) == 0 {
		return NoContextSentinel, nil
	}

	type scored struct {
		passage string
		score   int
		index   int
	}
	var ranked []scored
	for i, p := range f.passages {
		s := overlap(queryTokens, tokenize(p))
		if s > 0 {
			ranked = append(ranked, scored{passage: p, score: s, index: i})
		}
	}
	if len(ranked) == 0 {
		return NoContextSentinel, nil
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].index < ranked[j].index
	})

	n := topMatches
	if len(ranked) < n {
		n = len(ranked)
	}
	parts := make([]string, 0, n)
	for _, r := range ranked[:n] {
		parts = append(parts, r.passage)
	}
	return strings.Join(parts, "\n"), nil
}

func tokenize(s string) map[string]struct{} {
	tokens := tokenPattern.FindAllString(strings.ToLower(s), -1)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func overlap(a, b map[string]struct{}) int {
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}

var _ Finder = (*StaticFinder)(nil)
