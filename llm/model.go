package llm

import (
	"context"
	"errors"

	"go-healthai/types"
)

var (
	ErrNoModels        = errors.New("no language models configured")
	ErrEmptyResponse   = errors.New("model returned an empty response")
	ErrAllModelsFailed = errors.New("all language models failed")
)

// maxHistory bounds how many prior turns are forwarded to a model.
const maxHistory = 10

// Prompt is everything a model needs for one turn. History is the client's
// conversation state, passed through untouched apart from trimming.
type Prompt struct {
	System   string
	History  []types.HistoryEntry
	Message  string
	Language types.Language
}

// RecentHistory returns at most the last maxHistory entries.
func (p Prompt) RecentHistory() []types.HistoryEntry {
	if len(p.History) <= maxHistory {
		return p.History
	}
	return p.History[len(p.History)-maxHistory:]
}

// Model is a single text generator in the fallback chain.
type Model interface {
	Name() string
	Generate(ctx context.Context, p Prompt) (string, error)
}
