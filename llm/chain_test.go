package llm

import (
	"context"
	"errors"
	"testing"

	"go-healthai/types"
)

type fakeModel struct {
	name  string
	reply string
	err   error
	calls int
}

func (f *fakeModel) Name() string { return f.name }

func (f *fakeModel) Generate(ctx context.Context, p Prompt) (string, error) {
	f.calls++
	return f.reply, f.err
}

func TestChainFirstSuccessWins(t *testing.T) {
	t.Parallel()

	first := &fakeModel{name: "a", err: errors.New("rate limited")}
	second := &fakeModel{name: "b", reply: "drink water"}
	third := &fakeModel{name: "c", reply: "never reached"}

	var attempts []string
	chain := NewChain(first, second, third)
	chain.OnAttempt = func(model string, err error) {
		attempts = append(attempts, model)
	}

	text, model, err := chain.Generate(context.Background(), Prompt{Message: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "drink water" || model != "b" {
		t.Fatalf("expected reply from b, got %q from %q", text, model)
	}
	if third.calls != 0 {
		t.Fatal("chain kept going after a success")
	}
	if len(attempts) != 2 || attempts[0] != "a" || attempts[1] != "b" {
		t.Fatalf("unexpected attempts: %v", attempts)
	}
}

func TestChainTreatsBlankReplyAsFailure(t *testing.T) {
	t.Parallel()

	blank := &fakeModel{name: "blank", reply: "   "}
	good := &fakeModel{name: "good", reply: "ok"}

	_, model, err := NewChain(blank, good).Generate(context.Background(), Prompt{})
	if err != nil || model != "good" {
		t.Fatalf("expected fallback to good, got %q, %v", model, err)
	}
}

func TestChainAllFail(t *testing.T) {
	t.Parallel()

	errA := errors.New("timeout")
	errB := errors.New("quota exceeded")
	chain := NewChain(&fakeModel{name: "a", err: errA}, &fakeModel{name: "b", err: errB}, &fakeModel{name: "c"})

	_, _, err := chain.Generate(context.Background(), Prompt{})
	if !errors.Is(err, ErrAllModelsFailed) {
		t.Fatalf("expected ErrAllModelsFailed, got %v", err)
	}
	for _, want := range []error{errA, errB, ErrEmptyResponse} {
		if !errors.Is(err, want) {
			t.Errorf("expected %v in chain error %v", want, err)
		}
	}
}

func TestChainWithoutModels(t *testing.T) {
	t.Parallel()

	if _, _, err := NewChain().Generate(context.Background(), Prompt{}); !errors.Is(err, ErrNoModels) {
		t.Fatalf("expected ErrNoModels, got %v", err)
	}

	var nilChain *Chain
	if _, _, err := nilChain.Generate(context.Background(), Prompt{}); !errors.Is(err, ErrNoModels) {
		t.Fatalf("expected ErrNoModels from nil chain, got %v", err)
	}
}

func TestChainStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := &fakeModel{name: "a", reply: "ok"}
	_, _, err := NewChain(m).Generate(ctx, Prompt{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if m.calls != 0 {
		t.Fatal("model called with a cancelled context")
	}
}

func TestPromptRecentHistory(t *testing.T) {
	t.Parallel()

	var history []types.HistoryEntry
	for i := 0; i < maxHistory+5; i++ {
		history = append(history, types.HistoryEntry{Role: "user", Content: string(rune('a' + i))})
	}

	got := Prompt{History: history}.RecentHistory()
	if len(got) != maxHistory {
		t.Fatalf("expected %d entries, got %d", maxHistory, len(got))
	}
	if got[len(got)-1].Content != history[len(history)-1].Content {
		t.Fatal("expected the most recent entries to be kept")
	}
}
