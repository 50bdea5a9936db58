package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Chain tries its models one after another and returns the first non-empty reply.
// There is no fan-out and no backoff.
type Chain struct {
	models []Model

	// OnAttempt, when set, is called after every model attempt with a nil
	// error on success.
	OnAttempt func(model string, err error)
}

func NewChain(models ...Model) *Chain {
	return &Chain{models: models}
}

func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.models)
}

// Models returns the chain's models in fallback order.
func (c *Chain) Models() []Model {
	return append([]Model(nil), c.models...)
}

// Generate returns the reply and the name of the model that produced it.
// When every model fails the error wraps ErrAllModelsFailed and each attempt's error.
func (c *Chain) Generate(ctx context.Context, p Prompt) (string, string, error) {
	if c == nil || len(c.models) == 0 {
		return "", "", ErrNoModels
	}

	var errs []error
	for i, m := range c.models {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		text, err := m.Generate(ctx, p)
		if err == nil && strings.TrimSpace(text) == "" {
			err = ErrEmptyResponse
		}
		if c.OnAttempt != nil {
			c.OnAttempt(m.Name(), err)
		}
		if err == nil {
			return text, m.Name(), nil
		}

		log.Printf("LLM: model %s failed (attempt %d/%d): %v", m.Name(), i+1, len(c.models), err)
		errs = append(errs, fmt.Errorf("%s: %w", m.Name(), err))
	}

	return "", "", fmt.Errorf("%w: %w", ErrAllModelsFailed, errors.Join(errs...))
}
