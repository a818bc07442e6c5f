package breakdown

import (
	"context"
	"fmt"
)

// Provider produces an ordered list of 4-6 short actionable subtask
// texts for a task title. extra carries optional user context, usually
// the task-type preference string.
type Provider interface {
	Breakdown(ctx context.Context, title, extra string) ([]string, error)
}

// ProviderError is returned when a remote breakdown call fails or its
// response cannot be used. A failed call is terminal; there are no
// retries.
type ProviderError struct {
	Reason string
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("breakdown provider: %s: %v", e.Reason, e.Err)
	}
	return "breakdown provider: " + e.Reason
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

type fallback struct {
	primary   Provider
	secondary Provider
}

// Fallback returns a provider that consults primary and, only when it
// fails, returns secondary's result instead.
func Fallback(primary, secondary Provider) Provider {
	return fallback{primary: primary, secondary: secondary}
}

func (f fallback) Breakdown(ctx context.Context, title, extra string) ([]string, error) {
	steps, err := f.primary.Breakdown(ctx, title, extra)
	if err == nil {
		return steps, nil
	}
	return f.secondary.Breakdown(ctx, title, extra)
}
