package breakdown

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternsMatchesKeyword(t *testing.T) {
	steps, err := Patterns{}.Breakdown(context.Background(), "Write report", "")
	require.NoError(t, err)

	require.Len(t, steps, 5)
	assert.Equal(t, "Research and gather relevant information", steps[0])
	assert.Equal(t, "Proofread and finalize", steps[4])
}

func TestPatternsIsCaseInsensitive(t *testing.T) {
	steps, err := Patterns{}.Breakdown(context.Background(), "STUDY for finals", "")
	require.NoError(t, err)

	assert.Equal(t, "Gather all study materials", steps[0])
}

func TestPatternsGenericFallback(t *testing.T) {
	steps, err := Patterns{}.Breakdown(context.Background(), "water the plants", "")
	require.NoError(t, err)

	require.Len(t, steps, 5)
	assert.Equal(t, "Clarify what needs to be done", steps[0])
}

type stubProvider struct {
	steps []string
	err   error
	calls int
}

func (s *stubProvider) Breakdown(context.Context, string, string) ([]string, error) {
	s.calls++
	return s.steps, s.err
}

func TestFallbackPrefersPrimary(t *testing.T) {
	primary := &stubProvider{steps: []string{"one", "two"}}
	secondary := &stubProvider{steps: []string{"never"}}

	steps, err := Fallback(primary, secondary).Breakdown(context.Background(), "anything", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, steps)
	assert.Zero(t, secondary.calls)
}

func TestFallbackOnPrimaryFailure(t *testing.T) {
	primary := &stubProvider{err: &ProviderError{Reason: "request failed"}}

	steps, err := Fallback(primary, Patterns{}).Breakdown(context.Background(), "Write report", "")
	require.NoError(t, err)

	require.Len(t, steps, 5)
	assert.Equal(t, "Research and gather relevant information", steps[0])
	for _, s := range steps {
		assert.NotEmpty(t, s)
	}
}

func TestAPIProviderParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"1. Gather sources\n2. Draft intro\n- Edit body\nProofread"}}]}`))
	}))
	defer srv.Close()

	p := NewAPIProvider("test-key", srv.URL, "test-model")
	steps, err := p.Breakdown(context.Background(), "Write report", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Gather sources", "Draft intro", "Edit body", "Proofread"}, steps)
}

func TestAPIProviderCapsSteps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"a\nb\nc\nd\ne\nf\ng\nh"}}]}`))
	}))
	defer srv.Close()

	p := NewAPIProvider("k", srv.URL, "m")
	steps, err := p.Breakdown(context.Background(), "big task", "")
	require.NoError(t, err)

	assert.Len(t, steps, 6)
}

func TestAPIProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid key","type":"auth"}}`))
	}))
	defer srv.Close()

	p := NewAPIProvider("bad-key", srv.URL, "m")
	_, err := p.Breakdown(context.Background(), "task", "")

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Contains(t, provErr.Reason, "invalid key")
}

func TestAPIProviderTooFewSteps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"just one line"}}]}`))
	}))
	defer srv.Close()

	p := NewAPIProvider("k", srv.URL, "m")
	_, err := p.Breakdown(context.Background(), "task", "")

	var provErr *ProviderError
	assert.ErrorAs(t, err, &provErr)
}

func TestAPIProviderUnreachable(t *testing.T) {
	p := NewAPIProvider("k", "http://127.0.0.1:1", "m")
	_, err := p.Breakdown(context.Background(), "task", "")

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.True(t, errors.Unwrap(provErr) != nil)
}

func TestParseSteps(t *testing.T) {
	steps := parseSteps("1. First\n\n2) Second\n• Third\n* Fourth\n- Fifth\n10. Tenth")

	assert.Equal(t, []string{"First", "Second", "Third", "Fourth", "Fifth", "Tenth"}, steps)
}
