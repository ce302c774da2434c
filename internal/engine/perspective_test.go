package engine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// analyzeHandler returns a handler that responds with the given toxicity
// score in the Comment Analyzer response shape.
func analyzeHandler(score float64, calls *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		resp := map[string]any{
			"attributeScores": map[string]any{
				"TOXICITY": map[string]any{
					"spanScores": []map[string]any{
						{"score": map[string]any{"value": score}},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// TestPerspectiveScore tests the remote engine against a local server.
func TestPerspectiveScore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("reads score from response path", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(analyzeHandler(0.87, nil))
		defer srv.Close()

		e, err := NewPerspective("test-key", WithEndpoint(srv.URL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := e.Score(ctx, "you are horrible")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 0.87 {
			t.Errorf("expected 0.87, got %f", got)
		}
	})

	t.Run("sends language hint and attribute", func(t *testing.T) {
		t.Parallel()

		var body analyzeRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			analyzeHandler(0.1, nil)(w, r)
		}))
		defer srv.Close()

		e, err := NewPerspective("test-key", WithEndpoint(srv.URL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := e.Score(ctx, "hello"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if body.Comment.Text != "hello" {
			t.Errorf("expected comment text 'hello', got %q", body.Comment.Text)
		}
		if len(body.Languages) != 1 || body.Languages[0] != "en" {
			t.Errorf("expected language hint [en], got %v", body.Languages)
		}
		if _, ok := body.RequestedAttributes["TOXICITY"]; !ok {
			t.Errorf("expected TOXICITY attribute, got %v", body.RequestedAttributes)
		}
	})

	t.Run("over-length text fails without a network call", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(analyzeHandler(0.5, &calls))
		defer srv.Close()

		e, err := NewPerspective("test-key", WithEndpoint(srv.URL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		long := strings.Repeat("a", DefaultPerspectiveMaxChars+1)
		_, err = e.Score(ctx, long)
		if err == nil {
			t.Fatal("expected error for over-length text")
		}
		if !strings.Contains(err.Error(), "line too long") {
			t.Errorf("unexpected error text: %v", err)
		}
		if calls.Load() != 0 {
			t.Errorf("expected no network call, got %d", calls.Load())
		}
	})

	t.Run("length ceiling counts characters not bytes", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(analyzeHandler(0.5, &calls))
		defer srv.Close()

		e, err := NewPerspective("test-key", WithEndpoint(srv.URL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Each rune is 3 bytes; at the rune ceiling the text must still
		// be sent even though it is far over the ceiling in bytes.
		atLimit := strings.Repeat("あ", DefaultPerspectiveMaxChars)
		if _, err := e.Score(ctx, atLimit); err != nil {
			t.Fatalf("unexpected error at character ceiling: %v", err)
		}
		if calls.Load() != 1 {
			t.Errorf("expected 1 network call, got %d", calls.Load())
		}

		overLimit := strings.Repeat("あ", DefaultPerspectiveMaxChars+1)
		if _, err := e.Score(ctx, overLimit); err == nil {
			t.Fatal("expected error one character over the ceiling")
		}
		if calls.Load() != 1 {
			t.Errorf("expected no further network call, got %d", calls.Load())
		}
	})

	t.Run("surfaces service error message", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
		}))
		defer srv.Close()

		e, err := NewPerspective("test-key", WithEndpoint(srv.URL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = e.Score(ctx, "hello")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "Quota exceeded") {
			t.Errorf("expected quota message, got: %v", err)
		}
	})

	t.Run("rejects malformed response", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"attributeScores":{}}`))
		}))
		defer srv.Close()

		e, err := NewPerspective("test-key", WithEndpoint(srv.URL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := e.Score(ctx, "hello"); err == nil {
			t.Fatal("expected error for missing attribute scores")
		}
	})

	t.Run("per-call timeout bounds a slow server", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		e, err := NewPerspective("test-key",
			WithEndpoint(srv.URL),
			WithTimeout(50*time.Millisecond),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		start := time.Now()
		_, err = e.Score(ctx, "hello")
		if err == nil {
			t.Fatal("expected timeout error")
		}
		if elapsed := time.Since(start); elapsed > 5*time.Second {
			t.Errorf("timeout took too long: %v", elapsed)
		}
	})

	t.Run("missing API key is rejected at construction", func(t *testing.T) {
		t.Parallel()

		if _, err := NewPerspective(""); !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("expected ErrMissingAPIKey, got %v", err)
		}
	})
}
