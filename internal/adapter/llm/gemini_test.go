package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"topic-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeminiTestServer(t *testing.T, status int, body string, captured *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-2.0-flash:generateContent"), r.URL.Path)
		if captured != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, captured)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func newTestGemini(t *testing.T, srv *httptest.Server) *GeminiTextGenerator {
	t.Helper()
	g, err := NewGeminiTextGenerator(context.Background(), GeminiOptions{
		APIKey:     "test-key",
		Model:      "gemini-2.0-flash",
		BaseURL:    srv.URL + "/",
		Timeout:    5 * time.Second,
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	return g
}

func TestGeminiTextGenerator_Generate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var req map[string]any
		srv := newGeminiTestServer(t, http.StatusOK,
			`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"topic\":\"Solar System\"}"}]},"finishReason":"STOP"}]}`,
			&req)
		defer srv.Close()

		text, err := newTestGemini(t, srv).Generate(context.Background(), "be a quiz generator", "Generate a quiz about: Solar System")
		require.NoError(t, err)
		assert.Equal(t, `{"topic":"Solar System"}`, text)

		raw, _ := json.Marshal(req)
		assert.Contains(t, string(raw), "be a quiz generator")
		assert.Contains(t, string(raw), "Generate a quiz about: Solar System")
	})

	t.Run("RateLimited", func(t *testing.T) {
		srv := newGeminiTestServer(t, http.StatusTooManyRequests,
			`{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`, nil)
		defer srv.Close()

		_, err := newTestGemini(t, srv).Generate(context.Background(), "sys", "user")
		assert.Equal(t, domain.ErrRateLimited, domain.CodeOf(err))
	})

	t.Run("RateLimitedWithQuotaWording", func(t *testing.T) {
		srv := newGeminiTestServer(t, http.StatusTooManyRequests,
			`{"error":{"code":429,"message":"Quota exceeded for metric generate_content requests per minute. Check your plan and billing details.","status":"RESOURCE_EXHAUSTED"}}`, nil)
		defer srv.Close()

		_, err := newTestGemini(t, srv).Generate(context.Background(), "sys", "user")
		assert.Equal(t, domain.ErrRateLimited, domain.CodeOf(err))
	})

	t.Run("PaymentRequired", func(t *testing.T) {
		srv := newGeminiTestServer(t, http.StatusPaymentRequired,
			`{"error":{"code":402,"message":"payment required","status":"FAILED_PRECONDITION"}}`, nil)
		defer srv.Close()

		_, err := newTestGemini(t, srv).Generate(context.Background(), "sys", "user")
		assert.Equal(t, domain.ErrQuotaExceeded, domain.CodeOf(err))
	})

	t.Run("ServerError", func(t *testing.T) {
		srv := newGeminiTestServer(t, http.StatusInternalServerError,
			`{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`, nil)
		defer srv.Close()

		_, err := newTestGemini(t, srv).Generate(context.Background(), "sys", "user")
		assert.Equal(t, domain.ErrGenerationFailed, domain.CodeOf(err))
	})

	t.Run("NoCandidates", func(t *testing.T) {
		srv := newGeminiTestServer(t, http.StatusOK, `{"candidates":[]}`, nil)
		defer srv.Close()

		_, err := newTestGemini(t, srv).Generate(context.Background(), "sys", "user")
		assert.Equal(t, domain.ErrGenerationFailed, domain.CodeOf(err))
	})
}

func TestNewGeminiTextGenerator_RequiresKey(t *testing.T) {
	_, err := NewGeminiTextGenerator(context.Background(), GeminiOptions{Model: "gemini-2.0-flash"})
	assert.Error(t, err)
}
