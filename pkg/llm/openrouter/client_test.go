package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/llm"
)

func TestAsk_SendsPromptsAndReturnsReply(t *testing.T) {
	var got chatCompletionsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "portfolio", r.Header.Get("X-Title"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"model":"m","choices":[{"index":0,"message":{"role":"assistant","content":"  A concise bio.  "}}]}`))
	}))
	defer srv.Close()

	c := New("secret", srv.URL+"/", "", "portfolio", "")
	reply, err := c.Ask(context.Background(), "sys", "user text")

	require.NoError(t, err)
	assert.Equal(t, "A concise bio.", reply)
	assert.Equal(t, DefaultModel, got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user text", got.Messages[1].Content)
}

func TestAsk_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	_, err := New("secret", srv.URL, "m", "", "").Ask(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openrouter http 429")
}

func TestAsk_EmptyChoiceContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"   "}}]}`))
	}))
	defer srv.Close()

	_, err := New("secret", srv.URL, "m", "", "").Ask(context.Background(), "s", "u")
	assert.ErrorIs(t, err, llm.ErrEmptyReply)
}

func TestAsk_MissingKey(t *testing.T) {
	_, err := New("", "", "", "", "").Ask(context.Background(), "s", "u")
	assert.Error(t, err)
}
