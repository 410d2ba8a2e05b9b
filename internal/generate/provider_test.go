package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteforge/noteforge/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", Format: "text", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func completionResponse(content string) chatResponse {
	return chatResponse{
		ID:    "chatcmpl-test",
		Model: "test-model",
		Choices: []chatChoice{
			{Message: chatMessage{Role: "assistant", Content: content}},
		},
		Usage: chatUsage{TotalTokens: 42},
	}
}

func TestGenerate(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		require.NoError(t, json.NewEncoder(w).Encode(completionResponse("# Go Channels\n\ncontent")))
	}))
	defer srv.Close()

	p := NewChatProvider(Config{
		BaseURL:  srv.URL,
		APIKey:   "test-key",
		Model:    "test-model",
		Language: "English",
		Style:    "detailed tutorial",
	}, testLogger(t))

	content, err := p.Generate(context.Background(), "Go Channels")
	require.NoError(t, err)

	assert.Equal(t, "# Go Channels\n\ncontent", content)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "Go Channels")
	assert.Contains(t, gotReq.Messages[1].Content, "English")
}

func TestGenerateRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(completionResponse("recovered")))
	}))
	defer srv.Close()

	p := NewChatProvider(Config{BaseURL: srv.URL, APIKey: "k", MaxRetries: 3}, testLogger(t))

	content, err := p.Generate(context.Background(), "topic")
	require.NoError(t, err)
	assert.Equal(t, "recovered", content)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerateDoesNotRetryAuthErrors(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewChatProvider(Config{BaseURL: srv.URL, APIKey: "bad", MaxRetries: 3}, testLogger(t))

	_, err := p.Generate(context.Background(), "topic")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := chatResponse{Error: &chatAPIError{Message: "model overloaded", Type: "server_error"}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	p := NewChatProvider(Config{BaseURL: srv.URL, APIKey: "k", MaxRetries: 1}, testLogger(t))

	_, err := p.Generate(context.Background(), "topic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(chatResponse{}))
	}))
	defer srv.Close()

	p := NewChatProvider(Config{BaseURL: srv.URL, APIKey: "k", MaxRetries: 1}, testLogger(t))

	_, err := p.Generate(context.Background(), "topic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestBuildPromptDefaults(t *testing.T) {
	prompt := buildPrompt("TCP Backpressure", "", "")
	assert.Contains(t, prompt, "TCP Backpressure")
	assert.Contains(t, prompt, "English")
	assert.Contains(t, prompt, "detailed tutorial")

	prompt = buildPrompt("Goroutines", "Russian", "cheat sheet")
	assert.True(t, strings.Contains(prompt, "Russian"))
	assert.True(t, strings.Contains(prompt, "cheat sheet"))
}
