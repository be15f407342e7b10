package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func ollamaConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOllama
	cfg.Model = "llama3.2"
	cfg.Endpoint = endpoint
	return cfg
}

func geminiConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.Endpoint = endpoint
	return cfg
}

func TestOllamaClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "system prompt", req.System)
		assert.Equal(t, "user prompt", req.Prompt)
		assert.Equal(t, "json", req.Format)
		assert.InDelta(t, 0.1, req.Options.Temperature, 1e-9)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: `{"tasks":[],"budgetItems":[]}`})
	}))
	defer srv.Close()

	client := NewOllamaClient(ollamaConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:           TaskRiderParse,
		SystemPrompt:   "system prompt",
		UserPrompt:     "user prompt",
		ResponseSchema: &genai.Schema{Type: genai.TypeObject},
	})

	require.NoError(t, err)
	assert.Equal(t, `{"tasks":[],"budgetItems":[]}`, resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestOllamaClient_Generate_CallerDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var captured LLMCallEvent
	client := NewOllamaClient(ollamaConfig(srv.URL), &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	_, err := client.Generate(ctx, GenerateRequest{Task: TaskRiderParse, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, captured.Success)
	assert.Equal(t, "TIMEOUT", captured.ErrorCode)
}

func TestOllamaClient_Generate_Unavailable(t *testing.T) {
	client := NewOllamaClient(ollamaConfig("http://127.0.0.1:1"), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskRiderParse, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestOllamaClient_Generate_NoRetry(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal error"))
	}))
	defer srv.Close()

	client := NewOllamaClient(ollamaConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskRiderParse, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestOllamaClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.True(t, NewOllamaClient(ollamaConfig(srv.URL), NoopObserver{}).Available(context.Background()))
	assert.False(t, NewOllamaClient(ollamaConfig("http://127.0.0.1:1"), NoopObserver{}).Available(context.Background()))
}

func geminiReply(text string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{
				"role":  "model",
				"parts": []any{map[string]any{"text": text}},
			},
		}},
	})
	return string(body)
}

func TestGeminiClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		cfg, _ := body["generationConfig"].(map[string]any)
		assert.Equal(t, "application/json", cfg["responseMimeType"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiReply(`{"tasks":[],"budgetItems":[]}`)))
	}))
	defer srv.Close()

	var captured LLMCallEvent
	client, err := NewGeminiClient(geminiConfig(srv.URL), &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:           TaskRiderParse,
		UserPrompt:     "rider",
		ResponseSchema: &genai.Schema{Type: genai.TypeObject},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"tasks":[],"budgetItems":[]}`, resp.Text)
	assert.True(t, captured.Success)
	assert.Equal(t, ProviderGemini, captured.Provider)
	assert.Equal(t, "gemini-2.5-flash", captured.Model)
}

func TestGeminiClient_MissingKey(t *testing.T) {
	_, err := NewGeminiClient(DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewClient(DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGeminiClient_RejectedKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":401,"message":"API key not valid","status":"UNAUTHENTICATED"}}`))
	}))
	defer srv.Close()

	client, err := NewGeminiClient(geminiConfig(srv.URL), nil)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskRiderParse, UserPrompt: "rider"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGeminiClient_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"bad request","status":"INVALID_ARGUMENT"}}`))
	}))
	defer srv.Close()

	var captured LLMCallEvent
	client, err := NewGeminiClient(geminiConfig(srv.URL), &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskRiderParse, UserPrompt: "rider"})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Equal(t, "UNAVAILABLE", captured.ErrorCode)
}

func TestNewClient_UnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "openai"
	_, err := NewClient(cfg, nil)
	assert.ErrorContains(t, err, "unknown llm provider")
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }
