package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vidbrief/vidbrief/internal/domain"
	"github.com/vidbrief/vidbrief/internal/keypool"
	"github.com/vidbrief/vidbrief/internal/provider/openai"
)

// emptyPool is a credential pool with nothing to hand out.
type emptyPool struct{}

func (emptyPool) Current() (string, error) { return "", domain.ErrPoolExhausted }

func (emptyPool) Advance() (string, error) { return "", domain.ErrPoolExhausted }

func (emptyPool) Status() domain.KeyStatus { return domain.KeyStatus{} }

func testConfig(baseURL string) openai.Config {
	return openai.Config{
		BaseURL:     baseURL,
		Timeout:     5,
		Temperature: 0.7,
		MaxTokens:   1024,
	}
}

func chatCompletionBody(content, finishReason string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4",
		"choices": []map[string]interface{}{
			{
				"index": 0,
				"message": map[string]string{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": finishReason,
			},
		},
		"usage": map[string]int{
			"prompt_tokens":     10,
			"completion_tokens": 20,
			"total_tokens":      30,
		},
	})
	return string(body)
}

func TestFactory_Name(t *testing.T) {
	factory := openai.NewFactory(testConfig(""), "gpt-4", keypool.New([]string{"key"}))

	require.Equal(t, "openai", factory.Name())
}

func TestFactory_Supports(t *testing.T) {
	factory := openai.NewFactory(testConfig(""), "gpt-4", keypool.New([]string{"key"}))

	require.True(t, factory.Supports("gpt-4"))
	require.True(t, factory.Supports("gpt-4-turbo"))
	require.True(t, factory.Supports("gpt-3.5-turbo"))
	require.False(t, factory.Supports("gemini-1.5-flash"))
	require.False(t, factory.Supports("unknown-model"))
}

func TestFactory_NewModel_UsesPoolCredential(t *testing.T) {
	var seenAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionBody("ok", "stop")))
	}))
	defer server.Close()

	factory := openai.NewFactory(testConfig(server.URL), "gpt-4", keypool.New([]string{"pool-key"}))

	model, err := factory.NewModel(context.Background())
	require.NoError(t, err)

	_, err = model.Generate(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, "Bearer pool-key", seenAuth)
}

func TestFactory_NewModel_PrefersConfiguredKey(t *testing.T) {
	var seenAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionBody("ok", "stop")))
	}))
	defer server.Close()

	config := testConfig(server.URL)
	config.APIKey = "pinned-key"
	factory := openai.NewFactory(config, "gpt-4", keypool.New([]string{"pool-key"}))

	model, err := factory.NewModel(context.Background())
	require.NoError(t, err)

	_, err = model.Generate(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, "Bearer pinned-key", seenAuth)
}

func TestFactory_NewModel_PoolExhausted(t *testing.T) {
	factory := openai.NewFactory(testConfig(""), "gpt-4", emptyPool{})

	model, err := factory.NewModel(context.Background())

	require.ErrorIs(t, err, domain.ErrPoolExhausted)
	require.Nil(t, model)
}

func TestModel_Generate(t *testing.T) {
	t.Run("should send model, prompt and generation settings", func(t *testing.T) {
		var seenBody map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&seenBody))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(chatCompletionBody("a summary", "stop")))
		}))
		defer server.Close()

		factory := openai.NewFactory(testConfig(server.URL), "gpt-4", keypool.New([]string{"key"}))
		model, err := factory.NewModel(context.Background())
		require.NoError(t, err)

		result, err := model.Generate(context.Background(), "summarize the video")

		require.NoError(t, err)
		require.Equal(t, "a summary", result.Text)
		require.Equal(t, "stop", result.FinishReason)
		require.Equal(t, 1, result.Candidates)

		require.Equal(t, "gpt-4", seenBody["model"])
		require.InDelta(t, 0.7, seenBody["temperature"], 0.0001)
		require.InDelta(t, 1024, seenBody["max_tokens"], 0.0001)

		messages := seenBody["messages"].([]interface{})
		first := messages[0].(map[string]interface{})
		require.Equal(t, "user", first["role"])
		require.Equal(t, "summarize the video", first["content"])
	})

	t.Run("should normalize the content filter finish reason", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(chatCompletionBody("", "content_filter")))
		}))
		defer server.Close()

		factory := openai.NewFactory(testConfig(server.URL), "gpt-4", keypool.New([]string{"key"}))
		model, err := factory.NewModel(context.Background())
		require.NoError(t, err)

		result, err := model.Generate(context.Background(), "prompt")

		require.NoError(t, err)
		require.Empty(t, result.Text)
		require.Equal(t, domain.FinishSafety, result.FinishReason)
	})

	t.Run("should classify HTTP 429 as rate limiting", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests"}}`))
		}))
		defer server.Close()

		factory := openai.NewFactory(testConfig(server.URL), "gpt-4", keypool.New([]string{"key"}))
		model, err := factory.NewModel(context.Background())
		require.NoError(t, err)

		_, err = model.Generate(context.Background(), "prompt")

		var rateLimit *domain.RateLimitError
		require.ErrorAs(t, err, &rateLimit)
	})

	t.Run("should classify HTTP 401 as a bad credential", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
		}))
		defer server.Close()

		factory := openai.NewFactory(testConfig(server.URL), "gpt-4", keypool.New([]string{"key"}))
		model, err := factory.NewModel(context.Background())
		require.NoError(t, err)

		_, err = model.Generate(context.Background(), "prompt")

		var badCred *domain.BadCredentialError
		require.ErrorAs(t, err, &badCred)
	})

	t.Run("should pass through server errors unclassified", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"The server had an error"}}`))
		}))
		defer server.Close()

		factory := openai.NewFactory(testConfig(server.URL), "gpt-4", keypool.New([]string{"key"}))
		model, err := factory.NewModel(context.Background())
		require.NoError(t, err)

		_, err = model.Generate(context.Background(), "prompt")

		require.Error(t, err)
		var rateLimit *domain.RateLimitError
		require.False(t, errors.As(err, &rateLimit))
		var badCred *domain.BadCredentialError
		require.False(t, errors.As(err, &badCred))
	})
}
