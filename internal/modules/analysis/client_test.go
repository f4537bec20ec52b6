package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func completionResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]interface{}{
			{
				"index": 0,
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
}

func Test_OpenAIClient_Returns_First_Choice_Content(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(completionResponse("Great session.")))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "gpt-4o-mini")

	// Act
	analysis, err := client.Complete(context.Background(), "Analyze this session")

	// Assert
	require.NoError(t, err)
	require.Equal(t, "Great session.", analysis)
}

func Test_OpenAIClient_Fails_On_Provider_Error_Status(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "gpt-4o-mini")

	// Act
	_, err := client.Complete(context.Background(), "Analyze this session")

	// Assert
	require.Error(t, err)
}

func Test_OpenAIClient_Fails_On_Empty_Choices(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-test","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL, "gpt-4o-mini")

	// Act
	_, err := client.Complete(context.Background(), "Analyze this session")

	// Assert
	require.Error(t, err)
}
