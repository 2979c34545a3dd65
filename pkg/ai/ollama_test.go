package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaService_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req["model"])
		assert.Equal(t, "Say hello", req["prompt"])
		assert.Equal(t, false, req["stream"])
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"response": "Hello!", "done": true})
	}))
	defer srv.Close()

	svc := NewOllamaService(srv.URL + "/")
	text, err := svc.Generate(context.Background(), "", "llama3", PingPrompt)
	require.NoError(t, err)
	assert.Equal(t, "Hello!", text)
}

func TestOllamaService_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllamaService(srv.URL).Generate(context.Background(), "", "missing", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
