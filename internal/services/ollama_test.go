package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"izaanhr/cv-intake-bot/internal/config"
)

func TestParseScoreReply(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantScore    string
		wantAnalysis string
		ok           bool
	}{
		{
			name:         "documented order",
			raw:          "SCORE: 85\nANALYSIS: Strong candidate with solid Python background.",
			wantScore:    "85",
			wantAnalysis: "Strong candidate with solid Python background.",
			ok:           true,
		},
		{
			name:         "single line",
			raw:          "SCORE: 45 ANALYSIS: Limited relevant experience.",
			wantScore:    "45",
			wantAnalysis: "Limited relevant experience.",
			ok:           true,
		},
		{
			name:         "reversed order",
			raw:          "ANALYSIS: Great fit for the role.\nSCORE: 90",
			wantScore:    "90",
			wantAnalysis: "Great fit for the role.",
			ok:           true,
		},
		{
			name:         "leading chatter",
			raw:          "Sure, here is my evaluation.\nSCORE: 70/100\nANALYSIS: Decent profile overall.",
			wantScore:    "70/100",
			wantAnalysis: "Decent profile overall.",
			ok:           true,
		},
		{
			name: "missing analysis",
			raw:  "SCORE: 85",
			ok:   false,
		},
		{
			name: "missing score",
			raw:  "ANALYSIS: nice person",
			ok:   false,
		},
		{
			name: "free text",
			raw:  "I think this candidate is quite good.",
			ok:   false,
		},
		{
			name: "empty",
			raw:  "",
			ok:   false,
		},
		{
			name: "empty score token",
			raw:  "SCORE:\nANALYSIS: something",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, ok := ParseScoreReply(tt.raw)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.wantScore, reply.Score)
				assert.Equal(t, tt.wantAnalysis, reply.Analysis)
			}
		})
	}
}

func TestOllamaGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Contains(t, req.Prompt, "AI Engineer")

		json.NewEncoder(w).Encode(generateResponse{
			Response: "SCORE: 85\nANALYSIS: Strong candidate.",
		})
	}))
	defer server.Close()

	svc := NewOllamaService(config.OllamaConfig{
		URL:     server.URL,
		Model:   "llama3.2",
		Timeout: 5 * time.Second,
	})

	raw, err := svc.Generate(context.Background(), "Analyze this CV for the role of: AI Engineer.")
	require.NoError(t, err)
	assert.Equal(t, "SCORE: 85\nANALYSIS: Strong candidate.", raw)
}

func TestOllamaGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewOllamaService(config.OllamaConfig{
		URL:     server.URL,
		Model:   "llama3.2",
		Timeout: 5 * time.Second,
	})

	_, err := svc.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestOllamaGenerateUnreachable(t *testing.T) {
	svc := NewOllamaService(config.OllamaConfig{
		URL:     "http://127.0.0.1:1", // nothing listens here
		Model:   "llama3.2",
		Timeout: time.Second,
	})

	_, err := svc.Generate(context.Background(), "prompt")
	require.Error(t, err)
}
