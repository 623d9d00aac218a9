package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"izaanhr/cv-intake-bot/internal/config"
)

// OllamaService sends a prompt to the local inference endpoint and returns
// the model's raw reply. The reply is free text; ParseScoreReply turns it
// into a typed result.
type OllamaService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type ollamaService struct {
	url    string
	model  string
	client *http.Client
}

func NewOllamaService(cfg config.OllamaConfig) OllamaService {
	return &ollamaService{
		url:   cfg.URL,
		model: cfg.Model,
		client: &http.Client{
			// Local inference can take minutes, far beyond gateway timeouts
			Timeout: cfg.Timeout,
		},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate implements OllamaService.
func (o *ollamaService) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach inference endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("inference endpoint returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var gen generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}

	return gen.Response, nil
}

// ScoreReply is the parsed form of the model's SCORE/ANALYSIS reply.
type ScoreReply struct {
	Score    string
	Analysis string
}

var (
	scoreToken    = regexp.MustCompile(`(?s)SCORE:\s*(.*?)\s*(?:ANALYSIS:|$)`)
	analysisToken = regexp.MustCompile(`(?s)ANALYSIS:\s*(.*?)\s*(?:SCORE:|$)`)
)

// ParseScoreReply scans the raw model output for the SCORE and ANALYSIS
// tokens. The tokens may appear in either order. It returns ok == false when
// either token is missing or empty; callers substitute sentinels rather than
// failing the application.
func ParseScoreReply(raw string) (ScoreReply, bool) {
	scoreMatch := scoreToken.FindStringSubmatch(raw)
	analysisMatch := analysisToken.FindStringSubmatch(raw)
	if scoreMatch == nil || analysisMatch == nil {
		return ScoreReply{}, false
	}

	reply := ScoreReply{
		Score:    strings.TrimSpace(scoreMatch[1]),
		Analysis: strings.TrimSpace(analysisMatch[1]),
	}
	if reply.Score == "" || reply.Analysis == "" {
		return ScoreReply{}, false
	}

	return reply, true
}
