package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildScoringPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildScoringPrompt("AI Engineer", "Worked on ML pipelines for 5 years.")

	assert.Contains(t, prompt, "Analyze this CV for the role of: AI Engineer.")
	assert.Contains(t, prompt, "Worked on ML pipelines for 5 years.")
	assert.Contains(t, prompt, "SCORE:")
	assert.Contains(t, prompt, "ANALYSIS:")
}

func TestBuildScoringPromptTruncatesLongCVs(t *testing.T) {
	pb := NewPromptBuilder()
	longText := strings.Repeat("x", cvTextBudget*3)

	prompt := pb.BuildScoringPrompt("Data Scientist", longText)

	assert.Contains(t, prompt, strings.Repeat("x", cvTextBudget))
	assert.NotContains(t, prompt, strings.Repeat("x", cvTextBudget+1))
	// The instruction block survives truncation
	assert.Contains(t, prompt, "Reply strictly in this format")
}
