package services

import "fmt"

// Extracted CV text is truncated to this many characters before prompting,
// bounding both request size and inference latency.
const cvTextBudget = 2500

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildScoringPrompt combines the selected role and the extracted CV text
// into the fixed-format scoring instruction the reply parser expects.
func (pb *PromptBuilder) BuildScoringPrompt(position, cvText string) string {
	if len(cvText) > cvTextBudget {
		cvText = cvText[:cvTextBudget]
	}

	return fmt.Sprintf(`Analyze this CV for the role of: %s.
CV TEXT: %s

TASK:
1. Give a numerical score out of 100.
2. Provide a 2-sentence summary of the candidate's fit.

Reply strictly in this format:
SCORE: [Number]
ANALYSIS: [Summary]`, position, cvText)
}
