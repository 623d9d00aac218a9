package models

import (
	"regexp"
	"strconv"
	"time"
)

// Rank labels used by the HR team to bucket candidates.
const (
	RankBest         = "Best candidate for the job role"
	RankAverage      = "Average for the job"
	RankLow          = "Low fit for the job"
	RankRejected     = "Rejected"
	RankManualReview = "Manual Review Required"
)

// OpenPositions is the closed set of roles candidates can apply for.
var OpenPositions = []string{
	"Python Developer",
	"AI Engineer",
	"Data Scientist",
}

// IsOpenPosition reports whether body exactly matches one of the open roles.
func IsOpenPosition(body string) bool {
	for _, p := range OpenPositions {
		if body == p {
			return true
		}
	}
	return false
}

// ScoredApplication is one append-only row in the candidate ledger.
type ScoredApplication struct {
	Timestamp time.Time
	Phone     string
	Position  string
	RawScore  string
	RankLabel string
	Analysis  string
}

var digitRuns = regexp.MustCompile(`\d+`)

// RankLabel maps the scorer's raw score string onto an HR category. All
// digits in the string are concatenated and parsed; a string with no digits
// gets the manual-review sentinel instead of an error.
func RankLabel(rawScore string) string {
	digits := digitRuns.FindAllString(rawScore, -1)
	if len(digits) == 0 {
		return RankManualReview
	}

	joined := ""
	for _, d := range digits {
		joined += d
	}

	score, err := strconv.Atoi(joined)
	if err != nil {
		// Absurdly long digit sequences overflow int
		return RankManualReview
	}

	switch {
	case score >= 80 && score <= 100:
		return RankBest
	case score >= 60 && score <= 79:
		return RankAverage
	case score >= 40 && score <= 59:
		return RankLow
	}

	return RankRejected
}
