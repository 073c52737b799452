package runner

import (
	"math"
	"time"
)

// Check kinds recorded on a contract test result.
const (
	CheckRequest        = "request"
	CheckStatusCode     = "status_code"
	CheckResponseSchema = "response_schema"
	CheckHeader         = "header"
)

// Check is one verdict inside a contract test: what was checked, whether it
// held, and the values involved.
type Check struct {
	Kind     string `json:"check"`
	Passed   bool   `json:"passed"`
	Expected any    `json:"expected,omitempty"`
	Actual   any    `json:"actual,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Result is the outcome of testing one contract. Passed is the conjunction
// of all recorded checks; a transport failure records a single failing
// "request" check and nothing else.
type Result struct {
	Contract string        `json:"contract"`
	Method   string        `json:"method"`
	Path     string        `json:"path"`
	Passed   bool          `json:"passed"`
	Checks   []Check       `json:"checks"`
	Duration time.Duration `json:"duration"`
}

// addCheck records a check and folds its verdict into Passed.
func (r *Result) addCheck(c Check) {
	r.Checks = append(r.Checks, c)
	if !c.Passed {
		r.Passed = false
	}
}

// Summary aggregates one run of a contract suite. It is a plain data
// structure, ready for JSON serialization in CI.
type Summary struct {
	RunID       string    `json:"run_id"`
	Timestamp   time.Time `json:"timestamp"`
	Total       int       `json:"total"`
	Passed      int       `json:"passed"`
	Failed      int       `json:"failed"`
	SuccessRate float64   `json:"success_rate"`
	Results     []Result  `json:"results"`
}

// summarize computes the aggregate counts after all runs have completed.
func summarize(runID string, results []Result) Summary {
	s := Summary{
		RunID:     runID,
		Timestamp: time.Now(),
		Total:     len(results),
		Results:   results,
	}
	for _, r := range results {
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	if s.Total > 0 {
		rate := float64(s.Passed) / float64(s.Total) * 100
		s.SuccessRate = math.Round(rate*100) / 100
	}
	return s
}
