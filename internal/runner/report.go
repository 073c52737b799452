package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// PrintReport writes a human-readable suite report to w.
func PrintReport(w io.Writer, s Summary) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 60))
	fmt.Fprintln(w, "                 CONTRACT TEST REPORT")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Run ID: %s\n", s.RunID)
	fmt.Fprintf(w, "Timestamp: %s\n", s.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Total: %d\n", s.Total)
	fmt.Fprintf(w, "Passed: %d\n", s.Passed)
	fmt.Fprintf(w, "Failed: %d\n", s.Failed)
	fmt.Fprintf(w, "Success Rate: %.2f%%\n", s.SuccessRate)
	fmt.Fprintln(w, strings.Repeat("-", 60))

	for _, result := range s.Results {
		status := "PASS"
		if !result.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(w, "[%s] %s %s (%s)\n", status, result.Method, result.Path, result.Contract)

		for _, check := range result.Checks {
			if check.Passed {
				continue
			}
			if check.Error != "" {
				fmt.Fprintf(w, "       %s: %s\n", check.Kind, check.Error)
			} else {
				fmt.Fprintf(w, "       %s: expected %v, got %v\n", check.Kind, check.Expected, check.Actual)
			}
		}
	}

	fmt.Fprintln(w, strings.Repeat("=", 60))
	if s.Failed > 0 {
		fmt.Fprintf(w, "\n%d contract(s) failed\n", s.Failed)
	} else {
		fmt.Fprintln(w, "\nAll contracts passed")
	}
}

// SaveReport writes the summary as indented JSON for CI consumption.
func SaveReport(path string, s Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
