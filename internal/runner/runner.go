package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/apipact-io/apipact/internal/contract"
	"github.com/apipact-io/apipact/internal/metrics"
	"github.com/apipact-io/apipact/internal/schema"
)

// Runner exercises live endpoints against their contracts. Each Run is
// independent; the runner only accumulates an append-only history of
// results for later inspection.
type Runner struct {
	baseURL   string
	client    Client
	validator *schema.Validator
	generator *schema.Generator

	// Parallelism bounds concurrent RunAll dispatch; values below 2 mean
	// sequential execution.
	Parallelism int

	mu      sync.Mutex
	history []Result
}

// New creates a runner targeting baseURL through the given client.
func New(baseURL string, client Client) *Runner {
	return &Runner{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		client:    client,
		validator: schema.NewValidator(),
		generator: schema.NewGenerator(),
	}
}

// Run tests a single contract. It never panics or returns an error past its
// boundary: every failure mode becomes a recorded check on the result.
//
// A transport failure short-circuits the run with a single "request" check.
// All other checks run to completion so one result can report every
// discrepancy at once.
func (r *Runner) Run(ctx context.Context, c *contract.Contract) (result Result) {
	start := time.Now()
	result = Result{
		Contract: c.Name,
		Method:   c.Method,
		Path:     c.Path,
		Passed:   true,
	}
	defer func() {
		result.Duration = time.Since(start)
		metrics.ContractsRun.Inc()
		if !result.Passed {
			metrics.ContractsFailed.Inc()
		}
		r.mu.Lock()
		r.history = append(r.history, result)
		r.mu.Unlock()
	}()

	url := r.baseURL + c.Path

	var body any
	if c.Method == "POST" && c.RequestSchema != nil {
		body = r.generator.Generate(c.RequestSchema)
	}

	resp, err := r.client.Do(ctx, c.Method, url, body)
	if err != nil {
		result.addCheck(Check{
			Kind:   CheckRequest,
			Passed: false,
			Error:  err.Error(),
		})
		return result
	}

	result.addCheck(Check{
		Kind:     CheckStatusCode,
		Passed:   resp.StatusCode == c.ExpectedStatus,
		Expected: c.ExpectedStatus,
		Actual:   resp.StatusCode,
	})

	if c.ResponseSchema != nil && resp.StatusCode < 400 {
		result.addCheck(r.checkResponseSchema(resp.Body, c.ResponseSchema))
	}

	for _, header := range sortedHeaderNames(c.Headers) {
		expected := c.Headers[header]
		actual := resp.Headers.Get(header)
		check := Check{
			Kind:     CheckHeader,
			Passed:   actual == expected,
			Expected: expected,
			Actual:   actual,
		}
		if actual == "" {
			check.Error = fmt.Sprintf("missing header %q", header)
		} else if actual != expected {
			check.Error = fmt.Sprintf("header %q mismatch", header)
		}
		result.addCheck(check)
	}

	return result
}

// checkResponseSchema parses the body as JSON and validates it. A parse
// failure is itself a failing schema check, not a fault.
func (r *Runner) checkResponseSchema(body []byte, s *schema.Schema) Check {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return Check{
			Kind:   CheckResponseSchema,
			Passed: false,
			Error:  fmt.Sprintf("response is not valid JSON: %v", err),
		}
	}

	validation, err := r.validator.Validate(value, s)
	if err != nil {
		// A malformed contract schema is a definition bug; surface it on
		// the check rather than aborting the suite.
		return Check{Kind: CheckResponseSchema, Passed: false, Error: err.Error()}
	}

	check := Check{Kind: CheckResponseSchema, Passed: validation.Valid}
	if !validation.Valid {
		check.Error = validation.FirstError()
		metrics.SchemaViolations.Add(float64(len(validation.Errors)))
	}
	return check
}

// RunAll tests every contract, preserving input order. No contract's
// outcome affects another's execution; the aggregate counts are computed
// only after every run has completed.
func (r *Runner) RunAll(ctx context.Context, contracts []*contract.Contract) Summary {
	results := make([]Result, len(contracts))

	if r.Parallelism > 1 {
		sem := make(chan struct{}, r.Parallelism)
		var wg sync.WaitGroup
		for i, c := range contracts {
			wg.Add(1)
			go func(i int, c *contract.Contract) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				results[i] = r.Run(ctx, c)
			}(i, c)
		}
		wg.Wait()
	} else {
		for i, c := range contracts {
			results[i] = r.Run(ctx, c)
		}
	}

	return summarize(uuid.NewString(), results)
}

// History returns a copy of every result this runner has recorded.
func (r *Runner) History() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Result, len(r.history))
	copy(out, r.history)
	return out
}

func sortedHeaderNames(headers map[string]string) []string {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
