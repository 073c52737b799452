package docs

import (
	"context"
	"fmt"
	"sort"

	"github.com/apipact-io/apipact/internal/contract"
	"github.com/apipact-io/apipact/internal/runner"
)

// Validator checks that a live API matches its documentation. Each
// documented endpoint is converted to a contract and driven through the
// shared contract runner, so the check semantics are identical to contract
// testing.
type Validator struct {
	runner *runner.Runner
}

// NewValidator creates a documentation validator that targets baseURL
// through the given client.
func NewValidator(baseURL string, client runner.Client) *Validator {
	return &Validator{runner: runner.New(baseURL, client)}
}

// ValidateEndpoint checks one documented operation against the live API.
func (v *Validator) ValidateEndpoint(ctx context.Context, spec *Specification, path, method string) (runner.Result, error) {
	endpoint, ok := spec.Endpoint(path, method)
	if !ok {
		return runner.Result{}, fmt.Errorf("no specification found for %s %s", method, path)
	}

	c, err := endpointContract(path, method, endpoint)
	if err != nil {
		return runner.Result{}, err
	}
	return v.runner.Run(ctx, c), nil
}

// ValidateAll checks every documented endpoint and aggregates the results.
// Endpoints are visited in sorted path/method order so reports are stable.
func (v *Validator) ValidateAll(ctx context.Context, spec *Specification) runner.Summary {
	var contracts []*contract.Contract

	paths := make([]string, 0, len(spec.Endpoints()))
	for path := range spec.Endpoints() {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		methods := make([]string, 0, len(spec.Endpoints()[path]))
		for method := range spec.Endpoints()[path] {
			methods = append(methods, method)
		}
		sort.Strings(methods)

		for _, method := range methods {
			c, err := endpointContract(path, method, spec.Endpoints()[path][method])
			if err != nil {
				// A spec entry that cannot form a contract is skipped the
				// same way a disabled contract file is.
				continue
			}
			contracts = append(contracts, c)
		}
	}

	return v.runner.RunAll(ctx, contracts)
}

func endpointContract(path, method string, spec EndpointSpec) (*contract.Contract, error) {
	return contract.NewBuilder(fmt.Sprintf("%s %s", method, path), method, path).
		WithDescription(spec.Description).
		WithRequestSchema(spec.RequestSchema).
		WithResponseSchema(spec.ResponseSchema).
		WithStatus(spec.StatusCode).
		Build()
}
