package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apipact-io/apipact/internal/api"
	"github.com/apipact-io/apipact/internal/config"
	"github.com/apipact-io/apipact/internal/contract"
	"github.com/apipact-io/apipact/internal/docs"
	"github.com/apipact-io/apipact/internal/mock"
	"github.com/apipact-io/apipact/internal/runner"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "apipact",
	Short: "apipact - contract testing toolkit for HTTP JSON APIs",
	Long: `apipact lets providers and consumers agree on request/response shapes
and verifies at runtime that a live API honors them.

It bundles a schema validator, a sample data generator, a contract test
runner, a documentation validator, an OpenAPI exporter and a mock server.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var (
	configPathFlag   string
	baseURLFlag      string
	contractsDirFlag string
	reportPathFlag   string
	parallelismFlag  int
	outputPathFlag   string
	noSeedFlag       bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run the contract suite against a live API",
	Long: `Verify loads contracts (from YAML documents when --contracts is given,
otherwise the built-in user/order contracts) and tests each one against the
target API: status code, response schema and expected headers. The suite
summary is printed and saved as JSON for CI.`,
	RunE: runVerify,
}

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Serve canned responses for consumer testing",
	RunE:  runMock,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the demo provider API",
	RunE:  runServe,
}

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Export the registered contracts as an OpenAPI document",
	RunE:  runOpenAPI,
}

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Validate a live API against its documentation",
	RunE:  runDocs,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Path to config YAML")

	verifyCmd.Flags().StringVar(&baseURLFlag, "base-url", "", "Base URL of the API under test")
	verifyCmd.Flags().StringVar(&contractsDirFlag, "contracts", "", "Directory of contract YAML documents")
	verifyCmd.Flags().StringVar(&reportPathFlag, "report", "", "Path for the JSON report")
	verifyCmd.Flags().IntVar(&parallelismFlag, "parallelism", 0, "Max contracts tested concurrently")

	docsCmd.Flags().StringVar(&baseURLFlag, "base-url", "", "Base URL of the API under test")

	serveCmd.Flags().BoolVar(&noSeedFlag, "no-seed", false, "Start with an empty store")

	openapiCmd.Flags().StringVar(&contractsDirFlag, "contracts", "", "Directory of contract YAML documents")
	openapiCmd.Flags().StringVar(&outputPathFlag, "output", "openapi.json", "Output path (.json or .yaml)")

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(openapiCmd)
	rootCmd.AddCommand(docsCmd)
}

func loadConfig() (*config.Config, error) {
	if err := config.Load(configPathFlag); err != nil {
		return nil, err
	}
	return config.Get(), nil
}

func loadContracts(cfg *config.Config) ([]*contract.Contract, error) {
	dir := contractsDirFlag
	if dir == "" {
		dir = cfg.Runner.ContractsDir
	}
	if dir == "" {
		return contract.DefaultRegistry().All(), nil
	}
	registry, err := contract.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	return registry.All(), nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	baseURL := baseURLFlag
	if baseURL == "" {
		baseURL = cfg.Target.BaseURL
	}
	reportPath := reportPathFlag
	if reportPath == "" {
		reportPath = cfg.Runner.ReportPath
	}

	contracts, err := loadContracts(cfg)
	if err != nil {
		return err
	}

	r := runner.New(baseURL, runner.NewHTTPClient(cfg.Target.Timeout))
	r.Parallelism = cfg.Runner.Parallelism
	if parallelismFlag > 0 {
		r.Parallelism = parallelismFlag
	}

	fmt.Printf("Testing %d contract(s) against %s\n", len(contracts), baseURL)
	summary := r.RunAll(context.Background(), contracts)

	runner.PrintReport(os.Stdout, summary)
	if reportPath != "" {
		if err := runner.SaveReport(reportPath, summary); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save report: %v\n", err)
		}
	}

	if summary.Failed > 0 {
		os.Exit(1)
	}
	return nil
}

func runMock(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	server := mock.NewUserServer()
	fmt.Printf("Mock server %s listening on %s\n", server.Name, cfg.Mock.Addr())
	return server.Run(cfg.Mock.Addr())
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	server := api.NewServer(api.NewMemoryStore())
	if !noSeedFlag {
		server.Seed()
	}
	return server.Run(cfg.Server.Addr())
}

func runOpenAPI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	contracts, err := loadContracts(cfg)
	if err != nil {
		return err
	}

	generator := docs.NewOpenAPIGenerator("apipact contracts", "1.0.0", "Contracts registered with apipact")
	for _, c := range contracts {
		generator.AddContract(c)
	}

	if err := generator.WriteFile(outputPathFlag); err != nil {
		return err
	}
	fmt.Printf("OpenAPI document written to %s\n", outputPathFlag)
	return nil
}

func runDocs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	baseURL := baseURLFlag
	if baseURL == "" {
		baseURL = cfg.Target.BaseURL
	}

	spec := docs.SampleSpecification(baseURL)
	validator := docs.NewValidator(baseURL, runner.NewHTTPClient(cfg.Target.Timeout))
	summary := validator.ValidateAll(context.Background(), spec)

	runner.PrintReport(os.Stdout, summary)
	if summary.Failed > 0 {
		os.Exit(1)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
