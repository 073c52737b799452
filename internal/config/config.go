// Package config loads toolkit configuration from YAML with environment
// overrides and hot reload.
package config

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	cfg *Config
	mu  sync.RWMutex
)

// Config is the toolkit's runtime configuration.
type Config struct {
	Target TargetConfig `mapstructure:"target"`
	Runner RunnerConfig `mapstructure:"runner"`
	Server ServerConfig `mapstructure:"server"`
	Mock   MockConfig   `mapstructure:"mock"`
}

// TargetConfig identifies the API under test.
type TargetConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RunnerConfig controls suite execution.
type RunnerConfig struct {
	Parallelism  int    `mapstructure:"parallelism"`
	ReportPath   string `mapstructure:"report_path"`
	ContractsDir string `mapstructure:"contracts_dir"`
}

// ServerConfig is the demo API listener.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// MockConfig is the mock server listener.
type MockConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr renders the demo API listen address.
func (c ServerConfig) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// Addr renders the mock listen address.
func (c MockConfig) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func setDefaults(v *viper.Viper) {
	v.SetDefault("target.base_url", "http://localhost:8080")
	v.SetDefault("target.timeout", "5s")
	v.SetDefault("runner.parallelism", 1)
	v.SetDefault("runner.report_path", "contract-test-report.json")
	v.SetDefault("runner.contracts_dir", "")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("mock.host", "127.0.0.1")
	v.SetDefault("mock.port", 8081)
}

// Load reads configuration from configPath (optional), applies APIPACT_
// environment overrides, and watches the file for changes.
func Load(configPath string) error {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("APIPACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	newCfg := &Config{}
	if err := v.Unmarshal(newCfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	mu.Lock()
	cfg = newCfg
	mu.Unlock()

	if configPath != "" {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			log.Printf("config file changed: %s", e.Name)
			reloaded := &Config{}
			if err := v.Unmarshal(reloaded); err != nil {
				log.Printf("failed to reload config: %v", err)
				return
			}
			mu.Lock()
			cfg = reloaded
			mu.Unlock()
		})
	}

	return nil
}

// Get returns the current configuration, loading defaults if Load was
// never called.
func Get() *Config {
	mu.RLock()
	current := cfg
	mu.RUnlock()
	if current != nil {
		return current
	}

	// First use without an explicit Load: fall back to defaults plus
	// environment.
	if err := Load(""); err != nil {
		log.Printf("config load failed, using zero config: %v", err)
		return &Config{}
	}
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
