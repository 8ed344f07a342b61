package model

import "time"

// Config holds all briefcheck configuration
type Config struct {
	Provider     ProviderConfig     `yaml:"provider"`
	Jurisdiction JurisdictionConfig `yaml:"jurisdiction"`
	Cache        CacheConfig        `yaml:"cache"`
	Batch        BatchConfig        `yaml:"batch"`
	Web          WebConfig          `yaml:"web"`
	Output       OutputConfig       `yaml:"output"`
	LLM          LLMConfig          `yaml:"llm"`
}

// ProviderConfig configures the external case-law lookup service
type ProviderConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Token        string        `yaml:"token,omitempty"`
	Timeout      time.Duration `yaml:"timeout"`
	RequestDelay time.Duration `yaml:"request_delay"` // Enforced between consecutive calls
	MaxResults   int           `yaml:"max_results"`   // Search results examined per query

	// Proxy settings
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty"`
}

// JurisdictionConfig is the injected home jurisdiction assumed when the
// document header identifies no court. A policy choice, not a law-derived
// fact. It varies between deployments.
type JurisdictionConfig struct {
	HomeState   string `yaml:"home_state"`
	HomeCircuit string `yaml:"home_circuit"`
}

// CacheConfig configures the in-memory lookup response cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// BatchConfig configures multi-brief batch runs
type BatchConfig struct {
	Workers int `yaml:"workers"` // Briefs analyzed concurrently; provider calls stay globally throttled
}

// WebConfig configures the web server
type WebConfig struct {
	Addr          string        `yaml:"addr"`
	JobTTL        time.Duration `yaml:"job_ttl"`        // Finished jobs are dropped after this
	MaxUploadSize int64         `yaml:"max_upload_size"`
}

// OutputConfig controls reporting behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
	Color   bool `yaml:"color"`
}

// LLMConfig configures the optional report summarizer
type LLMConfig struct {
	Provider  string `yaml:"provider,omitempty"` // openai, anthropic, ollama, "" (disabled)
	Model     string `yaml:"model,omitempty"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// DefaultConfig returns the standard configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			BaseURL:      "https://www.courtlistener.com/api/rest/v4",
			Timeout:      30 * time.Second,
			RequestDelay: 1100 * time.Millisecond, // Stays under 60 requests per minute
			MaxResults:   10,
		},
		Jurisdiction: JurisdictionConfig{
			HomeState:   "Florida",
			HomeCircuit: "Eleventh Circuit",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Batch: BatchConfig{
			Workers: 2,
		},
		Web: WebConfig{
			Addr:          ":5000",
			JobTTL:        time.Hour,
			MaxUploadSize: 10 << 20,
		},
		Output: OutputConfig{
			Verbose: false,
			Color:   true,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}
