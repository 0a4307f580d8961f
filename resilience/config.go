package resilience

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/depline/secret"
)

// EndpointConfig is an immutable snapshot describing one dependency.
// Fields mirror the hierarchical `Api.Endpoints.<Name>.*` document; the YAML
// source reproduces that dotted hierarchy as nesting under api.endpoints.
type EndpointConfig struct {
	Name string `yaml:"-"`

	URI                      string        `yaml:"uri"`
	Timeout                  time.Duration `yaml:"timeout"`
	FailureThreshold         float64       `yaml:"failureThreshold"`
	FailureSamplingDuration  time.Duration `yaml:"failureSamplingDuration"`
	FailureMinimumThroughput int           `yaml:"failureMinimumThroughput"`
	FailureBreakDuration     time.Duration `yaml:"failureBreakDuration"`
	Retries                  int           `yaml:"retries"`
	RetryDelaySeed           time.Duration `yaml:"retryDelaySeed"`
	RetryDelayMaximum        time.Duration `yaml:"retryDelayMaximum"`
	RateLimit                float64       `yaml:"rateLimit"`
	RateLimitPeriod          time.Duration `yaml:"rateLimitPeriod"`
	Isolate                  bool          `yaml:"isolate"`
}

// rawDocument mirrors the yaml.v3 decode shape of the hierarchical
// api.endpoints.<name>.* document.
type rawDocument struct {
	API struct {
		Endpoints map[string]struct {
			URI                      string  `yaml:"uri"`
			Timeout                  string  `yaml:"timeout"`
			FailureThreshold         float64 `yaml:"failureThreshold"`
			FailureSamplingDuration  string  `yaml:"failureSamplingDuration"`
			FailureMinimumThroughput int     `yaml:"failureMinimumThroughput"`
			FailureBreakDuration     string  `yaml:"failureBreakDuration"`
			Retries                  int     `yaml:"retries"`
			RetryDelaySeed           string  `yaml:"retryDelaySeed"`
			RetryDelayMaximum        string  `yaml:"retryDelayMaximum"`
			RateLimit                float64 `yaml:"rateLimit"`
			RateLimitPeriod          string  `yaml:"rateLimitPeriod"`
			Isolate                  bool    `yaml:"isolate"`
		} `yaml:"endpoints"`
	} `yaml:"api"`
}

// ConfigSource abstracts a live, re-readable configuration source.
// Core.Reload calls Snapshot to obtain the
// latest endpoint configuration; there is no push channel, since reload is
// driven by the explicit Reload() operation, not by the source itself.
type ConfigSource interface {
	Snapshot() (map[string]EndpointConfig, error)
}

// FileConfigSource reads the hierarchical YAML document from a path on
// every Snapshot call, resolving `secretref:<provider>:<ref>` and
// environment-variable placeholders in string fields via resolver.
type FileConfigSource struct {
	Path     string
	Resolver *secret.Resolver
}

// NewFileConfigSource creates a FileConfigSource. resolver may be nil, in
// which case string fields only undergo strict environment expansion.
func NewFileConfigSource(path string, resolver *secret.Resolver) *FileConfigSource {
	return &FileConfigSource{Path: path, Resolver: resolver}
}

// Snapshot reads and parses the configuration document.
func (s *FileConfigSource) Snapshot() (map[string]EndpointConfig, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("depline: reading config %s: %w", s.Path, err)
	}
	return ParseConfig(data, s.Resolver)
}

// ParseConfig decodes a hierarchical YAML document into one EndpointConfig
// per name under api.endpoints, resolving secret references along the way.
func ParseConfig(data []byte, resolver *secret.Resolver) (map[string]EndpointConfig, error) {
	var doc rawDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("depline: parsing config: %w", err)
	}

	out := make(map[string]EndpointConfig, len(doc.API.Endpoints))
	for name, raw := range doc.API.Endpoints {
		uri, err := resolveValue(resolver, raw.URI)
		if err != nil {
			return nil, fmt.Errorf("depline: resolving uri for endpoint %s: %w", name, err)
		}

		cfg := EndpointConfig{
			Name:                     name,
			URI:                      uri,
			FailureThreshold:         raw.FailureThreshold,
			FailureMinimumThroughput: raw.FailureMinimumThroughput,
			Retries:                  raw.Retries,
			RateLimit:                raw.RateLimit,
			Isolate:                  raw.Isolate,
		}

		durations := []struct {
			src  string
			dest *time.Duration
		}{
			{raw.Timeout, &cfg.Timeout},
			{raw.FailureSamplingDuration, &cfg.FailureSamplingDuration},
			{raw.FailureBreakDuration, &cfg.FailureBreakDuration},
			{raw.RetryDelaySeed, &cfg.RetryDelaySeed},
			{raw.RetryDelayMaximum, &cfg.RetryDelayMaximum},
			{raw.RateLimitPeriod, &cfg.RateLimitPeriod},
		}
		for _, d := range durations {
			if d.src == "" {
				continue
			}
			parsed, err := time.ParseDuration(d.src)
			if err != nil {
				return nil, fmt.Errorf("depline: parsing duration for endpoint %s: %w", name, err)
			}
			*d.dest = parsed
		}

		out[name] = cfg
	}

	return out, nil
}

func resolveValue(resolver *secret.Resolver, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	return resolver.ResolveValue(context.Background(), value)
}
