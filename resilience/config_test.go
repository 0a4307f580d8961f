package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/jonwraymond/depline/secret"
)

type stubSecretProvider struct {
	name   string
	values map[string]string
}

func (s *stubSecretProvider) Name() string { return s.name }

func (s *stubSecretProvider) Resolve(_ context.Context, ref string) (string, error) {
	return s.values[ref], nil
}

func (s *stubSecretProvider) Close() error { return nil }

const sampleConfig = `
api:
  endpoints:
    movies:
      uri: "https://movies.example.com"
      timeout: "2s"
      failureThreshold: 0.5
      failureSamplingDuration: "30s"
      failureMinimumThroughput: 4
      failureBreakDuration: "15s"
      retries: 2
      retryDelaySeed: "200ms"
      retryDelayMaximum: "10s"
      rateLimit: 50
      rateLimitPeriod: "1s"
      isolate: false
`

func TestParseConfig_ParsesHierarchicalDocument(t *testing.T) {
	configs, err := ParseConfig([]byte(sampleConfig), nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	cfg, ok := configs["movies"]
	if !ok {
		t.Fatal("expected a movies endpoint config")
	}

	if cfg.URI != "https://movies.example.com" {
		t.Errorf("URI = %q, want %q", cfg.URI, "https://movies.example.com")
	}
	if cfg.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", cfg.Timeout)
	}
	if cfg.FailureMinimumThroughput != 4 {
		t.Errorf("FailureMinimumThroughput = %d, want 4", cfg.FailureMinimumThroughput)
	}
	if cfg.RetryDelayMaximum != 10*time.Second {
		t.Errorf("RetryDelayMaximum = %v, want 10s", cfg.RetryDelayMaximum)
	}
	if cfg.RateLimit != 50 {
		t.Errorf("RateLimit = %v, want 50", cfg.RateLimit)
	}
}

func TestParseConfig_InvalidYAMLErrors(t *testing.T) {
	_, err := ParseConfig([]byte("not: valid: yaml: ["), nil)
	if err == nil {
		t.Fatal("ParseConfig() error = nil, want error for malformed YAML")
	}
}

func TestParseConfig_InvalidDurationErrors(t *testing.T) {
	bad := `
api:
  endpoints:
    movies:
      timeout: "not-a-duration"
`
	_, err := ParseConfig([]byte(bad), nil)
	if err == nil {
		t.Fatal("ParseConfig() error = nil, want error for invalid duration")
	}
}

func TestParseConfig_EmptyDocumentYieldsNoEndpoints(t *testing.T) {
	configs, err := ParseConfig([]byte(""), nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if len(configs) != 0 {
		t.Errorf("len(configs) = %d, want 0", len(configs))
	}
}

func TestParseConfig_ResolvesSecretRefInURI(t *testing.T) {
	withRef := `
api:
  endpoints:
    movies:
      uri: "secretref:vault:movies-uri"
      timeout: "2s"
      retries: 1
`
	resolver := secret.NewResolver(true, &stubSecretProvider{
		name:   "vault",
		values: map[string]string{"movies-uri": "https://movies.internal.example.com"},
	})

	configs, err := ParseConfig([]byte(withRef), resolver)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	cfg, ok := configs["movies"]
	if !ok {
		t.Fatal("expected a movies endpoint config")
	}
	if cfg.URI != "https://movies.internal.example.com" {
		t.Errorf("URI = %q, want resolved secret value", cfg.URI)
	}
}

func TestParseConfig_UnregisteredProviderErrors(t *testing.T) {
	withRef := `
api:
  endpoints:
    movies:
      uri: "secretref:vault:movies-uri"
`
	resolver := secret.NewResolver(true)

	_, err := ParseConfig([]byte(withRef), resolver)
	if err == nil {
		t.Fatal("ParseConfig() error = nil, want error for unregistered provider")
	}
}

func TestFileConfigSource_MissingFileErrors(t *testing.T) {
	src := NewFileConfigSource("/nonexistent/path/endpoints.yaml", nil)
	_, err := src.Snapshot()
	if err == nil {
		t.Fatal("Snapshot() error = nil, want error for missing file")
	}
}
