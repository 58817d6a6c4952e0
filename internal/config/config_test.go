package config

import "testing"

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_NegativeDB(t *testing.T) {
	cfg := validConfig()
	cfg.Database.DB = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative db")
	}
}

func TestValidate_DefaultPageSizeAboveMax(t *testing.T) {
	cfg := validConfig()
	cfg.Search.DefaultPageSize = 200
	cfg.Search.MaxPageSize = 100

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for default page size above max")
	}
	expected := "search.default_page_size (200) must not exceed search.max_page_size (100)"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_BlankAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.APIKeys = []string{"secret", "  "}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for blank api key")
	}
	if err.Error() != "auth.api_keys[1] must not be blank" {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "warn"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Logging.Level = "chatty"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Search.IndexName != "products_idx" {
		t.Errorf("expected IndexName='products_idx', got %q", cfg.Search.IndexName)
	}
	if cfg.Search.KeyPrefix != "shopdex:product:" {
		t.Errorf("expected KeyPrefix='shopdex:product:', got %q", cfg.Search.KeyPrefix)
	}
	if cfg.Search.DefaultPageSize != 10 {
		t.Errorf("expected DefaultPageSize=10, got %d", cfg.Search.DefaultPageSize)
	}
	if cfg.Search.MaxPageSize != 100 {
		t.Errorf("expected MaxPageSize=100, got %d", cfg.Search.MaxPageSize)
	}
	if cfg.Search.MaxListSize != 1000 {
		t.Errorf("expected MaxListSize=1000, got %d", cfg.Search.MaxListSize)
	}
	if cfg.Search.MaxBatchSize != 500 {
		t.Errorf("expected MaxBatchSize=500, got %d", cfg.Search.MaxBatchSize)
	}
	if cfg.Search.SuggestionLimit != 10 {
		t.Errorf("expected SuggestionLimit=10, got %d", cfg.Search.SuggestionLimit)
	}
	if cfg.Search.TermsSize != 10 {
		t.Errorf("expected TermsSize=10, got %d", cfg.Search.TermsSize)
	}
	if cfg.Search.PriceInterval != 50 {
		t.Errorf("expected PriceInterval=50, got %v", cfg.Search.PriceInterval)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{ReadinessTimeout: 15},
		Search: SearchConfig{
			IndexName: "catalog", KeyPrefix: "custom:", DefaultPageSize: 25,
			MaxPageSize: 50, MaxBatchSize: 20, PriceInterval: 100,
		},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Search.IndexName != "catalog" {
		t.Errorf("expected IndexName='catalog', got %q", cfg.Search.IndexName)
	}
	if cfg.Search.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Search.KeyPrefix)
	}
	if cfg.Search.DefaultPageSize != 25 {
		t.Errorf("expected DefaultPageSize=25, got %d", cfg.Search.DefaultPageSize)
	}
	if cfg.Search.PriceInterval != 100 {
		t.Errorf("expected PriceInterval=100, got %v", cfg.Search.PriceInterval)
	}
}

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("SHOPDEX_TEST_PORT", "9090")
	t.Setenv("SHOPDEX_TEST_PASSWORD", "")

	data := []byte(`
http:
  port: ${SHOPDEX_TEST_PORT}
database:
  addrs: ["${SHOPDEX_TEST_ADDR:-localhost:6379}"]
  password: "${SHOPDEX_TEST_PASSWORD:-fallback}"
search:
  index_name: catalog
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected Port=9090, got %d", cfg.HTTP.Port)
	}
	if len(cfg.Database.Addrs) != 1 || cfg.Database.Addrs[0] != "localhost:6379" {
		t.Errorf("expected default addr, got %v", cfg.Database.Addrs)
	}
	if cfg.Database.Password != "fallback" {
		t.Errorf("expected Password='fallback', got %q", cfg.Database.Password)
	}
	if cfg.Search.IndexName != "catalog" {
		t.Errorf("expected IndexName='catalog', got %q", cfg.Search.IndexName)
	}
	if cfg.Search.MaxPageSize != 100 {
		t.Errorf("expected defaults applied, got MaxPageSize=%d", cfg.Search.MaxPageSize)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Parse([]byte("http:\n  port: 8080\n")); err == nil {
		t.Fatal("expected validation error for missing addrs")
	}
}

func TestLoad_LocalFile(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port == 0 {
		t.Error("expected port from local.yaml")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
