package config

import (
	"testing"
)

func TestGetConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Setenv(EnvAPIKey, "test-api-key")
	t.Setenv(EnvDefaultModel, "")

	cfg, err := GetConfig()
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %s, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Provider.Model != "command-a-03-2025" {
		t.Errorf("Provider.Model = %s, want command-a-03-2025", cfg.Provider.Model)
	}
	if cfg.Provider.BaseURL != "https://api.cohere.com" {
		t.Errorf("Provider.BaseURL = %s, want https://api.cohere.com", cfg.Provider.BaseURL)
	}
	if cfg.Provider.TimeoutSeconds != 30 {
		t.Errorf("Provider.TimeoutSeconds = %d, want 30", cfg.Provider.TimeoutSeconds)
	}
	if cfg.Provider.APIKey != "test-api-key" {
		t.Errorf("Provider.APIKey = %s, want test-api-key", cfg.Provider.APIKey)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
	}
}

func TestGetConfig_MissingAPIKey(t *testing.T) {
	ResetConfig()
	t.Setenv(EnvAPIKey, "")
	t.Setenv("CHATGATE_PROVIDER_API_KEY", "")

	_, err := GetConfig()
	if err == nil {
		t.Fatal("expected error when api key is missing")
	}

	if !IsValidationError(err) {
		t.Fatalf("error is not a ValidationError: %v", err)
	}

	verr := err.(*ValidationError)
	if !verr.HasError("provider.api_key") {
		t.Errorf("missing api key not reported: %v", verr)
	}
}

func TestGetConfig_EnvModelOverride(t *testing.T) {
	ResetConfig()
	t.Setenv(EnvAPIKey, "test-api-key")
	t.Setenv(EnvDefaultModel, "command-r-plus")

	cfg, err := GetConfig()
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}

	if cfg.Provider.Model != "command-r-plus" {
		t.Errorf("Provider.Model = %s, want command-r-plus", cfg.Provider.Model)
	}
}

func TestGetConfig_Singleton(t *testing.T) {
	ResetConfig()
	t.Setenv(EnvAPIKey, "test-api-key")

	first, err := GetConfig()
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	second, err := GetConfig()
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if first != second {
		t.Error("GetConfig() returned different instances")
	}
}

func TestValidate(t *testing.T) {
	valid := Configuration{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Provider: ProviderConfig{
			APIKey:         "key",
			Model:          "command-test",
			BaseURL:        "https://api.cohere.com",
			TimeoutSeconds: 30,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}

	tests := []struct {
		name    string
		mutate  func(*Configuration)
		wantErr bool
	}{
		{"valid configuration", func(c *Configuration) {}, false},
		{"port zero", func(c *Configuration) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Configuration) { c.Server.Port = 70000 }, true},
		{"missing api key", func(c *Configuration) { c.Provider.APIKey = "" }, true},
		{"missing model", func(c *Configuration) { c.Provider.Model = "" }, true},
		{"missing base url", func(c *Configuration) { c.Provider.BaseURL = "" }, true},
		{"zero timeout", func(c *Configuration) { c.Provider.TimeoutSeconds = 0 }, true},
		{"bad log level", func(c *Configuration) { c.Logging.Level = "verbose" }, true},
		{"empty log level allowed", func(c *Configuration) { c.Logging.Level = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
