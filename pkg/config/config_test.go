package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SettingsPath != "../config/settings.json" {
		t.Fatalf("unexpected settings path %q", cfg.SettingsPath)
	}
	if !cfg.UseAzure || !cfg.StoreOnFile {
		t.Fatalf("expected azure and store-on-file by default: %+v", cfg)
	}
	if cfg.MaxTurns != 10 || cfg.HTTPTimeout != 30*time.Second || cfg.AzureAPIVersion != "2024-06-01" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestNormalize(t *testing.T) {
	cfg := Normalize(Config{
		SettingsPath:  "  ",
		OpenAIBaseURL: " http://localhost:8080/v1 ",
		MaxTurns:      -3,
	})
	if cfg.SettingsPath != DefaultSettingsPath {
		t.Fatalf("settings path = %q", cfg.SettingsPath)
	}
	if cfg.OpenAIBaseURL != "http://localhost:8080/v1" {
		t.Fatalf("base url = %q", cfg.OpenAIBaseURL)
	}
	if cfg.MaxTurns != 1 {
		t.Fatalf("max turns = %d", cfg.MaxTurns)
	}
	if cfg.HTTPTimeout != DefaultHTTPTimeout || cfg.AzureAPIVersion != DefaultAzureAPIVersion {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	configFile := filepath.Join(dir, "gate-agent.yaml")
	content := "settings_path: /tmp/from-file.json\nmax_turns: 4\nuse_azure: false\nhttp_timeout: 5s\n"
	if err := os.WriteFile(configFile, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GATE_AGENT_WEATHER_BASE_URL=http://weather.local\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("GATE_AGENT_MAX_TURNS", "7")
	// Restored on cleanup after godotenv sets it from .env.
	t.Setenv("GATE_AGENT_WEATHER_BASE_URL", "")
	os.Unsetenv("GATE_AGENT_WEATHER_BASE_URL")

	cfg, err := Load(viper.New(), configFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SettingsPath != "/tmp/from-file.json" {
		t.Fatalf("settings path = %q", cfg.SettingsPath)
	}
	if cfg.UseAzure {
		t.Fatal("expected use_azure from file to be false")
	}
	if cfg.MaxTurns != 7 {
		t.Fatalf("env should override file, max turns = %d", cfg.MaxTurns)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("http timeout = %v", cfg.HTTPTimeout)
	}
	if cfg.WeatherBaseURL != "http://weather.local" {
		t.Fatalf("weather base url from .env = %q", cfg.WeatherBaseURL)
	}
}

func TestLoadExplicitValueOverridesEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GATE_AGENT_SETTINGS_PATH", "/from/env.json")

	v := viper.New()
	v.Set(KeySettingsPath, "/from/flag.json")
	cfg, err := Load(v, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SettingsPath != "/from/flag.json" {
		t.Fatalf("settings path = %q", cfg.SettingsPath)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
