// Package config holds gate-agent runtime configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GATE_AGENT_USE_AZURE.
const EnvPrefix = "GATE_AGENT"

// Keys understood by Load. Flag names use the same spelling with dashes.
const (
	KeySettingsPath    = "settings_path"
	KeyUseAzure        = "use_azure"
	KeyStoreOnFile     = "store_on_file"
	KeyFixturesPath    = "fixtures_path"
	KeyMaxTurns        = "max_turns"
	KeyVerbose         = "verbose"
	KeyAzureAPIVersion = "azure_api_version"
	KeyOpenAIBaseURL   = "openai_base_url"
	KeyOAuthBaseURL    = "oauth_base_url"
	KeyWeatherBaseURL  = "weather_base_url"
	KeyHTTPTimeout     = "http_timeout"
)

const (
	DefaultSettingsPath    = "../config/settings.json"
	DefaultMaxTurns        = 10
	DefaultAzureAPIVersion = "2024-06-01"
	DefaultHTTPTimeout     = 30 * time.Second
)

// Config holds all runtime configuration for the agent.
type Config struct {
	SettingsPath string
	UseAzure     bool
	StoreOnFile  bool
	// FixturesPath is empty when the built-in reservation pool is used.
	FixturesPath string
	MaxTurns     int
	Verbose      bool

	AzureAPIVersion string
	OpenAIBaseURL   string
	OAuthBaseURL    string
	WeatherBaseURL  string
	HTTPTimeout     time.Duration
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		SettingsPath:    DefaultSettingsPath,
		UseAzure:        true,
		StoreOnFile:     true,
		MaxTurns:        DefaultMaxTurns,
		AzureAPIVersion: DefaultAzureAPIVersion,
		HTTPTimeout:     DefaultHTTPTimeout,
	}
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.SettingsPath = strings.TrimSpace(cfg.SettingsPath)
	cfg.FixturesPath = strings.TrimSpace(cfg.FixturesPath)
	cfg.AzureAPIVersion = strings.TrimSpace(cfg.AzureAPIVersion)
	cfg.OpenAIBaseURL = strings.TrimSpace(cfg.OpenAIBaseURL)
	cfg.OAuthBaseURL = strings.TrimSpace(cfg.OAuthBaseURL)
	cfg.WeatherBaseURL = strings.TrimSpace(cfg.WeatherBaseURL)

	if cfg.SettingsPath == "" {
		cfg.SettingsPath = DefaultSettingsPath
	}
	if cfg.AzureAPIVersion == "" {
		cfg.AzureAPIVersion = DefaultAzureAPIVersion
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 1
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}
	return cfg
}

// SetDefaults registers DefaultConfig values on v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault(KeySettingsPath, d.SettingsPath)
	v.SetDefault(KeyUseAzure, d.UseAzure)
	v.SetDefault(KeyStoreOnFile, d.StoreOnFile)
	v.SetDefault(KeyFixturesPath, d.FixturesPath)
	v.SetDefault(KeyMaxTurns, d.MaxTurns)
	v.SetDefault(KeyVerbose, d.Verbose)
	v.SetDefault(KeyAzureAPIVersion, d.AzureAPIVersion)
	v.SetDefault(KeyOpenAIBaseURL, d.OpenAIBaseURL)
	v.SetDefault(KeyOAuthBaseURL, d.OAuthBaseURL)
	v.SetDefault(KeyWeatherBaseURL, d.WeatherBaseURL)
	v.SetDefault(KeyHTTPTimeout, d.HTTPTimeout)
}

// Load resolves configuration from, lowest first: defaults, the optional
// YAML file at configFile, a .env file in the working directory, GATE_AGENT_*
// environment variables and any flags already bound on v.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	_ = godotenv.Load()

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile = strings.TrimSpace(configFile); configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := Config{
		SettingsPath:    v.GetString(KeySettingsPath),
		UseAzure:        v.GetBool(KeyUseAzure),
		StoreOnFile:     v.GetBool(KeyStoreOnFile),
		FixturesPath:    v.GetString(KeyFixturesPath),
		MaxTurns:        v.GetInt(KeyMaxTurns),
		Verbose:         v.GetBool(KeyVerbose),
		AzureAPIVersion: v.GetString(KeyAzureAPIVersion),
		OpenAIBaseURL:   v.GetString(KeyOpenAIBaseURL),
		OAuthBaseURL:    v.GetString(KeyOAuthBaseURL),
		WeatherBaseURL:  v.GetString(KeyWeatherBaseURL),
		HTTPTimeout:     v.GetDuration(KeyHTTPTimeout),
	}
	return Normalize(cfg), nil
}
