package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderOpenAI   = "openai"
	ProviderGrok     = "grok"
	ProviderMoonshot = "moonshot"
	ProviderGemini   = "gemini"
)

type Config struct {
	Addr        string
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	LogLevel    string
	AllowOrigin []string

	UpstreamTimeout  time.Duration
	PortraitCacheTTL time.Duration
	StrictProfiles   bool
}

// Load reads the environment. A missing credential for the selected provider
// is an error: the service must not start without one.
func Load() (Config, error) {
	cfg := Config{
		Addr:             ":" + envOrDefault("PORT", "8000"),
		Provider:         strings.ToLower(envOrDefault("LLM_PROVIDER", ProviderOpenAI)),
		LogLevel:         strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
		AllowOrigin:      envList("CORS_ALLOW_ORIGINS", []string{"http://localhost:5173"}),
		UpstreamTimeout:  envDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		PortraitCacheTTL: envDuration("PORTRAIT_CACHE_TTL", time.Hour),
		StrictProfiles:   envBool("PROFILE_STRICT", false),
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		cfg.Model = envOrDefault("OPENAI_MODEL", "gpt-4o-mini")
		cfg.BaseURL = os.Getenv("OPENAI_BASE_URL")
	case ProviderGrok:
		cfg.APIKey = os.Getenv("GROK_API_KEY")
		cfg.Model = os.Getenv("GROK_MODEL")
	case ProviderMoonshot:
		cfg.APIKey = os.Getenv("MOONSHOT_API_KEY")
		cfg.Model = os.Getenv("MOONSHOT_MODEL")
	case ProviderGemini:
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		cfg.Model = os.Getenv("GEMINI_MODEL")
	default:
		return Config{}, fmt.Errorf("LLM_PROVIDER %q is not supported", cfg.Provider)
	}

	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("%s_API_KEY is required", strings.ToUpper(cfg.Provider))
	}
	if cfg.UpstreamTimeout <= 0 {
		return Config{}, fmt.Errorf("UPSTREAM_TIMEOUT must be > 0")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
