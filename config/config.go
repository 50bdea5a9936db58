package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort           = "8080"
	defaultModels         = "gpt-4o-mini,gpt-3.5-turbo"
	defaultRateLimitRPS   = 1.0
	defaultRateLimitBurst = 5
	defaultRequestTimeout = 30 * time.Second

	// Hospital directory sources.
	SourceEmbedded  = "embedded"
	SourceFile      = "file"
	SourceFirestore = "firestore"
)

// Config holds settings required across the application. Cloud credentials
// (MAPS_CREDENTIALS, NATURAL_LANGUAGE_CREDENTIALS, FIREBASE_CREDENTIALS) are
// read by their client packages directly.
type Config struct {
	Port      string
	ClientURL string

	OpenAI    OpenAIConfig
	Hospitals HospitalsConfig
	RateLimit RateLimitConfig

	ModelProbeSchedule string
	RequestTimeout     time.Duration
}

// OpenAIConfig lists the chat models in fallback order.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Models  []string
}

// HospitalsConfig selects where the hospital directory is loaded from.
type HospitalsConfig struct {
	Source string
	File   string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Load reads .env (if present) and applies environment overrides to the defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file loaded: %v", err)
	}

	cfg := defaultConfig()
	cfg.applyEnvOverrides()
	return cfg
}

func defaultConfig() Config {
	return Config{
		Port: defaultPort,
		OpenAI: OpenAIConfig{
			Models: splitList(defaultModels),
		},
		Hospitals: HospitalsConfig{Source: SourceEmbedded},
		RateLimit: RateLimitConfig{
			RPS:   defaultRateLimitRPS,
			Burst: defaultRateLimitBurst,
		},
		RequestTimeout: defaultRequestTimeout,
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	c.ClientURL = os.Getenv("CLIENT_URL")

	c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	c.OpenAI.BaseURL = os.Getenv("OPENAI_BASE_URL")
	if v := os.Getenv("OPENAI_MODELS"); v != "" {
		c.OpenAI.Models = splitList(v)
	}

	if v := os.Getenv("HOSPITALS_SOURCE"); v != "" {
		switch v = strings.ToLower(v); v {
		case SourceEmbedded, SourceFile, SourceFirestore:
			c.Hospitals.Source = v
		default:
			log.Printf("config: unknown HOSPITALS_SOURCE %q, using %s", v, SourceEmbedded)
		}
	}
	c.Hospitals.File = os.Getenv("HOSPITALS_FILE")
	if c.Hospitals.Source == SourceFile && c.Hospitals.File == "" {
		log.Printf("config: HOSPITALS_SOURCE=file without HOSPITALS_FILE, using %s", SourceEmbedded)
		c.Hospitals.Source = SourceEmbedded
	}

	c.ModelProbeSchedule = os.Getenv("MODEL_PROBE_SCHEDULE")

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil && rps > 0 {
			c.RateLimit.RPS = rps
		} else {
			log.Printf("config: invalid RATE_LIMIT_RPS %q", v)
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if burst, err := strconv.Atoi(v); err == nil && burst > 0 {
			c.RateLimit.Burst = burst
		} else {
			log.Printf("config: invalid RATE_LIMIT_BURST %q", v)
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.RequestTimeout = time.Duration(secs) * time.Second
		} else {
			log.Printf("config: invalid REQUEST_TIMEOUT_SECONDS %q", v)
		}
	}
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
