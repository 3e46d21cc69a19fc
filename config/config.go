// Package config loads server settings from a .env file and RTRIE_* environment variables.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rohanthewiz/serr"
)

const (
	EnvAddress     = "RTRIE_ADDRESS"
	EnvEngine      = "RTRIE_ENGINE"
	EnvLogLevel    = "RTRIE_LOG_LEVEL"
	EnvVerbose     = "RTRIE_VERBOSE"
	EnvMetrics     = "RTRIE_METRICS"
	EnvMetricsAddr = "RTRIE_METRICS_ADDRESS"
	EnvRateLimit   = "RTRIE_RATE_LIMIT"
	EnvRateBurst   = "RTRIE_RATE_BURST"
	EnvReadTimeout = "RTRIE_READ_TIMEOUT"
)

// Engines the CLI can serve with.
const (
	EngineRaw = "raw" // the built-in HTTP/1.1 listener
	EngineStd = "std" // net/http with the router as handler
)

// Config holds everything the server process needs at startup.
type Config struct {
	Address     string
	Engine      string
	LogLevel    string
	Verbose     bool
	Metrics     bool
	MetricsAddr string // separate /metrics listener for the raw engine
	RateLimit   float64 // requests per second per remote address; 0 disables
	RateBurst   int
	ReadTimeout time.Duration
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Address:     ":8080",
		Engine:      EngineRaw,
		LogLevel:    "INFO",
		Metrics:     true,
		MetricsAddr: ":9090",
		RateBurst:   20,
		ReadTimeout: 10 * time.Second,
	}
}

// Load reads the given .env files (".env" when none are named) into the
// process environment and builds a Config from it. Missing files are fine.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, serr.Wrap(err, "file", file)
		}
	}

	return FromEnv()
}

// FromEnv builds a Config from the current environment over the defaults.
func FromEnv() (Config, error) {
	def := Default()

	cfg := Config{
		Address:     EnvVarOrString(EnvAddress, def.Address),
		Engine:      strings.ToLower(EnvVarOrString(EnvEngine, def.Engine)),
		LogLevel:    EnvVarOrString(EnvLogLevel, def.LogLevel),
		Verbose:     EnvVarOrBool(EnvVerbose, def.Verbose),
		Metrics:     EnvVarOrBool(EnvMetrics, def.Metrics),
		MetricsAddr: EnvVarOrString(EnvMetricsAddr, def.MetricsAddr),
		RateLimit:   EnvVarOrFloat(EnvRateLimit, def.RateLimit),
		RateBurst:   EnvVarOrInt(EnvRateBurst, def.RateBurst),
		ReadTimeout: EnvVarOrDuration(EnvReadTimeout, def.ReadTimeout),
	}

	return cfg, cfg.Validate()
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Engine {
	case EngineRaw, EngineStd:
	default:
		return serr.New("unknown engine", "engine", c.Engine)
	}

	if c.RateLimit < 0 {
		return serr.New("rate limit must not be negative")
	}

	return nil
}

// EnvVarOrString gets the environment variable for the provided key
// or returns the provided default when it is unset or empty.
func EnvVarOrString(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

// EnvVarOrBool gets the environment variable for the provided key and
// parses "true"/"false", returning def for anything else.
func EnvVarOrBool(key string, def bool) bool {
	val := os.Getenv(key)
	if strings.ToLower(val) == "true" {
		return true
	}

	if strings.ToLower(val) == "false" {
		return false
	}

	return def
}

// EnvVarOrInt gets the environment variable for the provided key as an int.
func EnvVarOrInt(key string, def int) int {
	val, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}

	return val
}

// EnvVarOrFloat gets the environment variable for the provided key as a float64.
func EnvVarOrFloat(key string, def float64) float64 {
	val, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return def
	}

	return val
}

// EnvVarOrDuration gets the environment variable for the provided key as a time.Duration.
func EnvVarOrDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return d
}
