package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EngineConfig holds the runtime configuration for a mining engine
// instance: which SIMD tier to prefer, what port its HTTP service
// listens on, and which remote workers to shard nonce ranges out to.
type EngineConfig struct {
	PreferredTier string
	HTTPPort      int
	RemoteWorkers []string
}

var (
	engineConfig *EngineConfig
	configLoaded bool
)

// LoadEngineConfig loads configuration from a .env file found by
// walking up from the working directory to the module root, then
// applies environment variable overrides. The result is cached for the
// process lifetime.
func LoadEngineConfig() (*EngineConfig, error) {
	if engineConfig != nil && configLoaded {
		return engineConfig, nil
	}

	cfg := &EngineConfig{
		PreferredTier: "simd256",
		HTTPPort:      8545,
	}

	projectRoot := findProjectRoot()
	envPath := filepath.Join(projectRoot, ".env")

	if data, err := os.ReadFile(envPath); err == nil {
		parseEnvFile(string(data), cfg)
	}

	if tier := os.Getenv("ENGINE_TIER"); tier != "" {
		cfg.PreferredTier = tier
	}
	if port := os.Getenv("ENGINE_HTTP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.HTTPPort = p
		}
	}
	if workers := os.Getenv("ENGINE_REMOTE_WORKERS"); workers != "" {
		cfg.RemoteWorkers = splitAddrs(workers)
	}

	engineConfig = cfg
	configLoaded = true
	return cfg, nil
}

func parseEnvFile(content string, cfg *EngineConfig) {
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "ENGINE_TIER":
			cfg.PreferredTier = value
		case "ENGINE_HTTP_PORT":
			if p, err := strconv.Atoi(value); err == nil {
				cfg.HTTPPort = p
			}
		case "ENGINE_REMOTE_WORKERS":
			cfg.RemoteWorkers = splitAddrs(value)
		}
	}
}

func splitAddrs(value string) []string {
	var out []string
	for _, addr := range strings.Split(value, ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func findProjectRoot() string {
	cwd, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(cwd, ".env")); err == nil {
		return cwd
	}
	for {
		if _, err := os.Stat(filepath.Join(cwd, "go.mod")); err == nil {
			return cwd
		}
		parent := filepath.Dir(cwd)
		if parent == cwd {
			return cwd
		}
		cwd = parent
	}
}

// MustLoadEngineConfig loads configuration and panics if it cannot be
// produced at all — used by command entry points where a config is a
// hard prerequisite.
func MustLoadEngineConfig() *EngineConfig {
	cfg, err := LoadEngineConfig()
	if err != nil {
		panic("failed to load engine configuration: " + err.Error())
	}
	return cfg
}
