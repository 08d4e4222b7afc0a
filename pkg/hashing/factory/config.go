package factory

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// LoadConfigFromFile loads a HashMethodConfig (tier preference order plus
// per-tier overrides) from configPath. A missing file is not an error —
// it returns DefaultHashMethodConfig(), the same preference order
// NewHashMethodFactory(nil) falls back to.
func LoadConfigFromFile(configPath string) (*HashMethodConfig, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultHashMethodConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config HashMethodConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfigToFile persists config as indented JSON at configPath,
// creating any missing parent directory. cmd/cli's -save-config flag
// uses this to record a host's detected best tier so future runs skip
// re-probing cpuid.
func SaveConfigToFile(config *HashMethodConfig, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ConfigPaths lists the locations LoadConfigFromFile's callers check, in
// preference order: per-user, system-wide, then the two conventional
// working-directory names.
func ConfigPaths() []string {
	homeDir, _ := os.UserHomeDir()
	return []string{
		filepath.Join(homeDir, ".hasher", "config.json"),
		"/etc/hasher/config.json",
		"./hasher-config.json",
		"./config.json",
	}
}
