package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the application configuration, loaded from config.toml beside
// the executable.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Auth   AuthConfig   `toml:"auth"`
	Upload UploadConfig `toml:"upload"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig holds filesystem layout settings.
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// AuthConfig holds token-issuing settings.
type AuthConfig struct {
	Secret        string `toml:"secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
}

// UploadConfig bounds the upload/preview pipeline.
type UploadConfig struct {
	PreviewRows     int `toml:"preview_rows"`
	CacheTTLMinutes int `toml:"cache_ttl_minutes"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    8001,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Auth: AuthConfig{
			Secret:        "a_very_secret_key_for_development_only",
			TokenTTLHours: 24,
		},
		Upload: UploadConfig{
			PreviewRows:     50,
			CacheTTLMinutes: 60,
		},
	}
}

// GetExeDir returns the directory holding the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig reads config.toml next to the executable, falling back to
// defaults when the file is absent, then applies environment overrides.
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnvOverrides(config)

	return config, nil
}

func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.Auth.Secret = v
	}
	if v := os.Getenv("XERO_CONVERTER_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("XERO_CONVERTER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
		}
	}
}

// EnsureDataDir creates the data directory and its subdirectories, returning
// the resolved path.
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	for _, subdir := range []string{"uploads", "exports"} {
		if err := os.MkdirAll(filepath.Join(dataDir, subdir), 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}
