package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DotEnvPath returns the absolute path to scout's dotenv file (~/.scout/.env).
func DotEnvPath() (string, error) {
	dir, err := ScoutDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".env"), nil
}

// LoadDotEnv reads ~/.scout/.env and returns its key/value pairs. A missing
// file yields an empty map.
func LoadDotEnv() (map[string]string, error) {
	p, err := DotEnvPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("cannot stat dotenv file %s: %w", p, err)
	}
	m, err := godotenv.Read(p)
	if err != nil {
		return nil, fmt.Errorf("cannot read dotenv file %s: %w", p, err)
	}
	return m, nil
}

// GetConfigValue returns the effective value for key, using process environment variables
// first and falling back to ~/.scout/.env.
func GetConfigValue(key string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	dotenv, err := LoadDotEnv()
	if err != nil {
		return "", err
	}
	return dotenv[key], nil
}

// LogLevel resolves SCOUT_LOG_LEVEL (debug, info, warn, error). Unset means
// warn.
func LogLevel() (slog.Level, error) {
	v, err := GetConfigValue("SCOUT_LOG_LEVEL")
	if err != nil {
		return slog.LevelWarn, err
	}
	if strings.TrimSpace(v) == "" {
		return slog.LevelWarn, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid SCOUT_LOG_LEVEL %q: %w", v, err)
	}
	return lvl, nil
}

// EnsureDotEnvTemplate creates ~/.scout/.env if it does not already exist.
//
// The template lists the supported override keys with empty values.
func EnsureDotEnvTemplate() error {
	p, err := DotEnvPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(p); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("cannot stat dotenv file %s: %w", p, err)
	}

	body := "" +
		"SCOUT_CANDIDATES_PATH=\n" +
		"SCOUT_HISTORY_BACKEND=\n" +
		"SCOUT_HISTORY_PATH=\n" +
		"SCOUT_SERVER_ADDR=\n" +
		"SCOUT_LOG_LEVEL=\n"

	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		return fmt.Errorf("cannot write dotenv template %s: %w", p, err)
	}
	return nil
}
