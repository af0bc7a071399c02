// Package config reads settings from the environment and an optional .env
// file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/sadopc/folio/internal/store"
)

type Config struct {
	DBPath           string
	SessionPath      string
	RedisURL         string
	DraftTTL         time.Duration
	AutosaveInterval time.Duration
	ExitBudget       time.Duration
	LogLevel         string
	LogFile          string
}

// Load merges envFile (when it exists) with the process environment. The
// environment wins.
func Load(envFile string) (Config, error) {
	env := map[string]string{}
	if envFile != "" {
		fileEnv, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read %s: %w", envFile, err)
		}
		for k, v := range fileEnv {
			env[k] = v
		}
	}
	for k, v := range Environ() {
		env[k] = v
	}
	return FromMap(env)
}

// FromMap builds a Config from key/value settings, applying defaults.
func FromMap(env map[string]string) (Config, error) {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		DBPath:           GetString(env, "FOLIO_DB_PATH", dbPath),
		SessionPath:      GetString(env, "FOLIO_SESSION_PATH", store.DefaultSessionPath()),
		RedisURL:         GetString(env, "FOLIO_REDIS_URL", ""),
		DraftTTL:         GetDuration(env, "FOLIO_DRAFT_TTL", 12*time.Hour),
		AutosaveInterval: GetDuration(env, "FOLIO_AUTOSAVE_INTERVAL", 120*time.Second),
		ExitBudget:       GetDuration(env, "FOLIO_EXIT_BUDGET", 250*time.Millisecond),
		LogLevel:         GetString(env, "FOLIO_LOG_LEVEL", "info"),
		LogFile:          GetString(env, "FOLIO_LOG_FILE", filepath.Join(filepath.Dir(dbPath), "folio.log")),
	}
	if cfg.AutosaveInterval <= 0 {
		return Config{}, fmt.Errorf("FOLIO_AUTOSAVE_INTERVAL must be positive, got %s", cfg.AutosaveInterval)
	}
	return cfg, nil
}

// Environ returns the process environment as a map.
func Environ() map[string]string {
	environ := os.Environ()
	m := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		key, value, _ := strings.Cut(entry, "=")
		m[key] = value
	}
	return m
}

func GetString(env map[string]string, key, def string) string {
	if v, ok := env[key]; ok && v != "" {
		return v
	}
	return def
}

func GetInt(env map[string]string, key string, def int) int {
	v, ok := env[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// GetDuration accepts Go durations ("90s") or a bare number of seconds.
func GetDuration(env map[string]string, key string, def time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n := GetInt(env, key, -1); n >= 0 {
		return time.Duration(n) * time.Second
	}
	return def
}
