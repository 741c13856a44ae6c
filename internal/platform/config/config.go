package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr    string
	AppName string

	LogLevel  string
	LogFormat string

	// DBDSN vacío => repos in-memory (modo dev).
	DBDSN       string
	AutoMigrate bool

	// Catálogo YAML de vacunas a cargar al arrancar (opcional).
	SeedCatalog string

	Auth AuthConfig
}

// AuthConfig apunta al IAM remoto. Sin BaseURL se usa el modo dev (X-Debug-User-ID).
type AuthConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func (a AuthConfig) Enabled() bool {
	return a.BaseURL != "" && a.APIKey != ""
}

// Load lee la configuración del entorno. Si existe un .env en el directorio
// actual, se carga primero (sin pisar variables ya definidas).
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv construye la Config solo desde variables de entorno.
func FromEnv() (Config, error) {
	port := getenv("PORT", "8080")

	cfg := Config{
		Addr:        ":" + strings.TrimPrefix(port, ":"),
		AppName:     getenv("APP_NAME", "vaccination-card"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogFormat:   getenv("LOG_FORMAT", "text"),
		DBDSN:       strings.TrimSpace(os.Getenv("DB_DSN")),
		SeedCatalog: strings.TrimSpace(os.Getenv("SEED_CATALOG")),
		Auth: AuthConfig{
			BaseURL: strings.TrimSpace(os.Getenv("AUTH_BASE_URL")),
			APIKey:  strings.TrimSpace(os.Getenv("AUTH_API_KEY")),
		},
	}

	var err error
	if cfg.AutoMigrate, err = getenvBool("AUTO_MIGRATE", false); err != nil {
		return Config{}, err
	}
	if cfg.Auth.Timeout, err = getenvDuration("AUTH_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}

	if _, err := strconv.Atoi(strings.TrimPrefix(port, ":")); err != nil {
		return Config{}, fmt.Errorf("PORT must be numeric, got %q", port)
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration, got %q", key, v)
	}
	return d, nil
}
