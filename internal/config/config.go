package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	// HeadersDir holds one <version>.csv header definition per filing spec
	// version.
	HeadersDir string
	// FieldsPath optionally overrides the built-in canonical field table
	// with a YAML one.
	FieldsPath string
	DBPath     string
	OutputDir  string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		HeadersDir: getEnv("FEC_HEADERS_DIR", filepath.Join(cwd, "data", "headers")),
		FieldsPath: getEnv("FEC_FIELDS_PATH", ""),
		DBPath:     getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir:  getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
