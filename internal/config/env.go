package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables consulted by LoadEnv.
const (
	EnvDir        = "SHOTREDACT_DIR"
	EnvMode       = "SHOTREDACT_MODE"
	EnvBoxPolicy  = "SHOTREDACT_BOX_POLICY"
	EnvBlurRadius = "SHOTREDACT_BLUR_RADIUS"
)

// LoadEnv builds a FileConfig from SHOTREDACT_* variables. Values from a
// .env file in root are used when the variable is not set in the process
// environment.
func LoadEnv(root string) (FileConfig, error) {
	dotenv, err := godotenv.Read(filepath.Join(root, ".env"))
	if err != nil {
		dotenv = map[string]string{}
	}
	get := func(k string) string {
		if v, ok := os.LookupEnv(k); ok {
			return v
		}
		return dotenv[k]
	}

	var cfg FileConfig
	if v := get(EnvDir); v != "" {
		cfg.Dir = &v
	}
	if v := get(EnvMode); v != "" {
		cfg.Mode = &v
	}
	if v := get(EnvBoxPolicy); v != "" {
		cfg.BoxPolicy = &v
	}
	if v := get(EnvBlurRadius); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, err
		}
		cfg.BlurRadius = &r
	}
	return cfg, cfg.Validate()
}
