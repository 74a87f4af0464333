package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// LoadEnv loads variables from a .env file if one exists. Real
// deployments set the environment directly, so a missing file is fine.
func LoadEnv() {
	loadOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// Getenv returns the value of key, or fallback when unset.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
