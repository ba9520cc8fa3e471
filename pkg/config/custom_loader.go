package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from one or more .env files. With no
// arguments it falls back to the default .env in the current working
// directory. Files are applied in order and later files override values set
// by earlier ones, which allows layering a base file with environment
// specific overrides.
//
// Example:
//
//	// Base settings plus local overrides, last file wins.
//	if err := config.LoadEnv(".env", ".env.local"); err != nil {
//	    log.Fatalf("loading env: %v", err)
//	}
func LoadEnv(paths ...string) error {
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnv, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics if any file cannot be loaded.
// Useful at startup where missing configuration should stop the process.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("Failed to load environment files: %v", err))
	}
}

// ResetCache drops all cached configuration values so the next Load parses
// the environment again. Intended for tests that mutate the process
// environment between loads.
func ResetCache() {
	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()

	globalCache.values = make(map[string]any)
	globalCache.onces = make(map[string]*sync.Once)
}

// ForceReloadConfig discards any cached value for the given configuration
// type and parses the environment again. Use it after changing environment
// variables at runtime, for example with t.Setenv in tests.
func ForceReloadConfig[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	typeName := getTypeName[T]()

	globalCache.mu.Lock()
	delete(globalCache.values, typeName)
	delete(globalCache.onces, typeName)
	globalCache.mu.Unlock()

	return Load(v)
}
