package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNilPointer indicates Load was called with a nil target.
	ErrNilPointer = errors.New("config.nil_pointer")
	// ErrParsingConfig indicates the environment could not be parsed
	// into the target struct.
	ErrParsingConfig = errors.New("config.parsing_failed")
)

var dotenvOnce sync.Once

// Load populates v from the environment. The .env file is optional
// and only consulted once per process.
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// Missing .env is the normal case outside development.
		_ = godotenv.Load()
	})

	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad panics on failure. For configuration the process cannot
// start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}
