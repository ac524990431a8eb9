package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into the provided struct using `env` tags.
//
//	type Config struct {
//	    Port      int    `env:"PORT" envDefault:"8080"`
//	    JWTSecret string `env:"JWT_SECRET,required"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
