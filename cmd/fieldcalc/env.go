package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loadDotEnv loads FIELDCALC_ENV_FILE, or .env, into the environment. A missing default
// file is fine; a missing explicitly named one is not. Variables already set win.
func loadDotEnv() error {
	path, explicit := os.LookupEnv("FIELDCALC_ENV_FILE")
	if !explicit || path == "" {
		path, explicit = ".env", false
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) && !explicit {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}
