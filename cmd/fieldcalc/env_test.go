package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnvFromNamedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.env")
	require.NoError(t, os.WriteFile(path, []byte("FIELDCALC_LOG_LEVEL=debug\nFIELDCALC_ADDR=:9999\n"), 0o600))

	t.Setenv("FIELDCALC_ENV_FILE", path)
	// t.Setenv restores the variable afterwards; godotenv only fills unset keys.
	t.Setenv("FIELDCALC_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("FIELDCALC_LOG_LEVEL"))
	t.Setenv("FIELDCALC_ADDR", ":7000")

	require.NoError(t, loadDotEnv())

	assert.Equal(t, "debug", os.Getenv("FIELDCALC_LOG_LEVEL"))
	assert.Equal(t, ":7000", os.Getenv("FIELDCALC_ADDR"), "process env must not be overridden")
}

func TestLoadDotEnvMissingNamedFileFails(t *testing.T) {
	t.Setenv("FIELDCALC_ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))

	err := loadDotEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.env")
}
