package utils

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("with nil values", func(t *testing.T) {
		config := NewConfig(nil)
		require.NotNil(t, config)
		assert.False(t, config.Has("anything"))
	})

	t.Run("with values", func(t *testing.T) {
		values := map[string]string{
			"key1": "value1",
			"key2": "value2",
		}
		config := NewConfig(values)

		assert.Equal(t, "value1", config.Get("key1"))
		assert.Equal(t, "value2", config.Get("key2"))

		// Verify it's a copy, not a reference
		values["key1"] = "modified"
		assert.NotEqual(t, "modified", config.Get("key1"))
	})
}

func TestNewConfigFromEnv(t *testing.T) {
	envContent := "TEST_STORAGE_BACKEND=local\nTEST_API_PORT=9090\n"
	tmpFile, err := os.CreateTemp(t.TempDir(), "test_env_*.env")
	require.NoError(t, err)

	_, err = tmpFile.WriteString(envContent)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	config := NewConfigFromEnv(tmpFile.Name())
	assert.Equal(t, "local", config.Get("TEST_STORAGE_BACKEND"))
	assert.Equal(t, "9090", config.Get("TEST_API_PORT"))

	os.Unsetenv("TEST_STORAGE_BACKEND")
	os.Unsetenv("TEST_API_PORT")
}

func TestGetWithDefault(t *testing.T) {
	config := NewConfig(map[string]string{
		"set":   "value",
		"empty": "",
	})

	assert.Equal(t, "value", config.GetWithDefault("set", "fallback"))
	assert.Equal(t, "fallback", config.GetWithDefault("empty", "fallback"))
	assert.Equal(t, "fallback", config.GetWithDefault("missing", "fallback"))
}

func TestGetIntWithDefault(t *testing.T) {
	config := NewConfig(map[string]string{
		"port":    "8081",
		"invalid": "not-a-number",
	})

	assert.Equal(t, 8081, config.GetIntWithDefault("port", 8080))
	assert.Equal(t, 8080, config.GetIntWithDefault("invalid", 8080))
	assert.Equal(t, 8080, config.GetIntWithDefault("missing", 8080))
}

func TestGetDurationWithDefault(t *testing.T) {
	config := NewConfig(map[string]string{
		"retention": "48h",
		"invalid":   "two days",
	})

	assert.Equal(t, 48*time.Hour, config.GetDurationWithDefault("retention", time.Hour))
	assert.Equal(t, time.Hour, config.GetDurationWithDefault("invalid", time.Hour))
	assert.Equal(t, time.Hour, config.GetDurationWithDefault("missing", time.Hour))
}

func TestSet(t *testing.T) {
	config := NewConfig(nil)
	config.Set("key", "value")

	assert.True(t, config.Has("key"))
	assert.Equal(t, "value", config.Get("key"))
}
