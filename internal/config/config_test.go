package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	v := viper.New()
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "http://0.0.0.0:11311", cfg.MasterURI)
	assert.Equal(t, "0.0.0.0:11311", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadResolvesLocalhost(t *testing.T) {
	v := viper.New()
	v.Set("master_uri", "http://localhost:11311")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:11311", cfg.MasterURI)
	assert.Equal(t, "127.0.0.1:11311", cfg.ListenAddr)
}

func TestLoadRejectsMissingPort(t *testing.T) {
	v := viper.New()
	v.Set("master_uri", "http://localhost")

	_, err := Load(v)
	assert.Error(t, err)
}

func TestLoadRejectsMalformedURI(t *testing.T) {
	v := viper.New()
	v.Set("master_uri", "not-a-url")

	_, err := Load(v)
	assert.Error(t, err)
}
