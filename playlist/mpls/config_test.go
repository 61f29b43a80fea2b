package mpls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	require.NotNil(t, config)
	assert.Equal(t, ".MPL", config.Scanner.Suffix)
	assert.False(t, config.Walker.StrictMode)
	assert.True(t, config.Timezone.EnableSidecar)

	assert.NoError(t, config.Validate())
}

func TestConfigFromMap(t *testing.T) {
	t.Run("empty map keeps defaults", func(t *testing.T) {
		config := ConfigFromMap(map[string]any{})

		assert.Equal(t, DefaultConfig(), config)
	})

	t.Run("overrides", func(t *testing.T) {
		config := ConfigFromMap(map[string]any{
			"scanner": map[string]any{
				"suffix": ".mpl",
			},
			"walker": map[string]any{
				"strict_mode": true,
			},
			"timezone": map[string]any{
				"enable_sidecar": false,
			},
		})

		assert.Equal(t, ".mpl", config.Scanner.Suffix)
		assert.True(t, config.Walker.StrictMode)
		assert.False(t, config.Timezone.EnableSidecar)
	})

	t.Run("wrong value types ignored", func(t *testing.T) {
		config := ConfigFromMap(map[string]any{
			"scanner": map[string]any{"suffix": 42},
			"walker":  map[string]any{"strict_mode": "yes"},
		})

		assert.Equal(t, DefaultConfig(), config)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("empty suffix", func(t *testing.T) {
		config := DefaultConfig()
		config.Scanner.Suffix = ""

		assert.Error(t, config.Validate())
	})

	t.Run("suffix without dot", func(t *testing.T) {
		config := DefaultConfig()
		config.Scanner.Suffix = "MPL"

		assert.Error(t, config.Validate())
	})

	t.Run("nil section", func(t *testing.T) {
		config := DefaultConfig()
		config.Walker = nil

		assert.Error(t, config.Validate())
	})
}
