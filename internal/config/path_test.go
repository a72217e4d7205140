package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	t.Run("tilde", func(t *testing.T) {
		home, err := filepath.Abs(t.TempDir())
		require.NoError(t, err)
		t.Setenv("HOME", home)

		assert.Equal(t, filepath.Join(home, "tally.db"), ExpandPath("~/tally.db"))
		assert.Equal(t, home, ExpandPath("~"))
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("TALLY_TEST_DIR", "/data")
		assert.Equal(t, "/data/tally.db", ExpandPath("$TALLY_TEST_DIR/tally.db"))
	})

	t.Run("plain paths pass through", func(t *testing.T) {
		assert.Equal(t, "/var/lib/tally.db", ExpandPath("/var/lib/tally.db"))
		assert.Equal(t, "", ExpandPath(""))
	})
}
