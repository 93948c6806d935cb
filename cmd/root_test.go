package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	for _, name := range []string{"board", "column", "card", "deal"} {
		sub, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	move, _, err := rootCmd.Find([]string{"deal", "move"})
	require.NoError(t, err)
	assert.Equal(t, "move", move.Name())

	flag := rootCmd.Flags().Lookup("board")
	require.NotNil(t, flag)
	assert.Empty(t, flag.DefValue)
}
