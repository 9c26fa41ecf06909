package proctitle

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRejectsBlank(t *testing.T) {
	assert.ErrorIs(t, Set("   "), ErrEmptyTitle)
}

func TestSetRewritesArgs(t *testing.T) {
	saved := os.Args[0]
	t.Cleanup(func() { os.Args[0] = saved })

	require.NoError(t, Set("  "+Default+"-test "))
	assert.Equal(t, Default+"-test", os.Args[0])
}
