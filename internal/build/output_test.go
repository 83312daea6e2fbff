package build

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputSeedTruncates(t *testing.T) {
	out := NewOutput(t.TempDir())
	require.NoError(t, out.Seed("header\n", "index.mjs"))
	require.NoError(t, out.Append("row 1\n", "index.mjs"))

	// A second seed simulates a re-run: previous rows must not survive.
	require.NoError(t, out.Seed("header\n", "index.mjs"))
	data, err := os.ReadFile(out.Path("index.mjs"))
	require.NoError(t, err)
	assert.Equal(t, "header\n", string(data))
}

func TestOutputAppendAccumulates(t *testing.T) {
	out := NewOutput(t.TempDir())
	require.NoError(t, out.EnsureDir("fa"))
	require.NoError(t, out.Seed("h\n", "fa", "index.js"))
	require.NoError(t, out.Append("a\n", "fa", "index.js"))
	require.NoError(t, out.Append("b\n", "fa", "index.js"))

	data, err := os.ReadFile(out.Path("fa", "index.js"))
	require.NoError(t, err)
	assert.Equal(t, "h\na\nb\n", string(data))
}

func TestEnsureDirIdempotent(t *testing.T) {
	out := NewOutput(t.TempDir())
	require.NoError(t, out.EnsureDir("fa"))
	// Pre-existing directories are tolerated, not an error.
	require.NoError(t, out.EnsureDir("fa"))
}
