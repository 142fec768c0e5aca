package buildconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind_SearchesParents(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, Save(filepath.Join(root, "truffle-config.js"), Default()))

	got, err := Find(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "truffle-config.js"), got)
}

func TestFind_PrefersYAML(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Save(filepath.Join(root, "truffle-config.js"), Default()))
	require.NoError(t, Save(filepath.Join(root, DefaultFileName), Default()))

	got, err := Find(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, DefaultFileName), got)
}

func TestFind_NotFound(t *testing.T) {
	// directories named like a candidate are not config files
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "buildconfig.json"), 0755))

	_, err := Find(root)
	if err == nil {
		t.Skip("a build config exists above the temp dir")
	}
	assert.ErrorIs(t, err, ErrNoConfig)
}
