package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestListEmbeddedCatalog(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 20)
	assert.Equal(t, "classic [classic] Classic", lines[0])
	assert.Contains(t, lines[1], "TEE CLASSIC LOGO BLACK")
	assert.Contains(t, lines[1], "R$ 189,00")
	assert.Equal(t, "pass-sports [passSports] Pass Sports", lines[15])
	assert.Contains(t, lines[19], "R$ 699,00")
}

func TestListFlags(t *testing.T) {
	t.Run("currency", func(t *testing.T) {
		out, err := execute(t, "list", "--locale", "en-US", "--currency", "USD")
		require.NoError(t, err)
		assert.Contains(t, out, "$")
		assert.NotContains(t, out, "R$")
	})

	t.Run("bad currency", func(t *testing.T) {
		_, err := execute(t, "list", "--currency", "nope")
		assert.Error(t, err)
	})

	t.Run("extra args", func(t *testing.T) {
		_, err := execute(t, "list", "catalog.yaml")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	doc, err := os.ReadFile(filepath.Join("..", "..", "internal", "app", "domain", "catalog", "catalog.yaml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(good, doc, 0o600))

	out, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (4 sections, 16 products)")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("sections: []\n"), 0o600))
	_, err = execute(t, "validate", bad)
	assert.Error(t, err)

	_, err = execute(t, "validate")
	assert.Error(t, err, "file argument is required")
}
