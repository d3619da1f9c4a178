package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCurrencies_ListsRegistry(t *testing.T) {
	out, err := run(t, "currencies", "--sample", "1234.5")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 38, "header plus 37 currencies")
	assert.Contains(t, lines[1], "INR (default)")
	assert.Contains(t, out, "$1,234.50")
	assert.Contains(t, out, "JPY 1,235")
}

func TestCurrencies_InvalidSample(t *testing.T) {
	_, err := run(t, "currencies", "--sample", "lots")
	assert.ErrorContains(t, err, "invalid --sample")
}

func TestMigrate_RequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")
	_, err := run(t, "migrate")
	assert.ErrorContains(t, err, "no database configured")
}
