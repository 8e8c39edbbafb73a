package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/stmtledger/internal/categorizer"
	"github.com/cleared-dev/stmtledger/internal/config"
)

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	stdout, _, err := runStmtledger(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Initialized stmtledger project at")

	for _, d := range []string{"rules", "logs", "output", "statements"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
	_, err = os.Stat(filepath.Join(dir, "statements", ".gitkeep"))
	assert.NoError(t, err)
}

func TestInit_Config(t *testing.T) {
	dir := initProject(t, "--year", "2025", "--policy", "delta")

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, 2025, cfg.Statement.Year)
	assert.Equal(t, "balance-delta", cfg.Statement.Policy)
	assert.Equal(t, "rules/categorization-rules.yaml", cfg.Categorization.RulesFile)
}

func TestInit_DefaultPolicy(t *testing.T) {
	dir := initProject(t)

	data, err := os.ReadFile(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "policy: explicit-marker")
}

func TestInit_Rules(t *testing.T) {
	dir := initProject(t)

	c, err := categorizer.Load(filepath.Join(dir, "rules", "categorization-rules.yaml"))
	require.NoError(t, err)
	assert.Equal(t, categorizer.Default().Rules(), c.Rules())
	assert.Equal(t, "Other", c.Fallback())
}

func TestInit_Gitignore(t *testing.T) {
	dir := initProject(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	for _, pattern := range []string{"output/", "logs/", "statements/", ".env"} {
		assert.Contains(t, string(data), pattern, ".gitignore should contain %s", pattern)
	}
}

func TestInit_Errors(t *testing.T) {
	dir := initProject(t)
	_, _, err := runStmtledger(t, "init", dir)
	assert.Error(t, err, "second init should fail")

	_, _, err = runStmtledger(t, "init", t.TempDir(), "--policy", "vibes")
	assert.Error(t, err)
}
