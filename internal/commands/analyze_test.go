package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_RequiresAPIKey(t *testing.T) {
	dir := initProject(t, "--year", "2025")
	doc := writeStatement(t, dir, "march.txt", lineSalary, linePakN)

	_, stderr, err := runStmtledger(t, "analyze", doc, "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, stderr, "GEMINI_API_KEY")
}

func TestAnalyze_BadMode(t *testing.T) {
	dir := initProject(t)
	doc := writeStatement(t, dir, "march.txt", lineSalary)

	_, stderr, err := runStmtledger(t, "analyze", doc, "--dir", dir, "--mode", "poetry")
	require.Error(t, err)
	assert.Contains(t, stderr, "unknown mode")
}
