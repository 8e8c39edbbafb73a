package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)

	Version, Commit, Date = "v1.2.3", "abc123", "2025-03-01"
	assert.Equal(t, "v1.2.3 (commit: abc123, built: 2025-03-01)", String())

	Version = "dev"
	assert.Contains(t, String(), "(commit: abc123, built: 2025-03-01)")
}
