package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setBuild(t *testing.T, version, date, commit string) {
	t.Helper()
	oldV, oldD, oldC := BuildVersion, BuildDate, BuildCommit
	BuildVersion, BuildDate, BuildCommit = version, date, commit
	t.Cleanup(func() { BuildVersion, BuildDate, BuildCommit = oldV, oldD, oldC })
}

func TestBuildVerPrint(t *testing.T) {
	setBuild(t, "v1.0.0", "2023-01-01", "abcdef")

	got := BuildVerPrint()
	assert.Contains(t, got, "Build version: v1.0.0")
	assert.Contains(t, got, "Build date: 2023-01-01")
	assert.Contains(t, got, "Build commit: abcdef")
}

func TestLogFields(t *testing.T) {
	setBuild(t, "v2.1.0", "2024-05-05", "123abc")

	assert.Equal(t, []any{"version", "v2.1.0", "date", "2024-05-05", "commit", "123abc"}, LogFields())
	assert.Equal(t, "rsakeygen/v2.1.0", UserAgent())
}
