package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeROM(t *testing.T, rom ...byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(path, rom, 0o600))
	return path
}

func TestStartHeadless(t *testing.T) {
	path := writeROM(t,
		0xA0, 0x50, // LD I, $050
		0xD0, 0x05, // DRW V0, V0, $5
		0x12, 0x04, // JP $204
	)

	out, err := execute(t, "start", path, "--renderer", "headless", "--cycles", "10", "--quiet")
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 32)
	assert.True(t, strings.HasPrefix(lines[0], "####...."))
	assert.True(t, strings.HasPrefix(lines[1], "#..#...."))
	assert.True(t, strings.HasPrefix(lines[5], "........"))
}

func TestStartMissingROM(t *testing.T) {
	_, err := execute(t, "start", filepath.Join(t.TempDir(), "missing.ch8"), "--renderer", "headless", "--quiet")
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "reading rom"))
}

func TestDisasm(t *testing.T) {
	path := writeROM(t, 0x00, 0xE0, 0x12, 0x00)

	out, err := execute(t, "disasm", path)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "200  00E0  "))
	assert.True(t, strings.HasPrefix(lines[1], "202  1200  "))
}

func TestVersion(t *testing.T) {
	setVersion("1.2.3", "", "")

	out, err := execute(t, "version")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "chyp8 "))
	assert.True(t, strings.Contains(out, "1.2.3"))
}
