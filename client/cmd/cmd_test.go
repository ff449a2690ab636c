package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runWithConfig(t, t.TempDir(), args...)
}

func runWithConfig(t *testing.T, configDir string, args ...string) (string, error) {
	t.Helper()

	verifyChallenge = challengeInput{}
	extractChallenge = challengeInput{}
	solveChallenge = challengeInput{}

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(append([]string{"--config", configDir}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExtractCommand(t *testing.T) {
	challenge := strings.Repeat("ab", 16) + strings.Repeat("cd", 16)
	out, err := run(t, "extract", "--challenge", challenge)
	require.NoError(t, err)
	assert.Contains(t, out, "address:  0x"+challenge)
	assert.Contains(t, out, "fragment: 0x"+strings.Repeat("ab", 16))

	_, err = run(t, "extract", "--challenge", "abcd")
	assert.Error(t, err)

	_, err = run(t, "extract")
	assert.Error(t, err)
}

func TestSolveVerifyCommands(t *testing.T) {
	out, err := run(
		t, "solve",
		"--seed", "TestSolveVerifyCommands",
		"--difficulty", "200",
		"--security", "256",
		"--wesolowski=false",
	)
	require.NoError(t, err)
	solution := strings.TrimSpace(out)
	assert.Len(t, solution, 2*2*2*17)

	out, err = run(
		t, "verify",
		"--seed", "TestSolveVerifyCommands",
		"--solution", solution,
		"--difficulty", "200",
		"--security", "256",
		"--wesolowski=false",
	)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(
		t, "verify",
		"--seed", "TestSolveVerifyCommands",
		"--solution", solution,
		"--difficulty", "200",
		"--security", "256",
		"--wesolowski=true",
	)
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	_, err = run(
		t, "verify",
		"--seed", "TestSolveVerifyCommands",
		"--solution", solution,
		"--difficulty", "900000001",
		"--security", "256",
		"--wesolowski=false",
	)
	assert.Error(t, err)
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requests.yml")
	require.NoError(t, os.WriteFile(path, []byte(`- challenge: "aa"
  solution: "00"
  difficulty: 100
  security: 4096
- challenge: "aa"
  solution: "00"
  difficulty: 100
  security: 512
  wesolowski: true
`), 0600))

	out, err := run(t, "batch", "--file", path, "--workers", "2")
	assert.Error(t, err)
	assert.Contains(t, out, "0: error: ")
	assert.Contains(t, out, "1: false")

	_, err = run(t, "batch", "--file", filepath.Join(dir, "missing.yml"), "--workers", "2")
	assert.Error(t, err)
}

func TestEmptyConfigSections(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.yml"),
		[]byte("solver:\nbatch:\n"),
		0600,
	))

	requests := filepath.Join(t.TempDir(), "requests.yml")
	require.NoError(t, os.WriteFile(requests, []byte(`- challenge: "aa"
  solution: "00"
  difficulty: 100
  security: 512
`), 0600))

	out, err := runWithConfig(t, dir, "batch", "--file", requests)
	assert.Error(t, err)
	assert.Contains(t, out, "0: false")

	out, err = runWithConfig(
		t, dir, "solve",
		"--seed", "TestEmptyConfigSections",
		"--difficulty", "66",
		"--security", "256",
	)
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 2*2*17)
}

func TestConfigCommands(t *testing.T) {
	out, err := run(t, "config", "print")
	require.NoError(t, err)
	assert.Contains(t, out, "level: info")
	assert.Contains(t, out, "workers: 0")

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0\n", out)
}
