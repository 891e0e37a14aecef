package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "salt = \"myrandomsaltisnotlongenoug\"\ndifficulty = \"1000\"\nworkers = 1\nlog-level = \"error\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDifficultyCommand(t *testing.T) {
	out, err := execute(t, "difficulty", "--average", "1000")
	require.NoError(t, err)
	require.Contains(t, out, "0xffbe76c8b4395810624dd2f1a9fbe76c")
	require.Contains(t, out, "339942084554017524999911232824336443244")
}

func TestDifficultyTableCommand(t *testing.T) {
	out, err := execute(t, "difficulty", "table")
	require.NoError(t, err)
	require.Contains(t, out, "2^8")
	require.Contains(t, out, "0xff000000000000000000000000000000")
}

func TestProveAndVerify(t *testing.T) {
	r := require.New(t)
	config := writeConfig(t)
	outFile := filepath.Join(t.TempDir(), "proof.txt")

	out, err := execute(t, "prove", "--config", config, "--target", "ironmansucks", "--out", outFile)
	r.NoError(err)
	proof := strings.TrimSpace(out)
	r.Equal("000000000000001effcacc4a615fbf2cd8c8884bf898d3c9", proof)

	written, err := os.ReadFile(outFile)
	r.NoError(err)
	r.Equal(out, string(written))

	out, err = execute(t, "verify", "--config", config, "--target", "ironmansucks", "--proof", proof)
	r.NoError(err)
	r.Contains(out, "valid: nonce 30")

	_, err = execute(t, "verify", "--config", config, "--target", "ironmanrocks", "--proof", proof)
	r.ErrorContains(err, "proof rejected")

	_, err = execute(t, "verify", "--config", config, "--target", "ironmansucks", "--proof", proof[:10])
	r.ErrorContains(err, "invalid --proof")
}

func TestScoreCommand(t *testing.T) {
	out, err := execute(t, "score", "--config", writeConfig(t), "--target", "69726f6e6d616e7375636b73", "--hex", "--nonce", "1")
	require.NoError(t, err)
	require.Contains(t, out, "17452994610197362227191555290679088443")
	require.Contains(t, out, "0x0d2153120843be9b447d9ee210b2153b")
}

func TestProveWithoutSalt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.toml")
	require.NoError(t, os.WriteFile(path, []byte("log-level = \"error\"\n"), 0o600))

	_, err := execute(t, "score", "--config", path, "--target", "x")
	require.ErrorContains(t, err, "salt is required")
}

func TestBenchCommand(t *testing.T) {
	out, err := execute(t, "bench", "--config", writeConfig(t), "--difficulty", "16", "--rounds", "2", "--target-size", "8")
	require.NoError(t, err)
	require.Contains(t, out, "BENCHMARKS: target=8B rounds=2")
	require.Contains(t, out, "AVG-NONCE")
}
