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

func run(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestSettingsSetAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	out := run(t, "--settings", path, "settings", "set", "--min-karma", "25", "--hide-intros", "false")
	assert.Contains(t, out, "Saved")

	out = run(t, "--settings", path, "settings", "get")
	assert.Equal(t, "min_karma: 25\nhide_intros: false\n", out)

	run(t, "--settings", path, "settings", "set", "--hide-intros", "true")
	out = run(t, "--settings", path, "settings", "get")
	assert.Equal(t, "min_karma: 25\nhide_intros: true\n", out)
}

func TestScanCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "feed.html")
	out := filepath.Join(dir, "out.html")
	intros := filepath.Join(dir, "intros.csv")
	require.NoError(t, os.WriteFile(intros, []byte("pattern\ngreetings fellow\n"), 0644))
	require.NoError(t, os.WriteFile(in, []byte(`<html><body>
<div data-post-id="1"><span class="karma-score">50</span><h2 class="post-title">Greetings fellow agents</h2></div>
<div data-post-id="2"><span class="karma-score">50</span><h2 class="post-title">hello world</h2></div>
</body></html>`), 0644))

	run(t, "--settings", filepath.Join(dir, "s.yaml"), "--intro-patterns", intros, "scan", "--in", in, "--out", out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), `data-filtered-by="signal-filter"`))
	assert.Contains(t, string(data), "Filtered 1 low-signal posts")
}

func TestCheckScanPaths(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "feed.html")

	assert.NoError(t, checkScanPaths(in, in, false))
	assert.NoError(t, checkScanPaths(in, filepath.Join(dir, "out.html"), true))
	assert.Error(t, checkScanPaths(in, "", false))
	assert.Error(t, checkScanPaths(in, in, true))
	assert.Error(t, checkScanPaths(in, filepath.Join(dir, "sub", "..", "feed.html"), true))
}

func TestScanWatchRejectsSameOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "feed.html")
	require.NoError(t, os.WriteFile(in, []byte(`<html><body></body></html>`), 0644))

	var buf bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--settings", filepath.Join(dir, "s.yaml"), "scan", "--watch", "--in", in, "--out", in})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch")

	data, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, `<html><body></body></html>`, string(data))
}

func TestFetchCommandMock(t *testing.T) {
	dir := t.TempDir()
	targets := filepath.Join(dir, "submolts.csv")
	out := filepath.Join(dir, "data", "verdicts.json")
	require.NoError(t, os.WriteFile(targets, []byte("submolt,min_karma\ngeneral,0\ncoding,20\n"), 0644))

	run(t, "--settings", filepath.Join(dir, "s.yaml"), "fetch", "--mode", "mock", "--targets", targets, "--out", out, "--limit", "8")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 16, strings.Count(string(data), "\n"))
}
