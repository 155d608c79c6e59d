package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qepting91/signal-filter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadTargets(t *testing.T) {
	path := writeFile(t, "submolts.csv", "\uFEFFsubmolt,min_karma\ncoding, 25\ngeneral\nbad name!,3\nx,1\nagents,lots\n")

	targets, err := LoadTargets(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Target{
		{Submolt: "coding", MinKarma: 25},
		{Submolt: "general"},
		{Submolt: "agents"},
	}, targets)
}

func TestLoadTargetsMissingFile(t *testing.T) {
	_, err := LoadTargets(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadPatterns(t *testing.T) {
	path := writeFile(t, "intros.csv", "pattern\n  Just Landed \n\"\"\nNice to meet\n")

	patterns, err := LoadPatterns(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"just landed", "nice to meet"}, patterns)
}
