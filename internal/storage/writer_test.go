package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/qepting91/signal-filter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterAppendsNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verdicts.json")

	for round := 0; round < 2; round++ {
		in := make(chan domain.Verdict, 2)
		var wg sync.WaitGroup
		wg.Add(1)
		go (&WriterService{FilePath: path}).Start(&wg, in)

		in <- domain.Verdict{Post: domain.Post{ID: "a", Karma: 3}, Hidden: true, Reasons: []domain.Reason{domain.ReasonLowKarma}}
		in <- domain.Verdict{Post: domain.Post{ID: "b", Karma: 30}}
		close(in)
		wg.Wait()
	}

	verdicts, err := LoadVerdicts(path)
	require.NoError(t, err)
	require.Len(t, verdicts, 4)
	assert.Equal(t, "a", verdicts[2].Post.ID)
	assert.True(t, verdicts[2].Hidden)
	assert.Equal(t, []domain.Reason{domain.ReasonLowKarma}, verdicts[2].Reasons)
	assert.False(t, verdicts[3].Hidden)
}

func TestWriterDrainsWhenFileUnavailable(t *testing.T) {
	in := make(chan domain.Verdict)
	var wg sync.WaitGroup
	wg.Add(1)
	go (&WriterService{FilePath: filepath.Join(t.TempDir(), "missing", "v.json")}).Start(&wg, in)

	in <- domain.Verdict{}
	close(in)
	wg.Wait()
}

func TestLoadVerdictsSkipsBadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verdicts.json")
	require.NoError(t, os.WriteFile(path, []byte("{\"post\":{\"id\":\"x\"},\"hidden\":true}\nnot json\n"), 0644))

	verdicts, err := LoadVerdicts(path)
	require.NoError(t, err)
	require.Len(t, verdicts, 1)
	assert.Equal(t, "x", verdicts[0].Post.ID)

	verdicts, err = LoadVerdicts(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Empty(t, verdicts)
}
