package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/qepting91/signal-filter/internal/domain"
)

// WriterService is the single owner of the verdict file; producers only
// ever send on the channel.
type WriterService struct {
	FilePath string
	Logger   *slog.Logger
}

// Start drains input to the file as NDJSON until input is closed.
func (w *WriterService) Start(wg *sync.WaitGroup, input <-chan domain.Verdict) {
	defer wg.Done()
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.OpenFile(w.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logger.Error("open verdict file", "path", w.FilePath, "err", err)
		for range input {
			// keep draining so producers never block
		}
		return
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for v := range input {
		// Write as NDJSON
		if err := enc.Encode(v); err != nil {
			logger.Error("write verdict", "id", v.Post.ID, "err", err)
		}
	}
}

// LoadVerdicts reads an NDJSON verdict file, skipping malformed lines.
// A missing file is empty.
func LoadVerdicts(path string) ([]domain.Verdict, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open verdicts: %w", err)
	}
	defer f.Close()

	var verdicts []domain.Verdict
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var v domain.Verdict
		if err := json.Unmarshal(scanner.Bytes(), &v); err == nil {
			verdicts = append(verdicts, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return verdicts, fmt.Errorf("read verdicts: %w", err)
	}
	return verdicts, nil
}
