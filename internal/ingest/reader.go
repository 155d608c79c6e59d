package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/qepting91/signal-filter/internal/domain"
	"github.com/qepting91/signal-filter/internal/textnorm"
)

// Regex for valid submolt / subreddit names
var feedNameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{2,32}$`)

// LoadTargets reads a `submolt,min_karma` CSV with a header row. Rows with an
// invalid name are skipped; a missing or unparseable threshold is 0, which
// means "use the configured minimum".
func LoadTargets(path string) ([]domain.Target, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	var targets []domain.Target
	for _, record := range rows {
		// Validation (Fail-Soft)
		name := strings.TrimSpace(record[0])
		if !feedNameRegex.MatchString(name) {
			continue
		}

		var minKarma int
		if len(record) > 1 {
			minKarma, _ = strconv.Atoi(strings.TrimSpace(record[1]))
		}

		targets = append(targets, domain.Target{
			Submolt:  name,
			MinKarma: minKarma,
		})
	}
	return targets, nil
}

// LoadPatterns reads a one-column CSV of intro phrases or spam domains.
// Entries are normalized and blanks dropped.
func LoadPatterns(path string) ([]string, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	raw := make([]string, 0, len(rows))
	for _, rec := range rows {
		raw = append(raw, rec[0])
	}
	return textnorm.NormalizeAll(raw), nil
}

// readRows returns every non-empty record after the header.
func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	// Wrap in BOM stripper
	r := csv.NewReader(stripBOM(f))
	r.FieldsPerRecord = -1

	var rows [][]string
	line := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		line++
		if line == 1 || len(record) == 0 {
			continue // Skip header
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
