// Package experiments persists match results as CSV for offline analysis.
package experiments

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/amaarquadri/PerfectInformationGame/engine"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped results directory under baseDir.
func NewWriter(baseDir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	dir := filepath.Join(baseDir, timestamp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}
	return &Writer{baseDir: dir}, nil
}

// WriteMatches writes one row per finished game.
func (w *Writer) WriteMatches(records []engine.MatchRecord) error {
	f, err := os.Create(filepath.Join(w.baseDir, "matches.csv"))
	if err != nil {
		return fmt.Errorf("failed to create matches file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write([]string{"game", "outcome", "moves", "duration_ms"}); err != nil {
		return err
	}
	for i, record := range records {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(record.Outcome, 'f', -1, 64),
			strconv.Itoa(len(record.Moves)),
			strconv.FormatInt(record.Duration.Milliseconds(), 10),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteMoves writes one row per move across all games.
func (w *Writer) WriteMoves(records []engine.MatchRecord) error {
	f, err := os.Create(filepath.Join(w.baseDir, "moves.csv"))
	if err != nil {
		return fmt.Errorf("failed to create moves file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write([]string{"game", "step", "maximizer", "duration_ms"}); err != nil {
		return err
	}
	for i, record := range records {
		for _, move := range record.Moves {
			row := []string{
				strconv.Itoa(i + 1),
				strconv.Itoa(move.Step),
				strconv.FormatBool(move.Maximizer),
				strconv.FormatInt(move.Duration.Milliseconds(), 10),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}
