package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ActionRecord describes one processed action and the substrate work it caused.
type ActionRecord struct {
	Seq       int
	Player    string
	Action    string
	Accepted  bool
	Index     int // change set index after the action
	Changes   int
	Duration  time.Duration
	Substrate SubstrateMetric // cumulative
}

type Writer struct {
	baseDir string
}

// NewWriter creates baseDir, and a timestamped subfolder when stamp is set.
func NewWriter(baseDir string, stamp bool) (*Writer, error) {
	if stamp {
		baseDir = filepath.Join(baseDir, time.Now().UTC().Format("20060102T150405Z"))
	}
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteActionRecords(records []ActionRecord) error {
	// Create a file
	path := filepath.Join(w.baseDir, "action_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create action records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	header := []string{"seq", "player", "action", "accepted", "index", "changes", "duration", "closes", "undos", "redos", "rollbacks", "models_recomputed", "observers_notified"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write action records header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Seq),
			record.Player,
			record.Action,
			strconv.FormatBool(record.Accepted),
			strconv.Itoa(record.Index),
			strconv.Itoa(record.Changes),
			record.Duration.String(),
			strconv.Itoa(record.Substrate.Closes),
			strconv.Itoa(record.Substrate.Undos),
			strconv.Itoa(record.Substrate.Redos),
			strconv.Itoa(record.Substrate.Rollbacks),
			strconv.Itoa(record.Substrate.ModelsRecomputed),
			strconv.Itoa(record.Substrate.ObserversNotified),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write action record row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush action records: %w", err)
	}
	return nil
}

func (w *Writer) WriteSummary(m SubstrateMetric) error {
	path := filepath.Join(w.baseDir, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	rows := [][]string{
		{"metric", "value"},
		{"closes", strconv.Itoa(m.Closes)},
		{"empty_closes", strconv.Itoa(m.EmptyCloses)},
		{"undos", strconv.Itoa(m.Undos)},
		{"redos", strconv.Itoa(m.Redos)},
		{"rollbacks", strconv.Itoa(m.Rollbacks)},
		{"update_passes", strconv.Itoa(m.UpdatePasses)},
		{"models_recomputed", strconv.Itoa(m.ModelsRecomputed)},
		{"observers_notified", strconv.Itoa(m.ObserversNotified)},
		{"update_duration", m.UpdateDuration.String()},
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
