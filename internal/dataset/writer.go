package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	// BOMPrefix adds a UTF-8 BOM for Excel compatibility.
	BOMPrefix bool
	// Atomic writes to a temporary file in the target directory and renames
	// it into place, so a failed write never leaves a truncated output.
	Atomic bool
}

// Writer persists tables as comma-separated UTF-8 files.
type Writer struct {
	opts   WriteOptions
	logger *slog.Logger
}

// NewWriter creates a new CSV writer instance
func NewWriter(opts WriteOptions, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{opts: opts, logger: logger.With(slog.String("component", "writer"))}
}

// Write stores t at path, header first, replacing any existing file.
func (w *Writer) Write(ctx context.Context, path string, t *Table) error {
	w.logger.InfoContext(ctx, "Writing CSV file",
		slog.String("file_path", path),
		slog.Int("record_count", t.Rows()),
		slog.Bool("atomic", w.opts.Atomic))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if w.opts.Atomic {
		return w.writeAtomic(path, t)
	}
	return w.writeOverwrite(path, t)
}

func (w *Writer) writeOverwrite(path string, t *Table) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	if err := w.encode(file, t); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (w *Writer) writeAtomic(path string, t *Table) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, 0644)

	if err := w.encode(tmp, t); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (w *Writer) encode(dst io.Writer, t *Table) error {
	bw := bufio.NewWriterSize(dst, 64*1024)
	if w.opts.BOMPrefix {
		if _, err := bw.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(bw)
	if err := cw.Write(t.Names()); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	record := make([]string, t.Cols())
	for i := 0; i < t.Rows(); i++ {
		for j, c := range t.Columns {
			record[j] = FormatValue(c.Type, c.Values[i])
		}
		if len(record) == 1 && record[0] == "" {
			// A bare empty line would be skipped on read; quote it instead.
			cw.Flush()
			if _, err := bw.WriteString("\"\"\n"); err != nil {
				return fmt.Errorf("failed to write record %d: %w", i, err)
			}
			continue
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush records: %w", err)
	}
	return bw.Flush()
}
