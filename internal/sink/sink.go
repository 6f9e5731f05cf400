// Package sink writes validation records to a collision-free CSV file
// derived from the input filename. Existing files are never overwritten:
// the writer either creates a fresh path or picks the next unused numeric
// suffix.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	resultSuffix = "_results"
	header0      = "phone"
	header1      = "validate"
)

// Record is one appended row: the canonical address and whether the
// directory reports it as existing.
type Record struct {
	Address string
	Exists  bool
}

// Writer is an append-only CSV record stream. It is not safe for
// concurrent use; one run owns one Writer.
type Writer struct {
	path string
	file *os.File
	csv  *csv.Writer
}

// Open derives an output path from baseInputPath (extension stripped,
// "_results.csv" appended), searching suffixes 2, 3, 4… until an unused
// path is found, then creates the file and writes the header.
func Open(baseInputPath string) (*Writer, error) {
	path, err := resolvePath(baseInputPath)
	if err != nil {
		return nil, err
	}

	// Append mode: if the chosen path raced into existence between the
	// probe and here, rows land after any existing content instead of
	// clobbering it.
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}

	w := &Writer{
		path: path,
		file: file,
		csv:  csv.NewWriter(file),
	}

	if err := w.csv.Write([]string{header0, header1}); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	return w, nil
}

// resolvePath strips the input extension and appends the result suffix,
// then walks numeric suffixes monotonically until a path does not exist.
func resolvePath(baseInputPath string) (string, error) {
	base := strings.TrimSuffix(baseInputPath, filepath.Ext(baseInputPath))

	candidate := base + resultSuffix + ".csv"
	for n := 2; ; n++ {
		if _, err := os.Stat(candidate); err != nil {
			if os.IsNotExist(err) {
				return candidate, nil
			}
			return "", fmt.Errorf("failed to probe output path: %w", err)
		}
		candidate = base + resultSuffix + strconv.Itoa(n) + ".csv"
	}
}

// Path returns the resolved output path.
func (w *Writer) Path() string {
	return w.path
}

// Append writes one record as `address,true|false` and flushes it, so a
// process kill never loses more than the in-flight row.
func (w *Writer) Append(rec Record) error {
	if err := w.csv.Write([]string{rec.Address, strconv.FormatBool(rec.Exists)}); err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
