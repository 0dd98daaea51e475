// Package export writes the ledger to flat files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"smartspend/internal/core"
)

// Header is the first row of every export.
var Header = []string{"ID", "Amount", "Category", "Description", "Timestamp"}

// ErrNothingToExport is returned instead of writing an empty file.
var ErrNothingToExport = errors.New("no expenses to export")

// ExportError reports an I/O failure while writing an export. No file is
// left at Path when it is returned.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// ExportCSV writes records to path in the given order. The data is written
// to a temporary file in the same directory and renamed into place once it
// has been flushed to disk.
func ExportCSV(records []core.ExpenseRecord, path string) error {
	if len(records) == 0 {
		return ErrNothingToExport
	}
	if path == "" {
		return &ExportError{Path: path, Err: errors.New("empty destination path")}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &ExportError{Path: path, Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err := WriteCSV(tmp, records); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &ExportError{Path: path, Err: fmt.Errorf("sync temp file: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		return &ExportError{Path: path, Err: fmt.Errorf("close temp file: %w", err)}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return &ExportError{Path: path, Err: fmt.Errorf("chmod temp file: %w", err)}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &ExportError{Path: path, Err: fmt.Errorf("move into place: %w", err)}
	}
	committed = true
	return nil
}

// WriteCSV writes the header and one row per record to w.
func WriteCSV(w io.Writer, records []core.ExpenseRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.ID, 10),
			r.Amount.String(),
			r.Category,
			r.Description,
			r.Timestamp.Format(core.TimestampLayout),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write expense %d: %w", r.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ReadCSV parses a file produced by WriteCSV. Timestamps are read in the
// local time zone, the one they were written in.
func ReadCSV(r io.Reader) ([]core.ExpenseRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	head, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range Header {
		if head[i] != h {
			return nil, fmt.Errorf("unexpected header column %d: %q", i+1, head[i])
		}
	}

	var out []core.ExpenseRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rec, err := parseRow(row)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseRow(row []string) (core.ExpenseRecord, error) {
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("parse id %q: %w", row[0], err)
	}
	amount, err := core.ParseAmount(row[1])
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("parse amount %q: %w", row[1], err)
	}
	ts, err := time.ParseInLocation(core.TimestampLayout, row[4], time.Local)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("parse timestamp %q: %w", row[4], err)
	}
	return core.ExpenseRecord{
		ID:          id,
		Amount:      amount,
		Category:    row[2],
		Description: row[3],
		Timestamp:   ts,
	}, nil
}
