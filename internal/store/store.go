// Package store holds the in-memory table of localization records loaded
// from a bundle CSV and serializes it back out. Rows are addressed by their
// position in the original file order; only the translation field of a row
// can change after load.
package store

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"

	"bundledit/internal/errors"
	"bundledit/pkg/types"
)

// RawHeader is the header row written on save. Load accepts it, the display
// variant, or any other single header row; the header content is discarded.
func RawHeader() []string {
	return []string{"index", "file_type", "source_text", "translated_text"}
}

// DisplayHeader is the human-readable header used by the presentation layer.
// Bundles exported by other tools sometimes carry it as their first row.
func DisplayHeader() []string {
	return []string{"Index", "File Type", "Source Text", "Translation"}
}

// Table is the full ordered collection of rows from one bundle file.
type Table struct {
	rows    []types.Row
	headers []string
	dirty   bool
}

// New builds a Table from raw CSV records, the first of which must be a
// header row. The header content is not validated, only its presence; every
// following record must carry exactly types.FieldCount fields.
func New(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.NewFormatError("missing header row", 0, errors.MissingHeader, nil)
	}
	rows := make([]types.Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != types.FieldCount {
			return nil, errors.NewFormatError("wrong field count", i+2, errors.BadFieldCount, nil)
		}
		rows = append(rows, types.Row{
			Index:       rec[0],
			FileType:    rec[1],
			Source:      rec[2],
			Translation: rec[3],
		})
	}
	return &Table{rows: rows, headers: RawHeader()}, nil
}

// Load parses a bundle CSV from r. Standard comma-delimited quoting applies;
// field count is validated here rather than by the csv reader so short and
// long rows surface as format errors with a record number.
func Load(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.NewFormatError("malformed csv", 0, errors.Unknown, err)
	}
	return New(records)
}

// ReadFile loads a bundle CSV from disk.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileError("file not found", path, errors.FileNotFound, err)
		}
		return nil, errors.NewFileError("cannot open file", path, errors.FileAccessDenied, err)
	}
	defer f.Close()
	return Load(f)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Headers returns the table's column header labels.
func (t *Table) Headers() []string {
	return t.headers
}

// Rows returns the underlying row slice in original order. Callers must not
// mutate it; translations change only through SetTranslation.
func (t *Table) Rows() []types.Row {
	return t.rows
}

// Get returns the row at position.
func (t *Table) Get(position int) (types.Row, error) {
	if position < 0 || position >= len(t.rows) {
		return types.Row{}, errors.NewIndexError(position, len(t.rows))
	}
	return t.rows[position], nil
}

// SetTranslation replaces the translation at position and marks the table
// dirty. Index, file type and source are never touched.
func (t *Table) SetTranslation(position int, text string) error {
	if position < 0 || position >= len(t.rows) {
		return errors.NewIndexError(position, len(t.rows))
	}
	t.rows[position].Translation = text
	t.dirty = true
	return nil
}

// Dirty reports whether the table has edits not yet written to disk.
func (t *Table) Dirty() bool {
	return t.dirty
}

// MarkClean clears the dirty flag after a successful save.
func (t *Table) MarkClean() {
	t.dirty = false
}

// Serialize emits the raw header row followed by every row in original file
// order, regardless of any filtering in the presentation layer.
func (t *Table) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(RawHeader()); err != nil {
		return nil, errors.Wrap(err, "write header")
	}
	for _, row := range t.rows {
		if err := w.Write(row.Fields()); err != nil {
			return nil, errors.Wrap(err, "write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "flush csv")
	}
	return buf.Bytes(), nil
}

// WriteFile serializes the table to path and clears the dirty flag.
// Save is synchronous; bundle files are small.
func (t *Table) WriteFile(path string) error {
	data, err := t.Serialize()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewFileError("cannot write file", path, errors.FileWriteFailed, err)
	}
	t.MarkClean()
	return nil
}
