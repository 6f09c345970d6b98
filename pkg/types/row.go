package types

// FieldCount is the number of columns every bundle row carries.
// The semantic order is fixed: index, file type, source text, translation.
const FieldCount = 4

// Row is a single localization record. Only the Translation field is
// mutable after load; the other three identify what is being translated.
type Row struct {
	Index       string // Record identifier as it appears in the file
	FileType    string // Origin file type (e.g. "Dialogue", "Menu")
	Source      string // Source-language text
	Translation string // Destination-language text; empty means untranslated
}

// Untranslated reports whether the row still lacks a translation.
func (r Row) Untranslated() bool {
	return r.Translation == ""
}

// Fields returns the row as a CSV record in column order.
func (r Row) Fields() []string {
	return []string{r.Index, r.FileType, r.Source, r.Translation}
}
