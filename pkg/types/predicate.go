package types

// Predicate describes one filter pass over a loaded table.
// Zero value matches every row.
type Predicate struct {
	Text             string // Case-insensitive substring of source or translation; "" matches all
	FileType         string // Case-insensitive file type equality; "" or "ALL" matches all
	UntranslatedOnly bool   // Keep only rows with an empty translation
}
