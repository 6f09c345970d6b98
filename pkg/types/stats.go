package types

// Stats summarizes translation progress over a whole table, never over a
// filtered view.
type Stats struct {
	Total        int // Number of rows in the table
	Untranslated int // Rows with an empty translation
	Percent      int // Translated percentage, floored; 0 for an empty table
}
