package types

// GlossaryEntry is one known term and its fixed translation, loaded from an
// external glossary document.
type GlossaryEntry struct {
	Term        string
	Translation string
}

// Occurrence marks one appearance of a glossary term inside a scanned text,
// as a half-open byte range [Start, End).
type Occurrence struct {
	Term  string
	Start int
	End   int
}
