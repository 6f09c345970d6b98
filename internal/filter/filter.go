// Package filter derives the visible subset of a loaded table and computes
// translation progress. Filtering is a pure function over the table's
// current contents; nothing here is cached, so a re-apply after any edit
// always reflects the new state.
package filter

import (
	"strings"

	"bundledit/internal/store"
	"bundledit/pkg/types"
)

// AllFileTypes is the sentinel file-type value that disables the type
// restriction, alongside the empty string.
const AllFileTypes = "ALL"

// Apply scans the table once in original order and returns the positions of
// rows matching every condition of the predicate. The returned positions are
// strictly increasing.
func Apply(t *store.Table, p types.Predicate) []int {
	text := strings.ToLower(p.Text)
	fileType := strings.ToLower(p.FileType)
	if fileType == strings.ToLower(AllFileTypes) {
		fileType = ""
	}

	positions := make([]int, 0, t.Len())
	for i, row := range t.Rows() {
		if fileType != "" && strings.ToLower(row.FileType) != fileType {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(row.Source), text) &&
			!strings.Contains(strings.ToLower(row.Translation), text) {
			continue
		}
		if p.UntranslatedOnly && !row.Untranslated() {
			continue
		}
		positions = append(positions, i)
	}
	return positions
}

// Stats computes progress over the whole table, never a filtered view.
// An empty table yields (0, 0, 0) rather than a division error.
func Stats(t *store.Table) types.Stats {
	total := t.Len()
	untranslated := 0
	for _, row := range t.Rows() {
		if row.Untranslated() {
			untranslated++
		}
	}
	percent := 0
	if total > 0 {
		percent = (total - untranslated) * 100 / total
	}
	return types.Stats{Total: total, Untranslated: untranslated, Percent: percent}
}

// FileTypes returns the distinct file types present in the table, in first
// appearance order, for populating a type selector.
func FileTypes(t *store.Table) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range t.Rows() {
		key := strings.ToLower(row.FileType)
		if !seen[key] {
			seen[key] = true
			out = append(out, row.FileType)
		}
	}
	return out
}
