package gui

import (
	"fmt"
	"sort"

	"bundledit/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	plainSegStyle = widget.RichTextStyle{Inline: true}
	termSegStyle  = widget.RichTextStyle{
		Inline:    true,
		TextStyle: fyne.TextStyle{Bold: true},
		ColorName: theme.ColorNamePrimary,
	}
)

// openEditDialog shows the modal editor for the row at the given
// original-table position. The dialog works on an edit session; the table
// is only touched when the session commits, back on the state loop.
// State-loop only.
func (a *App) openEditDialog(position int) {
	sess, err := a.engine.OpenEdit(position)
	if err != nil {
		a.ShowError("Cannot edit row", err)
		return
	}

	sourceText := a.buildHighlightedText(sess.Source())
	sourceScroll := container.NewScroll(sourceText)
	sourceScroll.SetMinSize(fyne.NewSize(760, 130))

	transEntry := widget.NewMultiLineEntry()
	transEntry.Wrapping = fyne.TextWrapWord
	transEntry.SetText(sess.Working())
	transEntry.OnChanged = func(text string) {
		_ = sess.SetWorking(text)
	}
	transScroll := container.NewScroll(transEntry)
	transScroll.SetMinSize(fyne.NewSize(760, 130))

	cloneButton := widget.NewButton("Copy source to translation", func() {
		if err := sess.Clone(); err == nil {
			transEntry.SetText(sess.Working())
		}
	})
	clearButton := widget.NewButton("Clear translation", func() {
		if err := sess.Clear(); err == nil {
			transEntry.SetText(sess.Working())
		}
	})

	termsBox := a.buildTermsBox(sess.Source(), sess.Working(), func(insert string) {
		_ = sess.SetWorking(sess.Working() + insert)
		transEntry.SetText(sess.Working())
	})

	content := container.NewVBox(
		widget.NewLabelWithStyle("Source text", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sourceScroll,
		widget.NewLabelWithStyle("Translation", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		transScroll,
		container.NewHBox(cloneButton, clearButton),
		termsBox,
	)

	d := dialog.NewCustomConfirm("Edit Row", "OK", "Cancel", content, func(ok bool) {
		if !ok {
			_ = sess.Discard()
			return
		}
		a.post(func() {
			if err := a.engine.CommitEdit(sess); err != nil {
				a.ShowError("Failed to apply edit", err)
				return
			}
			a.refreshView()
		})
	}, a.mainWindow)
	d.Resize(fyne.NewSize(800, 500))
	d.Show()
}

// buildHighlightedText renders text with every glossary occurrence marked.
func (a *App) buildHighlightedText(text string) *widget.RichText {
	occs := a.engine.Glossary().Occurrences(text)
	segments := highlightSegments(text, occs)
	rt := widget.NewRichText(segments...)
	rt.Wrapping = fyne.TextWrapWord
	return rt
}

// buildTermsBox lists glossary terms found in either pane, each with a
// quick-insert button appending the term's fixed translation.
func (a *App) buildTermsBox(source, working string, insert func(string)) fyne.CanvasObject {
	found := map[string]bool{}
	for _, term := range a.engine.Glossary().Scan(source) {
		found[term] = true
	}
	for _, term := range a.engine.Glossary().Scan(working) {
		found[term] = true
	}
	if len(found) == 0 {
		return widget.NewLabel("No glossary terms found")
	}

	terms := make([]string, 0, len(found))
	for term := range found {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	items := container.NewVBox()
	for _, term := range terms {
		translation, ok := a.engine.Glossary().TranslationFor(term)
		if !ok {
			continue
		}
		t := translation
		items.Add(container.NewHBox(
			widget.NewLabel(fmt.Sprintf("%s — %s", term, translation)),
			widget.NewButton("Insert", func() {
				insert(t)
			}),
		))
	}

	return widget.NewCard("Glossary terms", "", items)
}

// highlightSegments splits text into rich text segments with glossary
// occurrences emphasized. Overlapping occurrence ranges are merged first.
func highlightSegments(text string, occs []types.Occurrence) []widget.RichTextSegment {
	if len(occs) == 0 {
		return []widget.RichTextSegment{
			&widget.TextSegment{Text: text, Style: plainSegStyle},
		}
	}

	// Occurrences arrive sorted by start; fold them into disjoint ranges.
	type span struct{ start, end int }
	var merged []span
	for _, o := range occs {
		if len(merged) > 0 && o.Start <= merged[len(merged)-1].end {
			if o.End > merged[len(merged)-1].end {
				merged[len(merged)-1].end = o.End
			}
			continue
		}
		merged = append(merged, span{o.Start, o.End})
	}

	var segments []widget.RichTextSegment
	cursor := 0
	for _, s := range merged {
		if s.start > cursor {
			segments = append(segments, &widget.TextSegment{Text: text[cursor:s.start], Style: plainSegStyle})
		}
		end := s.end
		if end > len(text) {
			end = len(text)
		}
		segments = append(segments, &widget.TextSegment{Text: text[s.start:end], Style: termSegStyle})
		cursor = end
	}
	if cursor < len(text) {
		segments = append(segments, &widget.TextSegment{Text: text[cursor:], Style: plainSegStyle})
	}
	return segments
}
