package tui

import (
	"fmt"
	"strings"

	"bundledit/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// View implements tea.Model
func (m *Model) View() string {
	if m.mode == modeLoading {
		return "Loading bundle...\n"
	}
	if m.engine.Table() == nil {
		if m.lastErr != nil {
			return m.styles.errText.Render(m.lastErr.Error()) + "\n"
		}
		return "No bundle loaded\n"
	}

	var b strings.Builder
	b.WriteString(m.renderTable())
	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")

	switch m.mode {
	case modeTextFilter:
		b.WriteString("Text filter: " + m.filterInput.View())
		b.WriteString("\n" + m.styles.status.Render("Enter to apply, Esc to cancel"))
	case modeTypeFilter:
		b.WriteString("Type filter: " + m.filterInput.View())
		b.WriteString("\n" + m.styles.status.Render("Enter to apply, Esc to cancel"))
	case modeEdit:
		b.WriteString(m.renderEdit())
	case modeQuitPrompt:
		b.WriteString(m.styles.errText.Render("Unsaved changes.") +
			" Save before quitting? (y/n, Esc to cancel)")
	default:
		b.WriteString(m.renderStatus())
		b.WriteString("\n" + m.help.View(m.keys))
	}
	return b.String()
}

func (m *Model) renderTable() string {
	headers := store.DisplayHeader()
	widths := m.columnWidths()

	start := m.viewportY
	end := start + m.tableRows()
	if end > len(m.visible) {
		end = len(m.visible)
	}

	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		row, err := m.engine.Table().Get(m.visible[i])
		if err != nil {
			continue
		}
		cells := row.Fields()
		for j := range cells {
			cells[j] = truncate(cells[j], widths[j])
		}
		rows = append(rows, cells)
	}

	start0 := start
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(m.styles.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return m.styles.header
			}
			if start0+row == m.cursor {
				return m.styles.selected
			}
			tableRow, err := m.engine.Table().Get(m.visible[start0+row])
			if err == nil && tableRow.Untranslated() {
				return m.styles.untranslated
			}
			return m.styles.normal
		})
	return t.String()
}

func (m *Model) renderStats() string {
	filtered := ""
	if len(m.visible) != m.stats.Total {
		filtered = fmt.Sprintf(" | showing %d", len(m.visible))
	}
	dirty := ""
	if m.engine.Dirty() {
		dirty = " [MODIFIED]"
	}
	return m.styles.status.Render(fmt.Sprintf("%d rows, %d untranslated (%d%% translated)%s%s",
		m.stats.Total, m.stats.Untranslated, m.stats.Percent, filtered, dirty))
}

func (m *Model) renderStatus() string {
	if m.lastErr != nil {
		return m.styles.errText.Render(m.lastErr.Error())
	}
	if m.status != "" {
		return m.styles.status.Render(m.status)
	}
	return ""
}

func (m *Model) renderEdit() string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render("Source text") + "\n")
	b.WriteString(m.highlightTerms(m.sess.Source()) + "\n")
	b.WriteString(m.styles.header.Render("Translation") + "\n")
	b.WriteString(m.editArea.View() + "\n")

	terms := m.engine.Glossary().Scan(m.sess.Source())
	if len(terms) > 0 {
		parts := make([]string, 0, len(terms))
		for _, term := range terms {
			if translation, ok := m.engine.Glossary().TranslationFor(term); ok {
				parts = append(parts, fmt.Sprintf("%s — %s", m.styles.term.Render(term), translation))
			}
		}
		b.WriteString("Glossary: " + strings.Join(parts, ", ") + "\n")
	}

	b.WriteString(m.styles.status.Render("ctrl+s confirm, esc cancel, ctrl+r copy source, ctrl+u clear"))
	return b.String()
}

// highlightTerms renders text with glossary occurrences emphasized.
func (m *Model) highlightTerms(text string) string {
	occs := m.engine.Glossary().Occurrences(text)
	if len(occs) == 0 {
		return text
	}
	var b strings.Builder
	cursor := 0
	for _, o := range occs {
		if o.Start < cursor {
			continue // Overlap already rendered
		}
		b.WriteString(text[cursor:o.Start])
		end := o.End
		if end > len(text) {
			end = len(text)
		}
		b.WriteString(m.styles.term.Render(text[o.Start:end]))
		cursor = end
	}
	b.WriteString(text[cursor:])
	return b.String()
}

// columnWidths splits the terminal width over the four columns, favoring
// the two text columns.
func (m *Model) columnWidths() [4]int {
	text := (m.width - 30) / 2
	if text < 10 {
		text = 10
	}
	return [4]int{6, 12, text, text}
}

func truncate(s string, max int) string {
	if max < 1 || len([]rune(s)) <= max {
		return s
	}
	runes := []rune(s)
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
