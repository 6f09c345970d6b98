package gui

import (
	"bundledit/internal/store"
	"bundledit/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// createTable builds the read-only grid projection of the filtered view.
// The draw callbacks run on Fyne's thread and read only the published view
// snapshot, never the engine; selecting a row posts the edit back onto the
// state loop.
func (a *App) createTable() *widget.Table {
	t := widget.NewTable(
		func() (int, int) {
			a.viewMu.RLock()
			defer a.viewMu.RUnlock()
			return len(a.view.cells), types.FieldCount
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			a.viewMu.RLock()
			defer a.viewMu.RUnlock()
			if id.Row < 0 || id.Row >= len(a.view.cells) ||
				id.Col < 0 || id.Col >= types.FieldCount {
				label.SetText("")
				return
			}
			label.SetText(a.view.cells[id.Row][id.Col])
		},
	)

	t.ShowHeaderRow = true
	t.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	t.UpdateHeader = func(id widget.TableCellID, obj fyne.CanvasObject) {
		label := obj.(*widget.Label)
		if id.Row == -1 && id.Col >= 0 && id.Col < types.FieldCount {
			label.SetText(store.DisplayHeader()[id.Col])
		}
	}

	t.SetColumnWidth(0, 80)
	t.SetColumnWidth(1, 140)
	t.SetColumnWidth(2, 460)
	t.SetColumnWidth(3, 460)

	t.OnSelected = func(id widget.TableCellID) {
		t.UnselectAll()
		a.viewMu.RLock()
		position := -1
		if id.Row >= 0 && id.Row < len(a.view.positions) {
			position = a.view.positions[id.Row]
		}
		a.viewMu.RUnlock()
		if position < 0 {
			return
		}
		a.post(func() { a.openEditDialog(position) })
	}

	return t
}
