// Package gui is the Fyne presentation layer. It owns widgets and dialogs
// only; filtering, stats, glossary matching and edit tracking live in the
// editor engine and its core packages.
//
// Engine state has exactly one mutator: the state loop goroutine started by
// Run. Widget callbacks, the background loader and the file watcher never
// touch the engine directly; they queue a call with post, the GUI's
// counterpart of the TUI's message loop. The table widget draws from an
// immutable view snapshot published by refreshView, so the draw path reads
// no engine state at all.
package gui

import (
	"fmt"
	"sync"

	"bundledit/internal/config"
	"bundledit/internal/editor"
	"bundledit/internal/log"
	"bundledit/internal/watch"
	"bundledit/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// viewSnapshot is one immutable rendering of the filtered view. positions
// holds the original-table position of each visible row; cells holds the
// text the table widget draws, row-aligned with positions.
type viewSnapshot struct {
	positions []int
	cells     [][]string
}

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	engine     *editor.Engine
	watcher    *watch.Watcher

	// Queue of state mutations, drained by the state loop goroutine.
	calls chan func()

	// Current filter state. State-loop only.
	predicate types.Predicate

	// Published view snapshot, read by the table draw callbacks.
	viewMu sync.RWMutex
	view   viewSnapshot

	// Widgets refreshed outside their creation scope
	table      *widget.Table
	statsLabel *widget.Label
	openButton *widget.Button
	saveButton *widget.Button
}

// NewApp creates a new GUI application
func NewApp(cfg *config.Config, engine *editor.Engine) *App {
	fyneApp := app.NewWithID("io.github.bundledit")

	a := &App{
		fyneApp: fyneApp,
		cfg:     cfg,
		engine:  engine,
		calls:   make(chan func(), 16),
	}

	a.mainWindow = a.fyneApp.NewWindow("Bundle Editor")

	if cfg.Settings.WatchFile {
		watcher, err := watch.New()
		if err != nil {
			log.Errorf("Failed to create file watcher: %v", err)
			// GUI can still be used without the watcher
		} else {
			a.watcher = watcher
		}
	}

	return a
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// post queues fn for the state loop goroutine, the sole owner of the engine
// and the filter state.
func (a *App) post(fn func()) {
	a.calls <- fn
}

// runStateLoop applies queued state mutations one at a time.
func (a *App) runStateLoop() {
	for fn := range a.calls {
		fn()
	}
}

// Run starts the GUI application
func (a *App) Run() {
	a.setupMainWindow()

	go a.runStateLoop()

	if a.watcher != nil {
		if err := a.watcher.Start(); err == nil {
			go a.consumeFileEvents()
		}
	}

	if a.cfg.Files.AutoLoad && a.cfg.Files.LastOpened != "" {
		path := a.cfg.Files.LastOpened
		a.post(func() { a.loadBundle(path) })
	}

	a.mainWindow.Show()
	a.fyneApp.Run()

	if a.watcher != nil {
		a.watcher.Stop()
	}
}

// setupMainWindow sets up the main window content
func (a *App) setupMainWindow() {
	a.mainWindow.Resize(fyne.NewSize(1280, 600))

	searchEntry := widget.NewEntry()
	searchEntry.SetPlaceHolder("Search source or translation text")
	searchEntry.OnChanged = func(text string) {
		a.post(func() {
			a.predicate.Text = text
			a.refreshView()
		})
	}

	typeEntry := widget.NewEntry()
	typeEntry.SetPlaceHolder("File type (empty or ALL for any)")
	typeEntry.OnChanged = func(text string) {
		a.post(func() {
			a.predicate.FileType = text
			a.refreshView()
		})
	}

	untranslatedCheck := widget.NewCheck("Show only untranslated", func(checked bool) {
		a.post(func() {
			a.predicate.UntranslatedOnly = checked
			a.refreshView()
		})
	})

	a.statsLabel = widget.NewLabel("No data")

	a.openButton = widget.NewButton("Open CSV", func() {
		a.post(func() { a.promptOpen() })
	})
	a.saveButton = widget.NewButton("Save CSV", func() {
		a.post(func() { a.saveBundle() })
	})

	buttons := container.NewHBox(a.openButton, a.saveButton, layout.NewSpacer(), a.statsLabel)

	topLayout := container.NewVBox(
		searchEntry,
		typeEntry,
		untranslatedCheck,
		buttons,
	)

	a.table = a.createTable()

	content := container.NewBorder(
		topLayout,
		nil, nil, nil,
		a.table,
	)

	a.mainWindow.SetContent(content)
}

// promptOpen asks for a bundle file, gating on unsaved edits first.
// State-loop only.
func (a *App) promptOpen() {
	if a.engine.Dirty() && a.cfg.Settings.ConfirmDirty {
		dialog.ShowConfirm("Unsaved changes",
			"The current bundle has unsaved changes. Save before opening another file?",
			func(save bool) {
				a.post(func() {
					if save {
						if err := a.engine.Save(); err != nil {
							a.ShowError("Failed to save bundle", err)
							return
						}
					}
					a.showOpenDialog()
				})
			},
			a.mainWindow)
		return
	}
	a.showOpenDialog()
}

func (a *App) showOpenDialog() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		a.post(func() { a.loadBundle(path) })
	}, a.mainWindow)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv"}))
	fd.Show()
}

// loadBundle kicks off the background load. The open action stays disabled
// until the completion callback fires; the engine rejects a second load
// while one is pending either way. The loader goroutine only queues the
// result; adoption happens back on the state loop. State-loop only.
func (a *App) loadBundle(path string) {
	a.openButton.Disable()
	err := a.engine.LoadAsync(path, func(res editor.LoadResult) {
		a.post(func() { a.onBundleLoaded(res) })
	})
	if err != nil {
		a.openButton.Enable()
		a.ShowError("Failed to start load", err)
	}
}

// onBundleLoaded applies a finished load. A failed load leaves the previous
// table untouched and only reports the error. State-loop only.
func (a *App) onBundleLoaded(res editor.LoadResult) {
	a.openButton.Enable()
	if res.Err != nil {
		a.ShowError("Failed to load bundle", res.Err)
		return
	}
	a.engine.Adopt(res)
	if a.watcher != nil {
		if err := a.watcher.SetFile(res.Path); err != nil {
			log.Warnf("could not watch %s: %v", res.Path, err)
		}
	}
	a.mainWindow.SetTitle(fmt.Sprintf("Bundle Editor - %s", res.Path))
	a.refreshView()
}

// saveBundle writes the open bundle back out. State-loop only.
func (a *App) saveBundle() {
	if a.engine.Table() == nil {
		a.ShowInfo("Nothing to save. Open a bundle first.")
		return
	}
	if err := a.engine.Save(); err != nil {
		a.ShowError("Failed to save bundle", err)
		return
	}
	a.refreshView()
}

// refreshView recomputes the filtered positions and stats from the engine
// and publishes a fresh snapshot for the table widget. The view is always
// rebuilt from scratch, never patched. State-loop only.
func (a *App) refreshView() {
	if a.engine.Table() == nil {
		return
	}
	positions, stats := a.engine.ApplyFilter(a.predicate)
	cells := make([][]string, len(positions))
	for i, pos := range positions {
		row, err := a.engine.Table().Get(pos)
		if err != nil {
			cells[i] = make([]string, types.FieldCount)
			continue
		}
		cells[i] = row.Fields()
	}

	a.viewMu.Lock()
	a.view = viewSnapshot{positions: positions, cells: cells}
	a.viewMu.Unlock()

	a.statsLabel.SetText(fmt.Sprintf("%d rows, %d untranslated (%d%% translated)",
		stats.Total, stats.Untranslated, stats.Percent))
	a.table.Refresh()
}

// consumeFileEvents queues a reload offer when the open bundle changes on
// disk. Runs on its own goroutine; all state access is posted.
func (a *App) consumeFileEvents() {
	for mod := range a.watcher.FileChannel() {
		path := mod.Path
		a.post(func() { a.offerReload(path) })
	}
}

// offerReload asks whether to reload an externally modified bundle.
// State-loop only.
func (a *App) offerReload(path string) {
	message := "The open bundle was modified by another program. Reload it?"
	if a.engine.Dirty() {
		message = "The open bundle was modified by another program.\nReloading will discard your unsaved edits. Reload anyway?"
	}
	dialog.ShowConfirm("File changed on disk", message,
		func(reload bool) {
			if reload {
				a.post(func() { a.loadBundle(path) })
			}
		},
		a.mainWindow)
}

// ShowError displays an error dialog
func (a *App) ShowError(title string, err error) {
	if err == nil {
		return
	}
	log.LogWithFields(log.F("error", err)).Error(title)
	dialog.ShowError(err, a.mainWindow)
}

// ShowInfo displays an information dialog
func (a *App) ShowInfo(message string) {
	dialog.ShowInformation("Information", message, a.mainWindow)
}
