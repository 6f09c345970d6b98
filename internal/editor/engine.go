// Package editor binds the record store, filter engine, glossary matcher and
// edit sessions behind the single surface the GUI and TUI adapters talk to.
// All table mutation happens on the adapter's event loop; the engine's only
// concurrency is the background bundle load, and at most one load is ever in
// flight.
package editor

import (
	"sync"

	"bundledit/internal/config"
	"bundledit/internal/errors"
	"bundledit/internal/filter"
	"bundledit/internal/glossary"
	"bundledit/internal/log"
	"bundledit/internal/session"
	"bundledit/internal/store"
	"bundledit/pkg/types"
)

// LoadResult is what a background load delivers back to the owning event
// loop. The engine state is untouched until the owner calls Adopt.
type LoadResult struct {
	Path  string
	Table *store.Table
	Err   error
}

// Engine owns the open bundle and its supporting state.
type Engine struct {
	cfg   *config.Config
	gloss *glossary.Glossary

	table *store.Table
	path  string

	mu      sync.Mutex
	loading bool
}

// New creates an engine with no bundle loaded and an empty glossary.
func New(cfg *config.Config) *Engine {
	return &Engine{
		cfg:   cfg,
		gloss: glossary.Empty(),
	}
}

// SetGlossary installs the term list used for highlighting. A failed
// glossary load leaves the empty glossary in place; the editor stays usable.
func (e *Engine) SetGlossary(g *glossary.Glossary) {
	if g == nil {
		g = glossary.Empty()
	}
	e.gloss = g
}

// Glossary returns the installed glossary.
func (e *Engine) Glossary() *glossary.Glossary {
	return e.gloss
}

// Table returns the open bundle, or nil before the first successful load.
func (e *Engine) Table() *store.Table {
	return e.table
}

// Path returns the file the open bundle came from.
func (e *Engine) Path() string {
	return e.path
}

// Loading reports whether a background load is in flight. Adapters disable
// the open action while it is.
func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// LoadAsync reads and parses the bundle at path off the caller's thread and
// hands the result to deliver, which runs on the loader goroutine. The owner
// must funnel the result back to its event loop and call Adopt there.
// A second load while one is pending is rejected.
func (e *Engine) LoadAsync(path string, deliver func(LoadResult)) error {
	e.mu.Lock()
	if e.loading {
		e.mu.Unlock()
		return errors.New("a load is already in progress")
	}
	e.loading = true
	e.mu.Unlock()

	go func() {
		t, err := store.ReadFile(path)
		if err != nil {
			log.LogWithFields(log.F("file", path), log.F("error", err)).Error("bundle load failed")
		} else {
			log.LogWithFields(log.F("file", path), log.F("rows", t.Len())).Info("bundle loaded")
		}
		deliver(LoadResult{Path: path, Table: t, Err: err})
		e.mu.Lock()
		e.loading = false
		e.mu.Unlock()
	}()
	return nil
}

// Load reads the bundle at path synchronously and adopts it. Used by the CLI
// commands; the GUI and TUI go through LoadAsync.
func (e *Engine) Load(path string) error {
	t, err := store.ReadFile(path)
	if err != nil {
		return err
	}
	e.Adopt(LoadResult{Path: path, Table: t})
	return nil
}

// Adopt installs a successful load result and records the last-opened
// pointer. A failed result is ignored here so the prior table stays valid;
// the adapter reports the error to the user.
func (e *Engine) Adopt(res LoadResult) {
	if res.Err != nil || res.Table == nil {
		return
	}
	e.table = res.Table
	e.path = res.Path

	e.cfg.Files.LastOpened = res.Path
	if err := e.cfg.Save(); err != nil {
		log.Warnf("could not persist last-opened file: %v", err)
	}
}

// ApplyFilter recomputes the visible positions and table-wide stats.
func (e *Engine) ApplyFilter(p types.Predicate) ([]int, types.Stats) {
	if e.table == nil {
		return nil, types.Stats{}
	}
	return filter.Apply(e.table, p), filter.Stats(e.table)
}

// Stats computes progress over the whole open bundle.
func (e *Engine) Stats() types.Stats {
	if e.table == nil {
		return types.Stats{}
	}
	return filter.Stats(e.table)
}

// OpenEdit starts an edit session for the row at the given original-table
// position.
func (e *Engine) OpenEdit(position int) (*session.Session, error) {
	if e.table == nil {
		return nil, errors.New("no bundle loaded")
	}
	row, err := e.table.Get(position)
	if err != nil {
		return nil, err
	}
	return session.New(position, row), nil
}

// CommitEdit confirms the session and writes its working text into the
// table at the session's original position.
func (e *Engine) CommitEdit(s *session.Session) error {
	if e.table == nil {
		return errors.New("no bundle loaded")
	}
	text, err := s.Commit()
	if err != nil {
		return err
	}
	return e.table.SetTranslation(s.Position(), text)
}

// Save writes the open bundle back to the file it was loaded from.
func (e *Engine) Save() error {
	if e.table == nil {
		return errors.New("no bundle loaded")
	}
	if e.path == "" {
		return errors.New("no file path for bundle")
	}
	if err := e.table.WriteFile(e.path); err != nil {
		return err
	}
	log.LogWithFields(log.F("file", e.path)).Info("bundle saved")
	return nil
}

// Dirty reports whether the open bundle has unsaved edits.
func (e *Engine) Dirty() bool {
	return e.table != nil && e.table.Dirty()
}
