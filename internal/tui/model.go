// Package tui is the terminal presentation layer, a second adapter over the
// same editor engine the GUI uses.
package tui

import (
	"bundledit/internal/config"
	"bundledit/internal/editor"
	"bundledit/internal/session"
	"bundledit/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type mode int

const (
	modeBrowse mode = iota
	modeLoading
	modeTextFilter
	modeTypeFilter
	modeEdit
	modeQuitPrompt
)

// loadedMsg delivers a finished background load to the event loop.
type loadedMsg struct {
	res editor.LoadResult
}

// Model is the bubbletea model for the bundle editor.
type Model struct {
	engine *editor.Engine
	cfg    *config.Config

	// Path to load on startup; consumed by Init
	pendingPath string

	// Filter state and derived view
	predicate types.Predicate
	visible   []int
	stats     types.Stats

	// Navigation
	cursor    int
	viewportY int
	width     int
	height    int

	// Mode-specific inputs
	mode        mode
	filterInput textinput.Model
	editArea    textarea.Model
	sess        *session.Session

	// UI components
	keys    keyMap
	help    help.Model
	styles  styleSet
	status  string
	lastErr error
}

// New creates a TUI model that loads path on startup.
func New(cfg *config.Config, engine *editor.Engine, path string) *Model {
	m := &Model{
		engine:      engine,
		cfg:         cfg,
		pendingPath: path,
		keys:        defaultKeyMap(),
		help:        help.New(),
		styles:      newStyles(cfg),
		width:       80,
		height:      24,
		mode:        modeLoading,
	}
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return loadBundleCmd(m.engine, m.pendingPath)
}

// loadBundleCmd runs the bundle load off the event loop and funnels the
// result back as a message.
func loadBundleCmd(engine *editor.Engine, path string) tea.Cmd {
	return func() tea.Msg {
		ch := make(chan editor.LoadResult, 1)
		if err := engine.LoadAsync(path, func(res editor.LoadResult) {
			ch <- res
		}); err != nil {
			return loadedMsg{editor.LoadResult{Path: path, Err: err}}
		}
		return loadedMsg{<-ch}
	}
}

// refreshView recomputes the filtered positions and stats from the engine.
// The cursor is clamped into the new view.
func (m *Model) refreshView() {
	m.visible, m.stats = m.engine.ApplyFilter(m.predicate)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.viewportY > m.cursor {
		m.viewportY = m.cursor
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		if msg.res.Err != nil {
			m.lastErr = msg.res.Err
			if m.engine.Table() == nil {
				// Nothing usable on screen; bail out with the error shown
				// by the command wrapper.
				return m, tea.Quit
			}
			m.mode = modeBrowse
			return m, nil
		}
		m.engine.Adopt(msg.res)
		m.lastErr = nil
		m.mode = modeBrowse
		m.refreshView()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeTextFilter, modeTypeFilter:
			return m.updateFilterInput(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeQuitPrompt:
			return m.updateQuitPrompt(msg)
		case modeLoading:
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.engine.Dirty() && m.cfg.Settings.ConfirmDirty {
			m.mode = modeQuitPrompt
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.viewportY {
				m.viewportY = m.cursor
			}
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
			if m.cursor >= m.viewportY+m.tableRows() {
				m.viewportY++
			}
		}

	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= m.tableRows()
		if m.cursor < 0 {
			m.cursor = 0
		}
		if m.cursor < m.viewportY {
			m.viewportY = m.cursor
		}

	case key.Matches(msg, m.keys.PageDown):
		m.cursor += m.tableRows()
		if m.cursor >= len(m.visible) {
			m.cursor = len(m.visible) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		if m.cursor >= m.viewportY+m.tableRows() {
			m.viewportY = m.cursor - m.tableRows() + 1
		}

	case key.Matches(msg, m.keys.Search):
		m.mode = modeTextFilter
		m.filterInput = textinput.New()
		m.filterInput.Placeholder = "Search source or translation text"
		m.filterInput.SetValue(m.predicate.Text)
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.TypeFilter):
		m.mode = modeTypeFilter
		m.filterInput = textinput.New()
		m.filterInput.Placeholder = "File type (empty or ALL for any)"
		m.filterInput.SetValue(m.predicate.FileType)
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Untranslated):
		m.predicate.UntranslatedOnly = !m.predicate.UntranslatedOnly
		m.refreshView()

	case key.Matches(msg, m.keys.Save):
		if err := m.engine.Save(); err != nil {
			m.lastErr = err
		} else {
			m.lastErr = nil
			m.status = "Saved " + m.engine.Path()
		}

	case key.Matches(msg, m.keys.Edit):
		return m.openEdit()
	}
	return m, nil
}

func (m *Model) updateFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Accept):
		if m.mode == modeTextFilter {
			m.predicate.Text = m.filterInput.Value()
		} else {
			m.predicate.FileType = m.filterInput.Value()
		}
		m.mode = modeBrowse
		m.refreshView()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) openEdit() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return m, nil
	}
	sess, err := m.engine.OpenEdit(m.visible[m.cursor])
	if err != nil {
		m.lastErr = err
		return m, nil
	}
	m.sess = sess
	m.mode = modeEdit
	m.editArea = textarea.New()
	m.editArea.SetWidth(m.width - 4)
	m.editArea.SetHeight(5)
	m.editArea.SetValue(sess.Working())
	m.editArea.Focus()
	return m, textarea.Blink
}

func (m *Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Commit):
		_ = m.sess.SetWorking(m.editArea.Value())
		if err := m.engine.CommitEdit(m.sess); err != nil {
			m.lastErr = err
		} else {
			m.lastErr = nil
			m.status = "Translation updated"
		}
		m.sess = nil
		m.mode = modeBrowse
		m.refreshView()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		_ = m.sess.Discard()
		m.sess = nil
		m.mode = modeBrowse
		return m, nil

	case key.Matches(msg, m.keys.Clone):
		_ = m.sess.Clone()
		m.editArea.SetValue(m.sess.Working())
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		_ = m.sess.Clear()
		m.editArea.SetValue(m.sess.Working())
		return m, nil
	}
	var cmd tea.Cmd
	m.editArea, cmd = m.editArea.Update(msg)
	_ = m.sess.SetWorking(m.editArea.Value())
	return m, cmd
}

func (m *Model) updateQuitPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := m.engine.Save(); err != nil {
			m.lastErr = err
			m.mode = modeBrowse
			return m, nil
		}
		return m, tea.Quit
	case "n", "N":
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Cancel) {
		m.mode = modeBrowse
	}
	return m, nil
}

// tableRows is how many data rows fit in the current terminal height.
func (m *Model) tableRows() int {
	// Header, stats line, status line, help line plus table chrome.
	rows := m.height - 8
	if rows < 1 {
		rows = 1
	}
	return rows
}
