package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/beatfall/beatfall/internal/layout"
	"github.com/beatfall/beatfall/internal/storage"
)

// SessionModel manages the full browsing flow: layout list -> playback ->
// layout list. This is the top-level model for the browse command and for
// SSH sessions.
type SessionModel struct {
	store      *storage.Store
	fps        int
	width      int
	height     int
	browser    BrowserModel
	playback   *PlaybackModel
	inPlayback bool
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, fps, width, height int) SessionModel {
	return SessionModel{
		store:   store,
		fps:     fps,
		width:   width,
		height:  height,
		browser: NewBrowserModel(store, width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.browser.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	if m.inPlayback && m.playback != nil {
		return m.updatePlayback(msg)
	}
	return m.updateBrowser(msg)
}

// updateBrowser handles updates when in the layout list.
func (m SessionModel) updateBrowser(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBrowser, cmd := m.browser.Update(msg)
	if browser, ok := newBrowser.(BrowserModel); ok {
		m.browser = browser
	}

	if m.browser.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.browser.Selected(); selected != nil {
		lay, err := layout.Unmarshal(selected.Data)
		if err != nil {
			// Corrupt entry; stay in the list.
			m.browser = NewBrowserModel(m.store, m.width, m.height)
			return m, nil
		}

		playback, err := NewPlaybackModel(lay, m.fps, m.width, m.height)
		if err != nil {
			m.browser = NewBrowserModel(m.store, m.width, m.height)
			return m, nil
		}

		m.playback = &playback
		m.inPlayback = true
		return m, m.playback.Init()
	}

	return m, cmd
}

// updatePlayback handles updates when replaying a layout.
func (m SessionModel) updatePlayback(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.playback.Update(msg)
	if playback, ok := newModel.(PlaybackModel); ok {
		m.playback = &playback
	}

	if m.playback.BackToList() {
		m.inPlayback = false
		m.playback = nil
		m.browser = NewBrowserModel(m.store, m.width, m.height)
		return m, m.browser.Init()
	}

	if m.playback.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inPlayback && m.playback != nil {
		return m.playback.View()
	}

	return m.browser.View()
}

// RunSession runs the browse flow in the current terminal.
func RunSession(store *storage.Store, fps, width, height int) error {
	model := NewSessionModel(store, fps, width, height)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
