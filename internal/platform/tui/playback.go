package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/beatfall/beatfall/internal/core"
	"github.com/beatfall/beatfall/internal/layout"
	"github.com/beatfall/beatfall/internal/sim"
)

// PlaybackKeyMap defines the key bindings for layout playback.
type PlaybackKeyMap struct {
	Pause   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultPlaybackKeyMap returns default key bindings.
func DefaultPlaybackKeyMap() PlaybackKeyMap {
	return PlaybackKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PlaybackModel replays a solved layout frame by frame: the ball follows its
// recorded trajectory through the platforms while the camera tracks it.
type PlaybackModel struct {
	lay        layout.Layout
	cfg        sim.Config
	platforms  []*sim.Platform
	scene      *sim.Scene
	screen     *core.Screen
	keys       PlaybackKeyMap
	fps        int
	bounces    int
	paused     bool
	done       bool
	standalone bool
	backToList bool
	quitting   bool
	err        error
}

// NewPlaybackModel creates a playback model for a solved layout.
func NewPlaybackModel(lay layout.Layout, fps, width, height int) (PlaybackModel, error) {
	platforms, err := lay.SimPlatforms()
	if err != nil {
		return PlaybackModel{}, err
	}

	m := PlaybackModel{
		lay:       lay,
		cfg:       lay.SimConfig(),
		platforms: platforms,
		screen:    core.NewScreen(width, height),
		keys:      DefaultPlaybackKeyMap(),
		fps:       fps,
	}
	m.reset()
	return m, nil
}

// reset rewinds playback to frame 0.
func (m *PlaybackModel) reset() {
	m.scene = sim.NewReplay(m.cfg, m.platforms)
	m.scene.SetWalls(m.lay.SimWalls(), true)
	m.bounces = 0
	m.done = false
	m.err = nil
}

// Init starts the tick loop.
func (m PlaybackModel) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages.
func (m PlaybackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
			m.backToList = true
			return m, nil
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			return m, nil
		case key.Matches(msg, m.keys.Restart):
			m.reset()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		if !m.paused && !m.done && m.err == nil {
			hit, err := m.scene.Step()
			if err != nil {
				m.err = err
			}
			if hit != nil {
				m.bounces++
			}
			if m.scene.Frame >= m.lay.MaxFrame() {
				m.done = true
			}
		}
		return m, tickCmd(m.fps)
	}
	return m, nil
}

// View renders the current playback frame.
func (m PlaybackModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.drawScene()
	m.drawStatus()
	return RenderScreen(m.screen)
}

// drawScene projects the world onto the cell grid: walls, then platforms,
// then the ball on top. The camera offsets come from the scene.
func (m PlaybackModel) drawScene() {
	viewH := m.screen.Height() - 1 // bottom row is the status line
	if viewH < 1 {
		return
	}
	scaleX := float64(m.screen.Width()) / m.cfg.ArenaW
	scaleY := float64(viewH) / m.cfg.ArenaH

	for _, w := range m.scene.VisibleWalls() {
		m.fillWorldRect(w.Rect, scaleX, scaleY, '█', core.ColorGray)
	}

	for _, p := range m.scene.Platforms {
		c := core.ColorCyan
		if p.Orientation == sim.Horizontal {
			c = core.ColorOrange
		}
		if f, ok := p.BounceFrame(); ok && f <= m.scene.Frame {
			c = core.ColorGreen
		}
		m.fillWorldRect(p.Rect, scaleX, scaleY, '▒', c)
	}

	m.fillWorldRect(m.scene.Ball.Bounds(), scaleX, scaleY, '●', core.ColorBrightWhite)
}

// fillWorldRect draws a world rectangle in screen cells, at least 1x1.
func (m PlaybackModel) fillWorldRect(r core.Rect, scaleX, scaleY float64, ch rune, c core.Color) {
	x := int((r.X - m.scene.OffsetX) * scaleX)
	y := int((r.Y - m.scene.OffsetY) * scaleY)
	w := core.Max(1, int(r.W*scaleX))
	h := core.Max(1, int(r.H*scaleY))
	m.screen.FillRect(x, y, w, h, ch, c)
}

// drawStatus renders the bottom status line.
func (m PlaybackModel) drawStatus() {
	state := "playing"
	switch {
	case m.err != nil:
		state = "diverged"
	case m.done:
		state = "done"
	case m.paused:
		state = "paused"
	}
	status := fmt.Sprintf(" %s | frame %d/%d | bounces %d/%d | space pause  r restart  q quit",
		state, m.scene.Frame, m.lay.MaxFrame(), m.bounces, len(m.lay.Frames))
	m.screen.DrawText(0, m.screen.Height()-1, status)
}

// BackToList reports that the user asked to return to the layout browser.
func (m PlaybackModel) BackToList() bool {
	return m.backToList
}

// IsQuitting reports that the user asked to quit entirely.
func (m PlaybackModel) IsQuitting() bool {
	return m.quitting
}

// RunPlayback runs a standalone playback session in the current terminal.
func RunPlayback(lay layout.Layout, fps, width, height int) error {
	model, err := NewPlaybackModel(lay, fps, width, height)
	if err != nil {
		return err
	}
	model.standalone = true // no list to go back to

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
