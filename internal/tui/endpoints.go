// SPDX-License-Identifier: MIT
package tui

import (
	"fmt"
	"strings"

	"audioendpoints/internal/audio"
	"audioendpoints/internal/transport"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#25A065")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A0A0A0")).
			Underline(true)
)

var (
	keyQuit    = key.NewBinding(key.WithKeys("q", "ctrl+c"))
	keyUp      = key.NewBinding(key.WithKeys("up", "k"))
	keyDown    = key.NewBinding(key.WithKeys("down", "j"))
	keySelect  = key.NewBinding(key.WithKeys("enter"))
	keyBack    = key.NewBinding(key.WithKeys("esc"))
	keyRefresh = key.NewBinding(key.WithKeys("r"))
)

// ScreenType defines which screen is currently active
type ScreenType int

const (
	ListScreen ScreenType = iota
	DetailScreen
)

// EndpointListModel is the Bubble Tea model listing audio endpoints.
type EndpointListModel struct {
	source        transport.EndpointSource
	endpoints     []audio.Endpoint
	loaded        bool
	selectedIndex int
	viewport      viewport.Model
	ready         bool
	err           error
	activeScreen  ScreenType
}

type endpointsMsg struct {
	endpoints []audio.Endpoint
}

type errMsg struct {
	err error
}

// NewEndpointListModel creates a model that lists endpoints from source.
func NewEndpointListModel(source transport.EndpointSource) EndpointListModel {
	return EndpointListModel{
		source:       source,
		activeScreen: ListScreen,
	}
}

// Init fetches the first endpoint list.
func (m EndpointListModel) Init() tea.Cmd {
	return m.fetchEndpoints
}

func (m EndpointListModel) fetchEndpoints() tea.Msg {
	endpoints, err := m.source.EnumerateEndpoints()
	if err != nil {
		return errMsg{err}
	}
	return endpointsMsg{endpoints}
}

// Update handles input and updates the model
func (m EndpointListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4)
			m.viewport.Style = lipgloss.NewStyle()
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}
		m.refreshContent()

	case endpointsMsg:
		m.endpoints = msg.endpoints
		m.loaded = true
		m.err = nil
		if m.selectedIndex >= len(m.endpoints) {
			m.selectedIndex = max(len(m.endpoints)-1, 0)
		}
		if len(m.endpoints) == 0 {
			m.activeScreen = ListScreen
		}
		m.refreshContent()

	case errMsg:
		m.err = msg.err

	case tea.KeyMsg:
		if key.Matches(msg, keyQuit) {
			return m, tea.Quit
		}

		switch m.activeScreen {
		case ListScreen:
			switch {
			case key.Matches(msg, keyUp):
				if m.selectedIndex > 0 {
					m.selectedIndex--
					m.refreshContent()
				}
			case key.Matches(msg, keyDown):
				if m.selectedIndex < len(m.endpoints)-1 {
					m.selectedIndex++
					m.refreshContent()
				}
			case key.Matches(msg, keySelect):
				if len(m.endpoints) > 0 {
					m.activeScreen = DetailScreen
					m.refreshContent()
				}
			case key.Matches(msg, keyRefresh):
				cmds = append(cmds, m.fetchEndpoints)
			}
		case DetailScreen:
			if key.Matches(msg, keyBack) {
				m.activeScreen = ListScreen
				m.refreshContent()
			}
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// refreshContent re-renders the active screen into the viewport.
func (m *EndpointListModel) refreshContent() {
	if !m.ready {
		return
	}
	if m.activeScreen == DetailScreen {
		m.viewport.SetContent(m.renderEndpointDetail())
		return
	}
	m.viewport.SetContent(m.renderEndpoints())
}

// View renders the UI
func (m EndpointListModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to exit.", m.err)
	}

	var title, help string
	if m.activeScreen == ListScreen {
		title = titleStyle.Render("Audio Endpoints")
		help = infoStyle.Render("↑/↓: Navigate • Enter: Details • r: Refresh • q: Quit")
	} else {
		title = titleStyle.Render("Endpoint Details")
		help = infoStyle.Render("Esc: Back • q: Quit")
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, m.viewport.View(), help)
}

// renderEndpoints formats the endpoint list, grouped by flow.
func (m EndpointListModel) renderEndpoints() string {
	if !m.loaded {
		return "Enumerating endpoints..."
	}
	if len(m.endpoints) == 0 {
		return "No active audio endpoints found."
	}

	var sb strings.Builder
	var lastFlow audio.Flow
	for i, ep := range m.endpoints {
		if ep.Flow != lastFlow {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(sectionStyle.Render(transport.FlowLabel(ep.Flow)))
			sb.WriteString("\n")
			lastFlow = ep.Flow
		}

		line := fmt.Sprintf("  [%d] %s\n", i, ep.DisplayName())
		if i == m.selectedIndex {
			line = highlightStyle.Render(line)
		}
		sb.WriteString(line)
	}

	return sb.String()
}

// renderEndpointDetail formats the details of the selected endpoint.
func (m EndpointListModel) renderEndpointDetail() string {
	if m.selectedIndex >= len(m.endpoints) {
		return ""
	}
	return transport.FormatEndpoint(m.selectedIndex, m.endpoints[m.selectedIndex])
}

// StartEndpointListUI launches the Bubble Tea TUI for listing endpoints.
func StartEndpointListUI(source transport.EndpointSource) error {
	p := tea.NewProgram(
		NewEndpointListModel(source),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
