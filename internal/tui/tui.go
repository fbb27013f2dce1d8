// Package tui provides a Bubble Tea terminal user interface for
// browsing album list collections.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sushe-ng/sushe/internal/model"
	"github.com/sushe-ng/sushe/internal/store"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	favoriteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	rankStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))
)

// State represents the current UI state.
type State int

const (
	StateCollections State = iota
	StateLists
	StateAlbums
	StateNewCollection
	StateError
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	store     *store.Store
	spinner   spinner.Model
	textInput textinput.Model

	collections []string
	lists       []store.ListInfo
	albums      []model.Album
	listTitle   string

	collection string
	cursor     int
	loading    bool
	err        error

	width  int
	height int
}

// NewModel creates a new TUI model backed by the given store.
func NewModel(s *store.Store) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ti := textinput.New()
	ti.Placeholder = "Collection name"
	ti.CharLimit = 100
	ti.Width = 40

	return Model{
		state:       StateCollections,
		store:       s,
		spinner:     sp,
		textInput:   ti,
		collections: collectionNames(s),
	}
}

func collectionNames(s *store.Store) []string {
	byName := s.GetCollections()
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Message types
type (
	// listsLoadedMsg carries the lists of the selected collection.
	listsLoadedMsg struct {
		Lists []store.ListInfo
	}

	// albumsLoadedMsg carries a fully decoded list.
	albumsLoadedMsg struct {
		Albums []model.Album
		Title  string
		Err    error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.state == StateNewCollection {
			return m.updateNewCollection(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < m.itemCount()-1 {
				m.cursor++
			}

		case "enter":
			return m.descend()

		case "esc":
			return m.ascend()

		case "n":
			if m.state == StateCollections {
				m.state = StateNewCollection
				m.textInput.SetValue("")
				m.textInput.Focus()
				return m, textinput.Blink
			}

		case "f":
			if m.state == StateLists && m.cursor < len(m.lists) {
				info := &m.lists[m.cursor]
				info.IsFavorite = m.store.ToggleFavorite(info.Path)
			}

		case "x":
			if m.state == StateLists && m.cursor < len(m.lists) {
				if m.store.DeleteList(m.lists[m.cursor].Path) {
					return m, m.loadLists(m.collection)
				}
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case listsLoadedMsg:
		m.loading = false
		m.lists = msg.Lists
		m.state = StateLists
		if m.cursor >= len(m.lists) {
			m.cursor = 0
		}

	case albumsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.albums = msg.Albums
			m.listTitle = msg.Title
			m.state = StateAlbums
			m.cursor = 0
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateNewCollection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateCollections
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.textInput.Value())
		if name != "" {
			m.store.CreateCollection(name)
			m.collections = collectionNames(m.store)
		}
		m.state = StateCollections
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) itemCount() int {
	switch m.state {
	case StateCollections:
		return len(m.collections)
	case StateLists:
		return len(m.lists)
	case StateAlbums:
		return len(m.albums)
	}
	return 0
}

func (m Model) descend() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateCollections:
		if m.cursor < len(m.collections) {
			m.collection = m.collections[m.cursor]
			m.cursor = 0
			m.loading = true
			return m, tea.Batch(m.loadLists(m.collection), m.spinner.Tick)
		}
	case StateLists:
		if m.cursor < len(m.lists) {
			m.loading = true
			return m, tea.Batch(m.loadAlbums(m.lists[m.cursor].Path), m.spinner.Tick)
		}
	}
	return m, nil
}

func (m Model) ascend() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateCollections:
		return m, tea.Quit
	case StateLists, StateError:
		m.state = StateCollections
		m.cursor = 0
		m.err = nil
	case StateAlbums:
		m.state = StateLists
		m.cursor = 0
	}
	return m, nil
}

// loadLists fetches the summaries of one collection in background.
func (m Model) loadLists(name string) tea.Cmd {
	return func() tea.Msg {
		return listsLoadedMsg{Lists: m.store.GetCollections()[name]}
	}
}

// loadAlbums decodes the selected list in background.
func (m Model) loadAlbums(path string) tea.Cmd {
	return func() tea.Msg {
		albums, meta, err := m.store.LoadList(path)
		return albumsLoadedMsg{Albums: albums, Title: meta.Title, Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SuShe"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Ranked album lists"))
	b.WriteString("\n\n")

	switch m.state {
	case StateCollections:
		b.WriteString(m.viewCollections())
	case StateLists:
		b.WriteString(m.viewLists())
	case StateAlbums:
		b.WriteString(m.viewAlbums())
	case StateNewCollection:
		b.WriteString(m.viewNewCollection())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewCollections() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Collections:"))
	b.WriteString("\n\n")

	if len(m.collections) == 0 {
		b.WriteString(dimStyle.Render("  (no collections)"))
		b.WriteString("\n")
		return b.String()
	}

	for i, name := range m.collections {
		line := "  " + name
		if i == m.cursor {
			line = selectedStyle.Render("> " + name)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewLists() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(m.collection + ":"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + " loading...")
		b.WriteString("\n")
		return b.String()
	}
	if len(m.lists) == 0 {
		b.WriteString(dimStyle.Render("  (empty collection)"))
		b.WriteString("\n")
		return b.String()
	}

	for i, info := range m.lists {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s (%d albums)", prefix, info.Title, info.AlbumCount)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		if info.IsFavorite {
			line += favoriteStyle.Render(" *")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewAlbums() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(m.listTitle))
	b.WriteString("\n\n")

	if len(m.albums) == 0 {
		b.WriteString(dimStyle.Render("  (empty list)"))
		b.WriteString("\n")
		return b.String()
	}

	for i, a := range m.albums {
		prefix := rankStyle.Render(fmt.Sprintf("%3d. ", i+1))
		line := prefix + a.String()
		if i == m.cursor {
			line = selectedStyle.Render(fmt.Sprintf("%3d. %s", i+1, a.String()))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewNewCollection() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("New collection name:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString("  " + m.err.Error())
	}
	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateCollections:
		return "enter: open | n: new collection | j/k: move | q: quit"
	case StateLists:
		return "enter: open | f: favorite | x: delete | esc: back | q: quit"
	case StateAlbums:
		return "j/k: move | esc: back | q: quit"
	case StateNewCollection:
		return "enter: create | esc: cancel"
	case StateError:
		return "esc: back | q: quit"
	}
	return ""
}

// Run starts the TUI application against the given store.
func Run(s *store.Store) error {
	p := tea.NewProgram(NewModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
