// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kinoteka/kinoteka/internal/kinopoisk"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20

	// minVotes filters out obscure search hits with almost no ratings.
	minVotes = 50
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected an item.
	ActionSelected
	// ActionSkipped indicates the user skipped the selection.
	ActionSkipped
	// ActionStopped indicates the user stopped processing entirely.
	ActionStopped
)

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection *kinopoisk.SearchFilm
}

type filmItem struct {
	kinopoisk.SearchFilm
}

func (i filmItem) Title() string {
	return fmt.Sprintf("%s (%d)", strings.ToUpper(i.DisplayTitle()), i.Year.Value())
}

func (i filmItem) FilterValue() string {
	return i.DisplayTitle()
}

func (i filmItem) Description() string {
	return i.SearchFilm.Description
}

type itemStyles struct {
	normal        lipgloss.Style
	selected      lipgloss.Style
	typeStyle     lipgloss.Style
	titleStyle    lipgloss.Style
	ratingStyle   lipgloss.Style
	metadataStyle lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		typeStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110")),
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		ratingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")),
		metadataStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
	}
}

type filmDelegate struct {
	styles itemStyles
}

func newDelegate() filmDelegate {
	return filmDelegate{styles: newItemStyles()}
}

func (d filmDelegate) Height() int                         { return 4 }
func (d filmDelegate) Spacing() int                        { return 1 }
func (d filmDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d filmDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	film, ok := item.(filmItem)
	if !ok {
		return
	}

	typeLabel := string(film.Type)
	if typeLabel == "" {
		typeLabel = "FILM"
	}

	typeLine := d.styles.typeStyle.Render(fmt.Sprintf("[%s]", typeLabel))
	titleLine := d.styles.titleStyle.Render(fmt.Sprintf("%s (%d)", strings.ToUpper(film.DisplayTitle()), film.Year.Value()))
	ratingLine := d.styles.ratingStyle.Render(fmt.Sprintf("%.1f/10", film.Rating.Value()))
	metadataLine := d.styles.metadataStyle.Render(formatMetadata(film.SearchFilm, m.Width()-4))

	content := lipgloss.JoinVertical(lipgloss.Left, typeLine, titleLine, ratingLine, metadataLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type model struct {
	list        list.Model
	searchTitle string
	result      SelectionResult
}

func newModel(title string, items []filmItem) *model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	delegate := newDelegate()
	l := list.New(listItems, delegate, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list:        l,
		searchTitle: title,
		result: SelectionResult{
			Action: ActionNone,
		},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(filmItem); ok {
				result := selected.SearchFilm
				m.result = SelectionResult{
					Action:    ActionSelected,
					Selection: &result,
				}
				return m, tea.Quit
			}
		case "s", "esc":
			m.result = SelectionResult{Action: ActionSkipped}
			return m, tea.Quit
		case "ctrl+c", "q":
			m.result = SelectionResult{Action: ActionStopped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render(fmt.Sprintf("Multiple results found for: %s", m.searchTitle))
	listView := m.list.View()
	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		skipButtonStyle.Render(" Skip "),
		lipgloss.NewStyle().Padding(0, 2).Render(""),
		stopButtonStyle.Render(" Stop Processing "),
	)
	help := helpStyle.Render("Up/Down navigate | Enter select | s skip | q stop")
	return lipgloss.JoinVertical(lipgloss.Left, header, listView, buttons, help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	skipButtonStyle = lipgloss.NewStyle().
			MarginTop(1).
			Padding(0, 2).
			Background(lipgloss.Color("178")).
			Foreground(lipgloss.Color("0")).
			Bold(true)

	stopButtonStyle = lipgloss.NewStyle().
			MarginTop(1).
			Padding(0, 2).
			Background(lipgloss.Color("161")).
			Foreground(lipgloss.Color("230")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// FilterObscure drops search hits with too few rating votes to be a
// plausible match.
func FilterObscure(results []kinopoisk.SearchFilm) []kinopoisk.SearchFilm {
	filtered := make([]kinopoisk.SearchFilm, 0, len(results))
	for _, result := range results {
		if result.RatingVotes.Value() >= minVotes {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

// Select presents an interactive selection UI for Kinopoisk search results.
func Select(title string, results []kinopoisk.SearchFilm) (SelectionResult, error) {
	filtered := FilterObscure(results)
	if len(filtered) == 0 {
		return SelectionResult{Action: ActionSkipped}, nil
	}

	items := make([]filmItem, len(filtered))
	for i, result := range filtered {
		items[i] = filmItem{SearchFilm: result}
	}
	m := newModel(title, items)
	finalModel, err := runProgram(m)
	if err != nil {
		return SelectionResult{}, err
	}

	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}

	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

// formatMetadata creates the metadata line with genres, countries and vote count.
func formatMetadata(film kinopoisk.SearchFilm, availableWidth int) string {
	var parts []string

	if len(film.Genres) > 0 {
		genres := make([]string, 0, len(film.Genres))
		for _, g := range film.Genres {
			if g.Genre != "" {
				genres = append(genres, g.Genre)
			}
		}
		if len(genres) > 0 {
			parts = append(parts, strings.Join(genres, "/"))
		}
	}

	if len(film.Countries) > 0 && film.Countries[0].Country != "" {
		parts = append(parts, film.Countries[0].Country)
	}

	if votes := film.RatingVotes.Value(); votes > 0 {
		parts = append(parts, formatVoteCount(votes))
	}

	if len(parts) == 0 {
		return "No metadata available"
	}

	metadata := strings.Join(parts, " | ")
	if availableWidth > 0 && len(metadata) > availableWidth {
		metadata = truncate(metadata, availableWidth)
	}

	return metadata
}

// formatVoteCount formats vote count in a compact way
func formatVoteCount(count int) string {
	if count >= 1000 {
		return fmt.Sprintf("%.1fK votes", float64(count)/1000)
	}
	return fmt.Sprintf("%d votes", count)
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
