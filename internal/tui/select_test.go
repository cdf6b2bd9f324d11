package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoteka/kinoteka/internal/kinopoisk"
)

func sampleResults() []kinopoisk.SearchFilm {
	return []kinopoisk.SearchFilm{
		{FilmID: 301, NameRu: "Матрица", Year: 1999, Rating: 8.5, RatingVotes: 500000},
		{FilmID: 302, NameEn: "The Matrix Reloaded", Year: 2003, Rating: 7.1, RatingVotes: 300000},
		{FilmID: 999, NameEn: "Matrix Fan Film", Year: 2015, Rating: 5.0, RatingVotes: 12},
	}
}

func TestFilterObscure(t *testing.T) {
	filtered := FilterObscure(sampleResults())

	require.Len(t, filtered, 2, "low-vote results must be dropped")
	assert.Equal(t, 301, filtered[0].FilmID.Value())
	assert.Equal(t, 302, filtered[1].FilmID.Value())
}

func TestSelectAllFilteredOut(t *testing.T) {
	results := []kinopoisk.SearchFilm{
		{FilmID: 1, NameEn: "Obscure", RatingVotes: 3},
	}

	result, err := Select("obscure", results)
	require.NoError(t, err)
	assert.Equal(t, ActionSkipped, result.Action)
	assert.Nil(t, result.Selection)
}

// stubProgram replaces the bubbletea runtime and feeds scripted key
// presses through the model.
func stubProgram(t *testing.T, keys ...string) {
	t.Helper()

	orig := runProgram
	runProgram = func(m tea.Model) (tea.Model, error) {
		current := m
		for _, key := range keys {
			var msg tea.Msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
			switch key {
			case "enter":
				msg = tea.KeyMsg{Type: tea.KeyEnter}
			case "esc":
				msg = tea.KeyMsg{Type: tea.KeyEsc}
			case "down":
				msg = tea.KeyMsg{Type: tea.KeyDown}
			}
			current, _ = current.Update(msg)
		}
		return current, nil
	}
	t.Cleanup(func() { runProgram = orig })
}

func TestSelectFirstResult(t *testing.T) {
	stubProgram(t, "enter")

	result, err := Select("matrix", sampleResults())
	require.NoError(t, err)

	assert.Equal(t, ActionSelected, result.Action)
	require.NotNil(t, result.Selection)
	assert.Equal(t, 301, result.Selection.FilmID.Value())
}

func TestSelectSecondResult(t *testing.T) {
	stubProgram(t, "down", "enter")

	result, err := Select("matrix", sampleResults())
	require.NoError(t, err)

	assert.Equal(t, ActionSelected, result.Action)
	require.NotNil(t, result.Selection)
	assert.Equal(t, 302, result.Selection.FilmID.Value())
}

func TestSelectSkip(t *testing.T) {
	stubProgram(t, "s")

	result, err := Select("matrix", sampleResults())
	require.NoError(t, err)
	assert.Equal(t, ActionSkipped, result.Action)
}

func TestSelectStop(t *testing.T) {
	stubProgram(t, "q")

	result, err := Select("matrix", sampleResults())
	require.NoError(t, err)
	assert.Equal(t, ActionStopped, result.Action)
}
