package cli

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/depsolve/pkg/resolver"
	"github.com/matzehuels/depsolve/pkg/universe"
)

func loadResult(t *testing.T) *universe.Result {
	t.Helper()
	req, err := universe.Load("testdata/request.toml")
	require.NoError(t, err)
	res, err := universe.Solve(context.Background(), resolver.New(resolver.Options{}), req, nil)
	require.NoError(t, err)
	return res
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestResultModelNavigation(t *testing.T) {
	m := NewResultModel(loadResult(t))

	next, _ := m.Update(key("j"))
	m = next.(ResultModel)
	assert.Equal(t, 1, m.Cursor)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(ResultModel)
	assert.Equal(t, 2, m.Cursor, "cursor stops at the last package")

	next, _ = m.Update(key("g"))
	m = next.(ResultModel)
	assert.Equal(t, 0, m.Cursor)

	next, _ = m.Update(key("G"))
	m = next.(ResultModel)
	assert.Equal(t, 2, m.Cursor)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestResultModelScroll(t *testing.T) {
	m := NewResultModel(loadResult(t))
	m.Height = 1

	next, _ := m.Update(key("j"))
	next, _ = next.Update(key("j"))
	m = next.(ResultModel)
	assert.Equal(t, 2, m.Offset)

	next, _ = m.Update(key("k"))
	m = next.(ResultModel)
	assert.Equal(t, 1, m.Offset)
}

func TestResultModelView(t *testing.T) {
	m := NewResultModel(loadResult(t))

	view := m.View()
	assert.Contains(t, view, "Install Set")
	assert.Contains(t, view, "[1/3]")
	assert.Contains(t, view, "depends on (0)")
	assert.Contains(t, view, "required by (2)")

	next, _ := m.Update(key("G"))
	view = next.View()
	assert.Contains(t, view, "depends on (2)")
	assert.Contains(t, view, "auth")
	assert.Contains(t, view, "≥ 1.0.0")
	assert.Contains(t, view, "required by (0)")
}

func TestResultModelEmpty(t *testing.T) {
	m := NewResultModel(&universe.Result{Graph: loadResult(t).Graph})
	assert.Contains(t, m.View(), "nothing to install")

	next, _ := m.Update(key("G"))
	assert.Equal(t, 0, next.(ResultModel).Cursor)
}
