package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/gravel/pkg/schema"
)

func testSchemas() []*schema.Schema {
	return []*schema.Schema{
		schema.MustDefine("User",
			schema.StringField("id", schema.PrimaryKey()),
			schema.StringField("name"),
		),
		schema.MustDefine("Blog",
			schema.StringField("id", schema.PrimaryKey()),
			schema.TextField("content"),
		),
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m BrowseModel, keys ...string) BrowseModel {
	t.Helper()

	for _, k := range keys {
		next, _ := m.Update(key(k))
		var ok bool
		m, ok = next.(BrowseModel)
		require.True(t, ok)
	}
	return m
}

func TestBrowse_SQLView(t *testing.T) {
	m := NewBrowseModel(testSchemas(), nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(BrowseModel)

	assert.Contains(t, m.View(), "offline")

	m = press(t, m, "enter")
	assert.Equal(t, ModeSQL, m.mode)
	assert.Contains(t, m.View(), "CREATE TABLE IF NOT EXISTS `user`(")

	m = press(t, m, "esc")
	assert.Equal(t, ModeList, m.mode)
}

func TestBrowse_ActionsNeedDB(t *testing.T) {
	m := NewBrowseModel(testSchemas(), nil)

	next, cmd := m.Update(key("c"))
	assert.Nil(t, cmd)
	assert.Equal(t, ModeList, next.(BrowseModel).mode)

	m = press(t, m, "r")
	assert.Equal(t, ModeList, m.mode)
}

func TestBrowse_ActionResultUpdatesItem(t *testing.T) {
	m := NewBrowseModel(testSchemas(), nil)

	next, _ := m.Update(tableActionMsg{index: 1, action: ActionCount, status: "3 rows"})
	m = next.(BrowseModel)

	item := m.list.Items()[1].(SchemaItem)
	assert.Contains(t, item.Description(), "3 rows")
	assert.Nil(t, m.err)
}

func TestConfirmationDialog(t *testing.T) {
	d := NewConfirmationDialog("Reset table", "Drop user?")
	assert.False(t, d.YesSelected)

	assert.False(t, d.Update(key("y")))
	assert.True(t, d.YesSelected)
	assert.False(t, d.Update(key("n")))
	assert.False(t, d.YesSelected)
	assert.True(t, d.Update(key("enter")))

	assert.Contains(t, d.View(), "Drop user?")
}
