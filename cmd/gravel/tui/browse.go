// Package tui implements the interactive schema browser.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marshallshelly/gravel/pkg/model"
	"github.com/marshallshelly/gravel/pkg/runtime"
	"github.com/marshallshelly/gravel/pkg/schema"
)

// BrowseMode is the current screen of the browser.
type BrowseMode int

const (
	ModeList BrowseMode = iota
	ModeSQL
	ModeConfirm
)

// Table actions
const (
	ActionCreate = "create"
	ActionCount  = "count"
	ActionReset  = "reset"
)

// BrowseModel is the Bubbletea model of `gravel browse`.
type BrowseModel struct {
	mode         BrowseMode
	list         list.Model
	confirmation ConfirmationDialog
	db           *runtime.DB
	err          error
	width        int
	height       int
}

// NewBrowseModel lists schemas. Without a db the table actions are disabled.
func NewBrowseModel(schemas []*schema.Schema, db *runtime.DB) BrowseModel {
	items := make([]list.Item, len(schemas))
	for i, s := range schemas {
		items[i] = SchemaItem{Schema: s}
	}

	l := list.New(items, SchemaItemDelegate{}, 0, 0)
	l.Title = "Models"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return BrowseModel{
		mode: ModeList,
		list: l,
		db:   db,
	}
}

// Init initializes the model
func (m BrowseModel) Init() tea.Cmd {
	return tea.EnterAltScreen
}

type tableActionMsg struct {
	index  int
	action string
	status string
	err    error
}

func tableActionCmd(db *runtime.DB, index int, s *schema.Schema, action string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		bound := model.Bind(db, s)

		msg := tableActionMsg{index: index, action: action}
		switch action {
		case ActionCreate:
			msg.err = bound.CreateTable(ctx)
			msg.status = "table created"
		case ActionReset:
			msg.err = bound.DropAndRecreateTable(ctx)
			msg.status = "table reset"
		case ActionCount:
			n, err := bound.Count(ctx)
			msg.err = err
			msg.status = fmt.Sprintf("%d rows", n)
		}
		return msg
	}
}

func (m BrowseModel) selected() (SchemaItem, bool) {
	item, ok := m.list.SelectedItem().(SchemaItem)
	return item, ok
}

// Update handles messages
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tableActionMsg:
		item, ok := m.list.Items()[msg.index].(SchemaItem)
		if !ok {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			item.Status = dangerStyle.Render(msg.action + " failed")
		} else {
			m.err = nil
			item.Status = successStyle.Render(msg.status)
		}
		return m, m.list.SetItem(msg.index, item)

	case tea.KeyMsg:
		switch m.mode {
		case ModeList:
			if m.list.FilterState() == list.Filtering {
				break
			}
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit

			case "enter", " ":
				if _, ok := m.selected(); ok {
					m.mode = ModeSQL
				}
				return m, nil

			case "c", "n":
				item, ok := m.selected()
				if !ok || m.db == nil {
					return m, nil
				}
				action := ActionCreate
				if msg.String() == "n" {
					action = ActionCount
				}
				return m, tableActionCmd(m.db, m.list.Index(), item.Schema, action)

			case "r":
				item, ok := m.selected()
				if !ok || m.db == nil {
					return m, nil
				}
				m.confirmation = NewConfirmationDialog(
					"Reset table",
					fmt.Sprintf("Drop and recreate %s?\nEvery row will be lost.", item.Schema.Table()),
				)
				m.mode = ModeConfirm
				return m, nil
			}

		case ModeSQL:
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc", "q", "enter", "backspace":
				m.mode = ModeList
			}
			return m, nil

		case ModeConfirm:
			switch msg.String() {
			case "ctrl+c", "q", "esc":
				m.mode = ModeList
				return m, nil
			}
			if !m.confirmation.Update(msg) {
				return m, nil
			}
			m.mode = ModeList
			item, ok := m.selected()
			if !m.confirmation.YesSelected || !ok {
				return m, nil
			}
			return m, tableActionCmd(m.db, m.list.Index(), item.Schema, ActionReset)
		}
	}

	if m.mode == ModeList {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the UI
func (m BrowseModel) View() string {
	switch m.mode {
	case ModeSQL:
		item, _ := m.selected()
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(item.Title()),
			SQLView(item.Schema),
			helpStyle.Render(FormatKey("esc", "back")),
		)

	case ModeConfirm:
		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			m.confirmation.View(),
		)
	}

	keys := FormatKey("↑/↓", "navigate") + " • " + FormatKey("enter", "sql")
	if m.db != nil {
		keys += " • " + FormatKey("c", "create") + " • " + FormatKey("n", "count") + " • " + FormatKey("r", "reset")
	} else {
		keys += " • " + warningStyle.Render("offline")
	}
	keys += " • " + FormatKey("q", "quit")

	views := []string{m.list.View()}
	if m.err != nil {
		views = append(views, dangerStyle.Render(m.err.Error()))
	}
	views = append(views, helpStyle.Render(keys))
	return lipgloss.JoinVertical(lipgloss.Left, views...)
}

// RunBrowseUI starts the schema browser.
func RunBrowseUI(schemas []*schema.Schema, db *runtime.DB) error {
	p := tea.NewProgram(NewBrowseModel(schemas, db))
	_, err := p.Run()
	return err
}
