package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marshallshelly/gravel/pkg/schema"
)

// ConfirmationDialog represents a yes/no confirmation dialog
type ConfirmationDialog struct {
	Title       string
	Message     string
	YesSelected bool
}

// NewConfirmationDialog creates a dialog with No preselected.
func NewConfirmationDialog(title, message string) ConfirmationDialog {
	return ConfirmationDialog{Title: title, Message: message}
}

// Update moves the selection. It reports done when enter is pressed.
func (d *ConfirmationDialog) Update(msg tea.KeyMsg) (done bool) {
	switch msg.String() {
	case "left", "h", "y":
		d.YesSelected = true
	case "right", "l", "n":
		d.YesSelected = false
	case "enter":
		return true
	}
	return false
}

// View renders the confirmation dialog
func (d ConfirmationDialog) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n\n")
	b.WriteString(d.Message)
	b.WriteString("\n\n")

	yesButton := inactiveButtonStyle.Render("Yes")
	noButton := inactiveButtonStyle.Render("No")
	if d.YesSelected {
		yesButton = activeButtonStyle.Render("Yes")
	} else {
		noButton = activeButtonStyle.Render("No")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, yesButton, "  ", noButton))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(FormatKey("←/→", "choose") + " • " + FormatKey("enter", "confirm") + " • " + FormatKey("esc", "cancel")))

	return boxStyle.Render(b.String())
}

// SchemaItem is a schema in the browser list.
type SchemaItem struct {
	Schema *schema.Schema
	Status string
}

func (i SchemaItem) FilterValue() string { return i.Schema.Model() }
func (i SchemaItem) Title() string {
	return fmt.Sprintf("%s (%s)", i.Schema.Model(), i.Schema.Table())
}
func (i SchemaItem) Description() string {
	desc := fmt.Sprintf("%d columns, key %s", len(i.Schema.Columns()), i.Schema.PrimaryKey().Name)
	if i.Status != "" {
		desc += " • " + i.Status
	}
	return mutedStyle.Render(desc)
}

// SchemaItemDelegate renders SchemaItems.
type SchemaItemDelegate struct{}

func (d SchemaItemDelegate) Height() int                             { return 2 }
func (d SchemaItemDelegate) Spacing() int                            { return 1 }
func (d SchemaItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d SchemaItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(SchemaItem)
	if !ok {
		return
	}

	var s string
	if index == m.Index() {
		s = selectedItemStyle.Render("▸ " + i.Title() + "\n  " + i.Description())
	} else {
		s = unselectedItemStyle.Render("  " + i.Title() + "\n  " + i.Description())
	}

	_, _ = fmt.Fprint(w, s)
}

// SQLView renders a schema's statements.
func SQLView(s *schema.Schema) string {
	stmts := []string{
		s.CreateSQL(),
		s.SelectByKeySQL(),
		s.InsertSQL(),
		s.UpdateSQL(),
		s.DeleteSQL(),
	}
	return codeStyle.Render(strings.Join(stmts, "\n\n"))
}
