package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleFiltersKey processes keyboard input for the filters view.
func (m Model) handleFiltersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := filterFields[m.cursor]

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(filterFields)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Decrease):
		m.adjustField(field, -1)
	case key.Matches(msg, m.keys.Increase), key.Matches(msg, m.keys.Toggle):
		m.adjustField(field, 1)
	case key.Matches(msg, m.keys.Edit):
		if field.kind == kindToggle {
			m.adjustField(field, 1)
			return m, nil
		}
		if !field.editable() {
			return m, nil
		}
		m.editing = true
		m.input.SetValue(field.getText(m.snapshot.Filters))
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	}
	return m, nil
}

func (m *Model) adjustField(field filterField, delta int) {
	f := m.snapshot.Filters.Clone()
	if !field.adjust(&f, delta) {
		return
	}
	m.apply(m.store.SetFilters(m.ctx, f))
}

// handleEditKey routes keys to the text input while a tag/text field is
// being edited.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		field := filterFields[m.cursor]
		value := m.input.Value()
		f := m.snapshot.Filters.Clone()
		field.setText(&f, value)
		m.apply(m.store.SetFilters(m.ctx, f))
		m.stopEditing()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.stopEditing()
		return m, nil
	case msg.String() == "ctrl+c":
		m.shutdown()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.input.Blur()
	m.input.Reset()
}

// renderFilters renders the filter form.
func (m Model) renderFilters() string {
	styles := m.theme.Styles()
	f := m.snapshot.Filters

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Filters"))
	b.WriteString("\n\n")

	for i, field := range filterFields {
		label := fmt.Sprintf("%-18s", field.label)
		value := field.display(f)
		if m.editing && i == m.cursor {
			value = m.input.View()
		}
		line := label + " " + value
		if i == m.cursor {
			b.WriteString(styles.Selected.Render("▸ " + line))
		} else {
			b.WriteString("  " + styles.Text.Render(label) + " " + styles.MutedText.Render(value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.snapshot.HasSearched {
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("Last search: %d results (tab to view)", len(m.snapshot.Recommendations))))
	} else {
		b.WriteString(styles.FaintText.Render("Press s to search"))
	}
	return styles.Panel.Width(m.panelWidth()).Render(b.String())
}

func (m Model) panelWidth() int {
	if m.width <= 4 {
		return 60
	}
	return m.width - 2
}
