package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ssafy-wtd/wtd/internal/activity"
)

// handleResultsKey processes keyboard input for the results view.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.Recommendations)
	if count == 0 {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < count-1 {
			m.selected++
		}
	}
	return m, nil
}

// renderResults renders the recommendation list. Expanded search also shows
// each place's description.
func (m Model) renderResults() string {
	styles := m.theme.Styles()
	places := m.snapshot.Recommendations

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Recommendations"))
	b.WriteString("\n\n")

	switch {
	case m.searching:
		b.WriteString(m.spinner.View() + " " + styles.MutedText.Render("Asking for recommendations…"))
	case !m.snapshot.HasSearched:
		b.WriteString(styles.FaintText.Render("No search yet. Press s to search with the current filters."))
	case len(places) == 0:
		b.WriteString(styles.FaintText.Render("No places matched. Try a longer travel time or fewer categories."))
	default:
		width := m.panelWidth() - 4
		for i, p := range places {
			b.WriteString(m.renderPlace(i, p, width))
			b.WriteString("\n")
		}
	}
	return styles.Panel.Width(m.panelWidth()).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderPlace(i int, p activity.PlaceInfo, width int) string {
	styles := m.theme.Styles()

	name := truncate(p.PlaceName, max(10, width/2))
	meta := fmt.Sprintf("%s · %s · %s", orDash(p.Category), formatDistance(p.DistanceMeter), formatMinutes(p.TravelTimeMin))

	var line string
	if i == m.selected {
		line = styles.Selected.Render("▸ " + name)
	} else {
		line = "  " + styles.Text.Render(name)
	}
	line += "  " + styles.MutedText.Render(meta)
	if p.IsEcoFriendly {
		line += " " + styles.Badge("eco", "ECO")
	}

	if m.snapshot.IsExpandedSearch || i == m.selected {
		if desc := strings.TrimSpace(p.Description); desc != "" {
			line += "\n    " + styles.FaintText.Render(truncate(desc, max(10, width-4)))
		}
	}
	return line
}
