package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const logoText = "wtd"

// renderHeader renders the logo, API endpoint and state badges.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{styles.Logo.Render(logoText)}
	if base := strings.TrimSpace(m.config.APIBaseURL); base != "" {
		parts = append(parts, styles.MutedText.Render(base))
	}
	if m.config.UserID != "" {
		parts = append(parts, styles.FaintText.Render("user "+m.config.UserID))
	}
	if m.snapshot.IsExpandedSearch {
		parts = append(parts, styles.Badge("expanded", "EXPANDED"))
	}
	if m.snapshot.Filters.UsePublicTransport {
		parts = append(parts, styles.Badge("transit", "TRANSIT"))
	}
	if m.searching || m.estimating {
		parts = append(parts, m.spinner.View())
	}

	line := strings.Join(parts, "  ")
	return styles.Header.Width(max(lipgloss.Width(line), m.width)).Render(line)
}

// renderFooter renders the status line and key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	hints := "s search · t est. time · x expand · R reset · tab view · ? help · q quit"
	if m.editing {
		hints = "enter save · esc cancel · comma separates tags"
	}

	var status string
	switch {
	case m.status == "":
	case m.statusIsErr:
		status = styles.DangerText.Render(m.status) + "  "
	default:
		status = styles.InfoText.Render(m.status) + "  "
	}
	return styles.Footer.Render(status + hints)
}
