package ui

import (
	"fmt"
	"strings"
)

// truncate shortens s to at most limit runes, ending with an ellipsis.
func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}

func formatDistance(meters int) string {
	switch {
	case meters <= 0:
		return "—"
	case meters < 1000:
		return fmt.Sprintf("%d m", meters)
	default:
		return fmt.Sprintf("%.1f km", float64(meters)/1000)
	}
}

func formatMinutes(minutes int) string {
	if minutes <= 0 {
		return "—"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
