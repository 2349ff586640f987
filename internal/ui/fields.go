package ui

import (
	"strconv"
	"strings"

	"github.com/ssafy-wtd/wtd/internal/state"
)

type fieldKind int

const (
	kindNumber fieldKind = iota
	kindToggle
	kindTags
	kindText
)

// filterField describes one editable row of the filters view.
type filterField struct {
	label string
	kind  fieldKind
	unit  string
	step  int
	min   int
	max   int

	// number fields
	getInt func(f state.Filters) int
	setInt func(f *state.Filters, v int)

	// toggle fields
	getBool func(f state.Filters) bool
	setBool func(f *state.Filters, v bool)

	// tag and text fields
	getText func(f state.Filters) string
	setText func(f *state.Filters, v string)
}

var filterFields = []filterField{
	{
		label: "Charge time", kind: kindNumber, unit: "min", step: 5, min: 0, max: 600,
		getInt: func(f state.Filters) int { return f.ChargeTime },
		setInt: func(f *state.Filters, v int) { f.ChargeTime = v },
	},
	{
		label: "Travel time", kind: kindNumber, unit: "min", step: 5, min: 0, max: 120,
		getInt: func(f state.Filters) int { return f.TravelTime },
		setInt: func(f *state.Filters, v int) { f.TravelTime = v },
	},
	{
		label: "People", kind: kindNumber, step: 1, min: 1, max: 20,
		getInt: func(f state.Filters) int { return f.Personnel },
		setInt: func(f *state.Filters, v int) { f.Personnel = v },
	},
	{
		label: "Eco-friendly only", kind: kindToggle,
		getBool: func(f state.Filters) bool { return f.IsEcoFriendly },
		setBool: func(f *state.Filters, v bool) { f.IsEcoFriendly = v },
	},
	{
		label: "Public transport", kind: kindToggle,
		getBool: func(f state.Filters) bool { return f.UsePublicTransport },
		setBool: func(f *state.Filters, v bool) { f.UsePublicTransport = v },
	},
	{
		label: "Categories", kind: kindTags,
		getText: func(f state.Filters) string { return joinTags(f.SelectedCategory) },
		setText: func(f *state.Filters, v string) { f.SelectedCategory = splitTags(v) },
	},
	{
		label: "Purposes", kind: kindTags,
		getText: func(f state.Filters) string { return joinTags(f.SelectedPurpose) },
		setText: func(f *state.Filters, v string) { f.SelectedPurpose = splitTags(v) },
	},
	{
		label: "Preference", kind: kindText,
		getText: func(f state.Filters) string { return f.SelectedPreference },
		setText: func(f *state.Filters, v string) { f.SelectedPreference = strings.TrimSpace(v) },
	},
}

// adjust moves a number field by delta steps or flips a toggle.
// It reports whether anything changed.
func (ff filterField) adjust(f *state.Filters, delta int) bool {
	switch ff.kind {
	case kindNumber:
		cur := ff.getInt(*f)
		next := clampInt(cur+delta*ff.step, ff.min, ff.max)
		if next == cur {
			return false
		}
		ff.setInt(f, next)
		return true
	case kindToggle:
		ff.setBool(f, !ff.getBool(*f))
		return true
	default:
		return false
	}
}

// display renders the field's current value.
func (ff filterField) display(f state.Filters) string {
	switch ff.kind {
	case kindNumber:
		v := strconv.Itoa(ff.getInt(f))
		if ff.unit != "" {
			v += " " + ff.unit
		}
		return v
	case kindToggle:
		if ff.getBool(f) {
			return "[x]"
		}
		return "[ ]"
	default:
		v := ff.getText(f)
		if v == "" {
			return "—"
		}
		return v
	}
}

func (ff filterField) editable() bool {
	return ff.kind == kindTags || ff.kind == kindText
}

// splitTags parses a comma-separated list, trimming blanks and duplicates
// while keeping the first-seen order.
func splitTags(s string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func joinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
