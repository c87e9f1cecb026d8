package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lifter/internal/state"
)

// surface paints header segments on one background color. Words are styled
// one by one and joined with painted spaces, so the reset codes between
// styled segments leave no unpainted cells.
type surface struct {
	bg lipgloss.Color
}

func (s surface) paint(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	styled := style.Background(s.bg)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = styled.Render(w)
		}
	}
	return strings.Join(words, s.blank(1))
}

func (s surface) blank(n int) string {
	return lipgloss.NewStyle().Background(s.bg).Render(strings.Repeat(" ", n))
}

// renderHeader shows the app name, one tab per plan, and catalog counts.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bar := surface{bg: lipgloss.Color(m.theme.Surface)}

	parts := []string{bar.paint("lifter", styles.Logo)}
	for i, tab := range m.view.Templates {
		name := truncate(tab.Name, 20)
		if i == m.view.Template {
			parts = append(parts, styles.ActiveTab.Render(name))
		} else {
			parts = append(parts, bar.paint(" "+name+" ", styles.Tab))
		}
	}
	left := strings.Join(parts, bar.blank(1))

	right := bar.paint(m.catalogLabel(), styles.MutedText)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return styles.Header.Width(m.width).Render(left)
	}
	return styles.Header.Width(m.width).Render(left + bar.blank(gap) + right)
}

func (m Model) catalogLabel() string {
	v := m.view
	switch v.Catalog {
	case state.CatalogReady:
		return fmt.Sprintf("%d exercises · %d custom · %d ★", v.CatalogSize, v.Customs, v.Favorites)
	case state.CatalogFailed:
		return fmt.Sprintf("catalog unavailable · %d custom · %d ★", v.Customs, v.Favorites)
	default:
		return "loading catalog…"
	}
}
