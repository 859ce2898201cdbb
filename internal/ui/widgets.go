package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"resource-console/models"
)

// Table renders rows under headers with the theme border.
func Table(headers []string, rows [][]string) string {
	t := Current()
	tbl := table.New().
		Border(t.Border).
		BorderStyle(t.Muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.Title.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return tbl.Render()
}

// Panel frames lines in a bordered box under an optional title.
func Panel(title string, lines ...string) string {
	t := Current()
	body := strings.Join(lines, "\n")
	if title != "" {
		body = t.Title.Render(title) + "\n" + body
	}
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.Muted.GetForeground()).
		Padding(0, 1).
		Render(body)
}

// Banner renders the last failure message, or nothing.
func Banner(msg string) string {
	if msg == "" {
		return ""
	}
	return Current().Error.Render("! " + msg)
}

// Loading is printed while a request is in flight.
func Loading(what string) string {
	return Current().Muted.Render(fmt.Sprintf("Loading %s...", what))
}

func Check(done bool) string {
	t := Current()
	if done {
		return t.Success.Render(t.SymDone)
	}
	return t.Muted.Render(t.SymOpen)
}

func StatusBadge(s models.BookingStatus) string {
	t := Current()
	switch s {
	case models.BookingConfirmed:
		return t.Success.Render(string(s))
	case models.BookingCancelled:
		return t.Error.Render(string(s))
	default:
		return t.Pending.Render(string(s))
	}
}

// ProgressBar renders a bar with a percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}
