package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/scpcatalog/internal/client/listview"
	"github.com/dmitrijs2005/scpcatalog/internal/models"
	"golang.org/x/term"
)

// getTermSize is a test seam for term.GetSize.
var getTermSize = term.GetSize

const defaultWidth = 100

var (
	colorSafe   = lipgloss.AdaptiveColor{Light: "2", Dark: "2"}
	colorEuclid = lipgloss.AdaptiveColor{Light: "3", Dark: "3"}
	colorKeter  = lipgloss.AdaptiveColor{Light: "1", Dark: "1"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "8", Dark: "8"}
	colorTitle  = lipgloss.AdaptiveColor{Light: "5", Dark: "5"}

	styleHeader  = lipgloss.NewStyle().Foreground(colorTitle).Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleError   = lipgloss.NewStyle().Foreground(colorKeter).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(colorSafe).Bold(true)
	styleLabel   = lipgloss.NewStyle().Bold(true)
	styleBox     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
)

// terminalWidth returns the stdout width, or defaultWidth when stdout is not a terminal.
func terminalWidth() int {
	w, _, err := getTermSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// classBadge renders class in its colour: Safe green, Euclid amber, Keter red.
func classBadge(c models.Class) string {
	style := lipgloss.NewStyle().Bold(true)
	switch c {
	case models.ClassSafe:
		style = style.Foreground(colorSafe)
	case models.ClassEuclid:
		style = style.Foreground(colorEuclid)
	case models.ClassKeter:
		style = style.Foreground(colorKeter)
	default:
		style = style.Foreground(colorMuted)
	}
	return style.Render(string(c))
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func pad(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

// renderView draws one page as a table that fits width columns.
func renderView(v listview.View, width int) string {
	const (
		numW   = 3
		itemW  = 12
		classW = 8
		imgW   = 3
		gaps   = 4 * 2
	)
	descW := max(width-numW-itemW-classW-imgW-gaps, 10)

	var b strings.Builder

	header := strings.Join([]string{pad("#", numW), pad("Item", itemW), pad("Class", classW), pad("Img", imgW), "Description"}, "  ")
	b.WriteString(styleHeader.Render(header))
	b.WriteString("\n")
	b.WriteString(styleMuted.Render(strings.Repeat("─", min(width, numW+itemW+classW+imgW+gaps+descW))))
	b.WriteString("\n")

	if len(v.Entries) == 0 {
		b.WriteString(styleMuted.Render("No entries found."))
		b.WriteString("\n")
	}

	for i, e := range v.Entries {
		img := ""
		if e.Image != "" {
			img = "✓"
		}
		row := []string{
			pad(fmt.Sprintf("%d", i+1), numW),
			pad(truncate(e.Item, itemW), itemW),
			pad(classBadge(e.Class), classW),
			pad(img, imgW),
			truncate(e.Description, descW),
		}
		b.WriteString(strings.Join(row, "  "))
		b.WriteString("\n")
	}

	footer := fmt.Sprintf("Page %d of %d · %d matching · sort: %s", v.Page, max(v.TotalPages, 1), v.Matched, v.SortKey)
	if v.Query != "" {
		footer += fmt.Sprintf(" · search: %q", v.Query)
	}
	b.WriteString(styleMuted.Render(footer))
	return b.String()
}

// renderEntry draws the full record in a box.
func renderEntry(e models.Entry, width int) string {
	inner := max(width-4, 20)
	wrap := lipgloss.NewStyle().Width(inner)

	lines := []string{
		styleLabel.Render(e.Item) + "  " + classBadge(e.Class),
		styleMuted.Render("id: " + e.ID),
	}
	if e.CreatedAt > 0 {
		lines = append(lines, styleMuted.Render("created: "+time.UnixMilli(e.CreatedAt).UTC().Format(time.RFC3339)))
	}
	lines = append(lines,
		"",
		styleLabel.Render("Description"),
		wrap.Render(e.Description),
		"",
		styleLabel.Render("Special Containment Procedures"),
		wrap.Render(e.Containment),
	)
	if e.Image != "" {
		lines = append(lines, "", styleLabel.Render("Image"), e.Image)
	}
	return styleBox.Render(strings.Join(lines, "\n"))
}

func formatError(msg string) string {
	return styleError.Render("✘ " + msg)
}

func formatSuccess(msg string) string {
	return styleSuccess.Render("✔ " + msg)
}
