package dashboard

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// section wraps pre-rendered rows in a titled border box spanning the full
// frame width. Section titles are short constants and are never truncated.
func section(plan Layout, title string, rows []string) []string {
	innerWidth := plan.FrameWidth - 2

	titlePart := "─ " + title + " "
	fill := innerWidth - runewidth.StringWidth(titlePart)
	if fill < 0 {
		fill = 0
	}

	out := make([]string, 0, len(rows)+2)
	out = append(out, boldStyle.Render("┌"+titlePart+strings.Repeat("─", fill)+"┐"))
	out = append(out, rows...)
	out = append(out, boldStyle.Render("└"+strings.Repeat("─", innerWidth)+"┘"))

	return out
}
