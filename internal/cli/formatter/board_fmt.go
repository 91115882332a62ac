package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/netbadge-ctrl/okboard/internal/contract"
)

// DefaultBoardWidth is the chart width in terminal cells used when the
// caller does not supply one.
const DefaultBoardWidth = 84

const labelColWidth = 14

// FormatBoard renders the computed board as plain styled text: the window
// headers on top, then one band per user with its packed lanes. Bars carry
// the project name, truncated to the bar width.
func FormatBoard(board *contract.Board, width int) string {
	if width <= 0 {
		width = DefaultBoardWidth
	}

	var b strings.Builder
	b.WriteString(Header(board.Window.RangeLabel))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", labelColWidth))
	b.WriteString(formatHeaderRow(board.Window, width))
	b.WriteString("\n")

	if len(board.Rows) == 0 {
		b.WriteString(Dim("当前筛选条件下没有排期"))
		b.WriteString("\n")
		return b.String()
	}

	for _, row := range board.Rows {
		b.WriteString(formatUserBand(row, width))
	}
	return b.String()
}

func formatHeaderRow(w contract.Window, width int) string {
	var b strings.Builder
	used := 0
	for i, h := range w.Headers {
		cellWidth := int(math.Round(float64(h.Days) / float64(w.TotalDays) * float64(width)))
		if i == len(w.Headers)-1 {
			cellWidth = width - used
		}
		if cellWidth < 1 {
			cellWidth = 1
		}
		used += cellWidth
		b.WriteString(StyleDim.Render(padCell(h.Label, cellWidth)))
	}
	return b.String()
}

func formatUserBand(row contract.BoardRow, width int) string {
	var b strings.Builder

	label := padCell(row.User.Name, labelColWidth)
	b.WriteString(StyleBold.Render(label))

	lanes := row.MaxLanes
	if lanes < 1 {
		lanes = 1
	}
	for lane := 0; lane < lanes; lane++ {
		if lane > 0 {
			b.WriteString(strings.Repeat(" ", labelColWidth))
		}
		b.WriteString(formatLane(row, lane, width))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", labelColWidth))
	b.WriteString(Dim(padCell(row.User.DeptOrUnknown(), width)))
	b.WriteString("\n")
	return b.String()
}

// formatLane walks the assignments packed into one lane, left to right,
// emitting spaces between bars. Bars in a lane never overlap.
func formatLane(row contract.BoardRow, lane, width int) string {
	var b strings.Builder
	cursor := 0
	for _, a := range row.Assignments {
		if a.Lane != lane {
			continue
		}
		col := int(math.Round(a.Left / 100 * float64(width)))
		barW := int(math.Round(a.Width / 100 * float64(width)))
		if barW < 1 {
			barW = 1
		}
		if col < cursor {
			col = cursor
		}
		if col >= width {
			break
		}
		if col+barW > width {
			barW = width - col
		}
		b.WriteString(strings.Repeat(" ", col-cursor))
		b.WriteString(renderBar(a, barW))
		cursor = col + barW
	}
	return b.String()
}

func renderBar(a contract.PositionedAssignment, barW int) string {
	label := fmt.Sprintf("%s %s", a.ProjectName, a.Role.DisplayName())
	text := runewidth.Truncate(label, barW, "")
	text = text + strings.Repeat("░", barW-runewidth.StringWidth(text))
	return RoleStyle(a.Role).Render(text)
}

// padCell truncates or pads s to exactly width terminal cells.
func padCell(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
