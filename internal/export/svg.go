// Package export renders a computed board to standalone SVG, suitable for
// embedding in wikis and status mails.
package export

import (
	"fmt"
	"strings"

	"github.com/netbadge-ctrl/okboard/internal/contract"
	"github.com/netbadge-ctrl/okboard/internal/domain"
)

// SVGConfig controls the rendered geometry. Zero values fall back to the
// defaults from DefaultSVGConfig.
type SVGConfig struct {
	Width        int    // total image width in px
	LabelWidth   int    // left column holding user names
	HeaderHeight int    // top band holding period headers
	LaneHeight   int    // height of one lane
	RowGap       int    // vertical gap between user rows
	FontFamily   string
	Background   string
}

func DefaultSVGConfig() SVGConfig {
	return SVGConfig{
		Width:        1200,
		LabelWidth:   160,
		HeaderHeight: 36,
		LaneHeight:   26,
		RowGap:       10,
		FontFamily:   "Helvetica, Arial, sans-serif",
		Background:   "#ffffff",
	}
}

var roleColors = map[domain.Role]string{
	domain.RoleProductManager: "#8b5cf6",
	domain.RoleBackend:        "#3b82f6",
	domain.RoleFrontend:       "#10b981",
	domain.RoleQA:             "#f59e0b",
}

const defaultBarColor = "#94a3b8"

// RenderSVG draws the board as a Gantt chart: one band per user, stacked
// lanes inside each band, bars placed by their projected percentages.
func RenderSVG(board *contract.Board, config SVGConfig) string {
	config = fillDefaults(config)

	chartWidth := config.Width - config.LabelWidth
	height := config.HeaderHeight
	for _, row := range board.Rows {
		height += rowHeight(row, config) + config.RowGap
	}
	if len(board.Rows) == 0 {
		height += config.LaneHeight
	}

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
.header-text { font-family: %s; font-size: 12px; fill: #334155; }
.user-text { font-family: %s; font-size: 13px; fill: #0f172a; }
.dept-text { font-family: %s; font-size: 10px; fill: #64748b; }
.bar-text { font-family: %s; font-size: 11px; fill: #ffffff; }
</style>
</defs>
`, config.Width, height, config.Background,
		config.FontFamily, config.FontFamily, config.FontFamily, config.FontFamily))

	drawHeaders(&svg, board.Window, config, chartWidth)
	drawDividers(&svg, board.Window, config, chartWidth, height)

	y := config.HeaderHeight
	for _, row := range board.Rows {
		drawRow(&svg, row, config, chartWidth, y)
		y += rowHeight(row, config) + config.RowGap
	}

	svg.WriteString("</svg>\n")
	return svg.String()
}

func fillDefaults(config SVGConfig) SVGConfig {
	def := DefaultSVGConfig()
	if config.Width <= 0 {
		config.Width = def.Width
	}
	if config.LabelWidth <= 0 {
		config.LabelWidth = def.LabelWidth
	}
	if config.HeaderHeight <= 0 {
		config.HeaderHeight = def.HeaderHeight
	}
	if config.LaneHeight <= 0 {
		config.LaneHeight = def.LaneHeight
	}
	if config.RowGap <= 0 {
		config.RowGap = def.RowGap
	}
	if config.FontFamily == "" {
		config.FontFamily = def.FontFamily
	}
	if config.Background == "" {
		config.Background = def.Background
	}
	return config
}

func rowHeight(row contract.BoardRow, config SVGConfig) int {
	lanes := row.MaxLanes
	if lanes < 1 {
		lanes = 1
	}
	return lanes * config.LaneHeight
}

func drawHeaders(svg *strings.Builder, w contract.Window, config SVGConfig, chartWidth int) {
	svg.WriteString(fmt.Sprintf(`<text x="8" y="%d" class="header-text">%s</text>`+"\n",
		config.HeaderHeight-12, escapeXML(w.RangeLabel)))

	x := float64(config.LabelWidth)
	for _, h := range w.Headers {
		width := float64(h.Days) / float64(w.TotalDays) * float64(chartWidth)
		svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" text-anchor="middle" class="header-text">%s</text>`+"\n",
			x+width/2, config.HeaderHeight-12, escapeXML(h.Label)))
		x += width
	}
}

func drawDividers(svg *strings.Builder, w contract.Window, config SVGConfig, chartWidth, height int) {
	for _, d := range w.Dividers {
		x := float64(config.LabelWidth) + d.Position/100*float64(chartWidth)
		stroke := "#e2e8f0"
		if d.Type == contract.DividerWeek {
			stroke = "#cbd5e1"
		}
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
			x, config.HeaderHeight, x, height, stroke))
	}
}

func drawRow(svg *strings.Builder, row contract.BoardRow, config SVGConfig, chartWidth, y int) {
	svg.WriteString(fmt.Sprintf(`<text x="8" y="%d" class="user-text">%s</text>`+"\n",
		y+17, escapeXML(row.User.Name)))
	svg.WriteString(fmt.Sprintf(`<text x="8" y="%d" class="dept-text">%s</text>`+"\n",
		y+31, escapeXML(row.User.DeptOrUnknown())))

	for _, a := range row.Assignments {
		barX := float64(config.LabelWidth) + a.Left/100*float64(chartWidth)
		barW := a.Width / 100 * float64(chartWidth)
		if barW < 2 {
			barW = 2 // keep single-day bars visible
		}
		barY := y + a.Lane*config.LaneHeight + 2
		barH := config.LaneHeight - 4

		color, ok := roleColors[a.Role]
		if !ok {
			color = defaultBarColor
		}
		svg.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%d" width="%.1f" height="%d" rx="3" fill="%s"/>`+"\n",
			barX, barY, barW, barH, color))

		label := fmt.Sprintf("%s·%s", a.ProjectName, a.Role.DisplayName())
		svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" class="bar-text">%s</text>`+"\n",
			barX+4, barY+barH-7, escapeXML(label)))
	}
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
