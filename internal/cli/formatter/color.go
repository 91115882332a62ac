package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/netbadge-ctrl/okboard/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle returns the style used to render a project status.
func StatusStyle(s domain.ProjectStatus) lipgloss.Style {
	switch s {
	case domain.StatusLaunched:
		return StyleGreen
	case domain.StatusInProgress, domain.StatusTesting:
		return StyleBlue
	case domain.StatusPaused:
		return StyleRed
	case domain.StatusNotStarted, domain.StatusDiscussion:
		return StyleDim
	default:
		return StyleYellow
	}
}

// PriorityStyle returns the style used to render a project priority.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityCompanyOKR:
		return StyleRed
	case domain.PriorityDeptOKR:
		return StylePurple
	case domain.PriorityTechOpt:
		return StyleAqua
	default:
		return StyleFg
	}
}

// RoleStyle returns the style used for a role's schedule bar.
func RoleStyle(r domain.Role) lipgloss.Style {
	switch r {
	case domain.RoleProductManager:
		return StylePurple
	case domain.RoleBackend:
		return StyleBlue
	case domain.RoleFrontend:
		return StyleGreen
	case domain.RoleQA:
		return StyleYellow
	default:
		return StyleDim
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	line := strings.Repeat("─", lipgloss.Width(text))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(text), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
