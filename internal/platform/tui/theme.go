package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// Theme contains the lipgloss styles used by the menus, the scoreboard and the
// board screen.
type Theme struct {
	// Cells overrides the style of board colors; missing colors use the
	// terminal palette.
	Cells map[core.Color]lipgloss.Style

	// Level picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemWon     lipgloss.Style
	MenuDescription lipgloss.Style
	MenuControls    lipgloss.Style

	// Scoreboard styles
	BoardTitle    lipgloss.Style
	BoardBorder   lipgloss.Color
	BoardSelected lipgloss.Style
	BoardEmpty    lipgloss.Style
	BoardHelp     lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuItemWon:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuControls:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		BoardTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		BoardBorder:   lipgloss.Color("240"),
		BoardSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		BoardEmpty:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
		BoardHelp:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		TabActive:     lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true).Padding(0, 1),
		TabInactive:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// NeonTheme returns a brighter theme.
func NeonTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("199")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("87")).Bold(true)
	theme.MenuItemWon = lipgloss.NewStyle().Foreground(lipgloss.Color("118"))
	theme.BoardTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("199")).Bold(true)
	theme.BoardSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("87"))
	theme.Cells = map[core.Color]lipgloss.Style{
		core.ColorRed:     fg("9"),
		core.ColorGreen:   fg("10"),
		core.ColorYellow:  fg("11"),
		core.ColorBlue:    fg("12"),
		core.ColorMagenta: fg("13"),
		core.ColorCyan:    fg("14"),
		core.ColorWhite:   fg("15"),
		core.ColorOrange:  fg("214"),
	}
	return theme
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	theme.MenuItemWon = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.BoardTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.BoardSelected = lipgloss.NewStyle().Reverse(true)
	theme.TabActive = lipgloss.NewStyle().Reverse(true).Padding(0, 1)

	// Pieces stay apart by glyph; bright colors (selection, effects) turn bold.
	theme.Cells = make(map[core.Color]lipgloss.Style)
	for c := range defaultCellStyles {
		theme.Cells[c] = lipgloss.NewStyle()
	}
	for _, c := range []core.Color{
		core.ColorBrightRed, core.ColorBrightGreen, core.ColorBrightYellow, core.ColorBrightBlue,
		core.ColorBrightMagenta, core.ColorBrightCyan, core.ColorBrightWhite,
	} {
		theme.Cells[c] = lipgloss.NewStyle().Bold(true)
	}
	return theme
}

// ThemeByName returns a built-in theme. Unknown names report false.
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "", "default":
		return DefaultTheme(), true
	case "neon":
		return NeonTheme(), true
	case "mono", "monochrome":
		return MonochromeTheme(), true
	}
	return Theme{}, false
}

// Global theme variable (can be changed at runtime)
var currentTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return currentTheme
}
