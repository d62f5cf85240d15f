package billterm

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

var (
	navColorBG         = lipgloss.AdaptiveColor{Light: "254", Dark: "16"}
	navColorFGActive   = lipgloss.AdaptiveColor{Light: "22", Dark: "40"}
	navColorFGInactive = lipgloss.AdaptiveColor{Light: "2", Dark: "243"}
	styleLoader        = lipgloss.NewStyle().Faint(true).Align(lipgloss.Center)
	styleNavCap        = lipgloss.NewStyle().Foreground(navColorBG)
	styleModeIndicator = lipgloss.NewStyle().Background(navColorBG).Foreground(navColorFGActive).Padding(0, 0, 0, 1)
	styleNavJoiner     = lipgloss.NewStyle().Background(navColorBG).Foreground(navColorFGInactive)
	styleNavInactive   = lipgloss.NewStyle().Background(navColorBG).Foreground(navColorFGInactive).Padding(0, 1)
	styleNavActive     = lipgloss.NewStyle().Background(navColorBG).Foreground(navColorFGActive).Padding(0, 1)
	styleWindow        = lipgloss.NewStyle().Padding(0, 0, 0, 0).Margin(0, 0).Align(lipgloss.Center, lipgloss.Center)
	styleTableBorder   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleTableCell     = lipgloss.NewStyle().Padding(0, 1)
	styleTableCursor   = styleTableCell.Background(lipgloss.AdaptiveColor{Dark: "24", Light: "153"})
	styleTableHeader   = styleTableCell.Bold(true)
	styleCardTitle     = lipgloss.NewStyle().Bold(true)
	styleCard          = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).Margin(0, 1)
	styleSectionTitle  = lipgloss.NewStyle().Bold(true).Margin(1, 0, 0, 0)
	styleFormLabel     = lipgloss.NewStyle().Bold(true).Width(10)
	styleFormContainer = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2)
	styleSubtle        = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "243", Dark: "245"})
	styleBar           = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "26", Dark: "33"})
	styleStatusOK      = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "22", Dark: "40"})
	styleStatusErr     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "203"})
	styleLoginHeading  = lipgloss.NewStyle().Bold(true).Margin(0, 0, 1, 0)
	styleShortHelp     = lipgloss.NewStyle().Margin(1, 0, 0, 0)
	styleHelp          = help.Styles{
		Ellipsis:       lipgloss.NewStyle().Foreground(navColorFGInactive),
		ShortKey:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "33"}),
		ShortDesc:      lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "238", Dark: "250"}),
		ShortSeparator: lipgloss.NewStyle().Foreground(navColorFGInactive),
		FullKey:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "33"}),
		FullDesc:       lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "238", Dark: "250"}),
		FullSeparator:  lipgloss.NewStyle().Foreground(navColorFGInactive),
	}
)
