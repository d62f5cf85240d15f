package billterm

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keymap struct {
	nextTab       key.Binding
	prevTab       key.Binding
	refresh       key.Binding
	cursorUp      key.Binding
	cursorDown    key.Binding
	cycleDate     key.Binding
	cycleStaff    key.Binding
	pickDay       key.Binding
	export        key.Binding
	newItem       key.Binding
	editItem      key.Binding
	deleteItem    key.Binding
	fetch         key.Binding
	logout        key.Binding
	openHelp      key.Binding
	closeHelp     key.Binding
	cancel        key.Binding
	quit          key.Binding
}

func newKeymap() keymap {
	return keymap{
		openHelp: key.NewBinding(
			key.WithKeys(tea.KeyF1.String(), "?"),
			key.WithHelp("f1", "Help"),
		),
		closeHelp: key.NewBinding(
			key.WithKeys(tea.KeyEsc.String(), tea.KeyF1.String()),
			key.WithHelp("esc", "Close help"),
		),
		nextTab: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("l, →", "Next section"),
		),
		prevTab: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("h, ←", "Previous section"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		cursorUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("k, ↑", "Up"),
		),
		cursorDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("j, ↓", "Down"),
		),
		cycleDate: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle date filter"),
		),
		cycleStaff: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle staff filter"),
		),
		pickDay: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Pick a day"),
		),
		export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Export to xlsx"),
		),
		newItem: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New"),
		),
		editItem: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Edit"),
		),
		deleteItem: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Delete"),
		),
		fetch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Fetch report"),
		),
		logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "Log out"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
	}
}
