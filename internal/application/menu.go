package application

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/salesdesk/internal/core"
)

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

type MenuItem struct {
	Label   string
	Submenu *Menu
	Action  func() tea.Cmd
}

type Menu struct {
	Title  string
	Items  []MenuItem
	Parent *Menu
}

/* ----------------------------------------
	MENU TREE DEFINITION
---------------------------------------- */

func linkParents(menu *Menu, parent *Menu) {
	menu.Parent = parent

	for i := range menu.Items {
		item := &menu.Items[i]

		if item.Label == "Back" {
			item.Submenu = parent
			continue
		}

		if item.Submenu != nil {
			linkParents(item.Submenu, menu)
		}
	}
}

// buildMenuTree lists one submenu per screen group, in registry order.
func buildMenuTree(screens Screens, opts Options) *Menu {
	byGroup := screens.ListScreensByGroup()

	root := &Menu{Title: "Screens"}
	for _, group := range core.Groups() {
		infos := byGroup[group]
		if len(infos) == 0 {
			continue
		}
		root.Items = append(root.Items, MenuItem{
			Label:   group + " ->",
			Submenu: loadGroupMenu(group, infos),
		})
	}

	if opts.Reset != nil {
		root.Items = append(root.Items, MenuItem{Label: "Reset demo data", Action: opts.Reset})
	}

	linkParents(root, nil)

	return root
}

/* ----------------------------------------
	LOAD MENUS
---------------------------------------- */

func loadGroupMenu(group string, infos []core.ScreenInfo) *Menu {
	menu := &Menu{Title: group}
	for _, info := range infos {
		menu.Items = append(menu.Items, MenuItem{Label: info.Label, Action: openScreen(info.Key)})
	}
	menu.Items = append(menu.Items, MenuItem{Label: "Back"})
	return menu
}

func openScreen(key string) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return openScreenMsg{key: key} }
	}
}
