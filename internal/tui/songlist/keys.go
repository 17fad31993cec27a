package songlist

import "github.com/charmbracelet/bubbles/key"

// keyMap горячие клавиши экрана списка песен
type keyMap struct {
	Select      key.Binding
	MarkPlayed  key.Binding
	Favorite    key.Binding
	Reload      key.Binding
	Collections key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "выбрать"),
		),
		MarkPlayed: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "прослушано"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "в избранное"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "обновить"),
		),
		Collections: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "коллекции"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "выход"),
		),
	}
}

// listKeys клавиши, дополняющие справку списка
func (k keyMap) listKeys() []key.Binding {
	return []key.Binding{k.Select, k.MarkPlayed, k.Favorite, k.Reload, k.Collections}
}

// statusKeys клавиши, доступные без списка
func (k keyMap) statusKeys() []key.Binding {
	return []key.Binding{k.Reload, k.Collections, k.Quit}
}
