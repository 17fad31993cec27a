package songlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-songrepo/internal/song"
	"github.com/hazadus/go-songrepo/internal/utils"
)

// songItem реализует интерфейс list.Item для песни
type songItem struct {
	song song.Song
}

func (i songItem) FilterValue() string {
	return fmt.Sprintf("%s %s", i.song.Artist, i.song.Title)
}

func toItems(songs []song.Song) []list.Item {
	items := make([]list.Item, len(songs))
	for i, s := range songs {
		items[i] = songItem{song: s}
	}
	return items
}

// songItemDelegate шаблон строки списка
type songItemDelegate struct{}

func (d songItemDelegate) Height() int                             { return 1 }
func (d songItemDelegate) Spacing() int                            { return 0 }
func (d songItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render выводит строку вида: № | Исполнитель | Название | Альбом | Длительность.
// Элемент другого типа означает ошибку программы, поэтому вызывается panic.
func (d songItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(songItem)
	if !ok {
		panic(fmt.Sprintf("songlist: элемент списка %T не является песней", listItem))
	}

	str := fmt.Sprintf("%-4d %s %s %s %s",
		index+1,
		utils.Column(i.song.Artist, 20),
		utils.Column(i.song.Title, 40),
		utils.Column(i.song.Album, 24),
		utils.FormatDurationFromSeconds(i.song.Duration))

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}
