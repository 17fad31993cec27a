// Package collections содержит экран просмотра коллекций репозитория
package collections

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-songrepo/internal/repository"
	"github.com/hazadus/go-songrepo/internal/song"
	"github.com/hazadus/go-songrepo/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0000ff")).
			MarginLeft(2).
			MarginBottom(1)

	activeTabStyle   = lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Padding(0, 1)
	rowStyle         = lipgloss.NewStyle().PaddingLeft(4)
	emptyStyle       = lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("#888888"))
	controlsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).MarginTop(1).PaddingLeft(4)
)

// Kind коллекция репозитория
type Kind int

// Коллекции в порядке переключения
const (
	All Kind = iota
	RecentlyPlayed
	Favorites
	kindCount
)

func (k Kind) String() string {
	switch k {
	case All:
		return "Все песни"
	case RecentlyPlayed:
		return "Прослушанные"
	case Favorites:
		return "Избранное"
	default:
		return "Неизвестно"
	}
}

// GoBackMsg отправляется для возврата к списку песен
type GoBackMsg struct{}

// Model представляет модель экрана коллекций
type Model struct {
	repo   *repository.Repository
	active Kind
	songs  []song.Song
	height int
}

// NewModel создает модель экрана коллекций
func NewModel(repo *repository.Repository) *Model {
	m := &Model{repo: repo, active: All}
	m.RefreshData()
	return m
}

// Active возвращает выбранную коллекцию
func (m *Model) Active() Kind {
	return m.active
}

// Songs возвращает песни выбранной коллекции
func (m *Model) Songs() []song.Song {
	return m.songs
}

// RefreshData перечитывает выбранную коллекцию из репозитория
func (m *Model) RefreshData() {
	switch m.active {
	case RecentlyPlayed:
		m.songs = m.repo.RecentlyPlayed()
	case Favorites:
		m.songs = m.repo.Favorites()
	default:
		m.songs = m.repo.AllSongs()
	}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg {
				return GoBackMsg{}
			}
		case "tab", "right", "l":
			m.active = (m.active + 1) % kindCount
			m.RefreshData()
		case "shift+tab", "left", "h":
			m.active = (m.active + kindCount - 1) % kindCount
			m.RefreshData()
		}
	}
	return m, nil
}

// View отображает модель
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Коллекции"))
	b.WriteString("\n")

	tabs := make([]string, 0, kindCount)
	for k := All; k < kindCount; k++ {
		style := inactiveTabStyle
		if k == m.active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(k.String()))
	}
	b.WriteString(rowStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...)))
	b.WriteString("\n\n")

	if len(m.songs) == 0 {
		b.WriteString(emptyStyle.Render("Коллекция пуста"))
	}

	rows := m.songs
	if limit := m.height - 8; m.height > 0 && limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	for i, s := range rows {
		b.WriteString(rowStyle.Render(fmt.Sprintf("%-4d %s %s %s",
			i+1,
			utils.Column(s.Artist, 20),
			utils.Column(s.Title, 40),
			utils.FormatDurationFromSeconds(s.Duration))))
		b.WriteString("\n")
	}
	if len(rows) < len(m.songs) {
		b.WriteString(emptyStyle.Render(fmt.Sprintf("... и еще %d", len(m.songs)-len(rows))))
		b.WriteString("\n")
	}

	b.WriteString(controlsStyle.Render("tab: следующая коллекция • esc: назад"))
	return b.String()
}
