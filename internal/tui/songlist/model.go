// Package songlist содержит экран поиска песен: авторизация в каталоге,
// поиск по заданному запросу и список результатов
package songlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hazadus/go-songrepo/internal/catalog"
	"github.com/hazadus/go-songrepo/internal/repository"
	"github.com/hazadus/go-songrepo/internal/screen"
	"github.com/hazadus/go-songrepo/internal/song"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	statusStyle       = lipgloss.NewStyle().Margin(1, 0, 1, 4).Foreground(lipgloss.Color("#888888"))
	errorStyle        = lipgloss.NewStyle().Margin(1, 0, 1, 4).Foreground(lipgloss.Color("#ff0000")).Bold(true)
	noticeStyle       = lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("#00aa00"))
	countsStyle       = lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("#666666"))
	quitTextStyle     = lipgloss.NewStyle().Margin(1, 0, 2, 4)
)

// ShowCollectionsMsg отправляется для перехода к экрану коллекций
type ShowCollectionsMsg struct{}

// run одна цепочка авторизация -> поиск
type run struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc
}

// Model представляет модель экрана списка песен
type Model struct {
	state      screen.State
	list       list.Model
	spinner    spinner.Model
	help       help.Model
	keys       keyMap
	catalog    catalog.Client
	repo       *repository.Repository
	logger     *zap.Logger
	current    run
	preloadIDs []string
	notice     string
	quitting   bool
}

// NewModel создает модель экрана для поискового запроса term
func NewModel(client catalog.Client, repo *repository.Repository, term string, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	keys := newKeyMap()

	l := list.New(nil, songItemDelegate{}, 0, 0)
	l.Title = fmt.Sprintf("Песни: %s", term)
	l.SetShowStatusBar(false)
	l.SetShowTitle(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	// "f" занята действием "в избранное"
	l.KeyMap.NextPage = key.NewBinding(
		key.WithKeys("right", "l", "pgdown", "d"),
		key.WithHelp("→/l/pgdn", "next page"),
	)
	l.AdditionalShortHelpKeys = keys.listKeys
	l.AdditionalFullHelpKeys = keys.listKeys
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#0000ff"))),
	)

	return &Model{
		state:   screen.NewState(term),
		list:    l,
		spinner: sp,
		help:    help.New(),
		keys:    keys,
		catalog: client,
		repo:    repo,
		logger:  logger.Named("songlist"),
	}
}

// SetPreloadIDs задает песни, которые загружаются по ID после показа результатов
func (m *Model) SetPreloadIDs(ids []string) {
	m.preloadIDs = append([]string(nil), ids...)
}

// State возвращает текущее состояние экрана
func (m *Model) State() screen.State {
	return m.state
}

// VisibleSongs возвращает песни, отображаемые в списке
func (m *Model) VisibleSongs() []song.Song {
	if !m.state.ListVisible() {
		return nil
	}
	items := m.list.Items()
	songs := make([]song.Song, 0, len(items))
	for _, item := range items {
		if i, ok := item.(songItem); ok {
			songs = append(songs, i.song)
		}
	}
	return songs
}

// Notice возвращает последнее уведомление для пользователя
func (m *Model) Notice() string {
	return m.notice
}

// Init загружает экран: запрашивает доступ к каталогу
func (m *Model) Init() tea.Cmd {
	return m.dispatch(screen.Load{})
}

// Cancel отменяет текущую цепочку запросов
func (m *Model) Cancel() {
	if m.current.cancel != nil {
		m.current.cancel()
	}
}

// dispatch применяет событие к автомату и возвращает команду для эффекта перехода
func (m *Model) dispatch(e screen.Event) tea.Cmd {
	prev := m.state
	next, effect := screen.Transition(prev, e)
	m.state = next

	if next.Phase() != prev.Phase() {
		m.logger.Debug("переход состояния",
			zap.String("run_id", m.current.id),
			zap.Stringer("from", prev.Phase()),
			zap.Stringer("to", next.Phase()),
			zap.Stringer("effect", effect))
	}

	var cmds []tea.Cmd
	if next.Phase() == screen.Displaying || prev.Phase() == screen.Displaying {
		cmds = append(cmds, m.list.SetItems(toItems(next.Songs())))
	}
	cmds = append(cmds, m.runEffect(effect))
	return tea.Batch(cmds...)
}

func (m *Model) runEffect(effect screen.Effect) tea.Cmd {
	switch effect {
	case screen.EffectRequestAuthorization:
		// Перезагрузка начинает новую цепочку; ответы старой будут отброшены
		m.Cancel()
		ctx, cancel := context.WithCancel(context.Background())
		m.current = run{id: uuid.NewString(), ctx: ctx, cancel: cancel}
		m.notice = ""
		m.logger.Info("запрос авторизации", zap.String("run_id", m.current.id))
		return tea.Batch(m.spinner.Tick, authorizeCmd(ctx, m.catalog, m.current.id))

	case screen.EffectSearch:
		m.logger.Info("поиск песен", zap.String("run_id", m.current.id), zap.String("term", m.state.Term()))
		return searchCmd(m.current.ctx, m.repo, m.state.Term(), m.current.id)
	}
	return nil
}

// stale сообщает, что ответ относится к замененной цепочке
func (m *Model) stale(runID string) bool {
	if runID == m.current.id {
		return false
	}
	m.logger.Debug("ответ устаревшей цепочки отброшен", zap.String("run_id", runID))
	return true
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4) // Оставляем место для уведомлений и счетчиков
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.state.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case authorizationMsg:
		if m.stale(msg.runID) {
			return m, nil
		}
		if msg.status != catalog.Authorized {
			m.logger.Warn("доступ к каталогу не получен", zap.Stringer("status", msg.status))
		}
		return m, m.dispatch(screen.AuthorizationResult{Status: msg.status})

	case searchResultMsg:
		if m.stale(msg.runID) {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Error("ошибка поиска песен", zap.String("term", m.state.Term()), zap.Error(msg.err))
			return m, m.dispatch(screen.SearchFailed{Err: msg.err})
		}
		m.logger.Info("найдены песни", zap.String("term", m.state.Term()), zap.Int("count", len(msg.songs)))
		cmd := m.dispatch(screen.SearchSucceeded{Songs: msg.songs})
		for _, s := range m.state.Songs() {
			m.repo.AddSong(s)
		}
		return m, tea.Batch(cmd, m.preload())

	case songFetchedMsg:
		if m.stale(msg.runID) {
			return m, nil
		}
		switch {
		case msg.err != nil:
			m.logger.Error("ошибка загрузки песни", zap.String("song_id", msg.id), zap.Error(msg.err))
			m.notice = fmt.Sprintf("Не удалось загрузить песню %s", msg.id)
			return m, nil
		case msg.song == nil:
			m.notice = fmt.Sprintf("Песня %s не найдена", msg.id)
			return m, nil
		}
		m.logger.Info("песня добавлена в репозиторий", zap.String("song_id", msg.song.ID), zap.String("title", msg.song.Title))
		return m, m.dispatch(screen.SongFetched{Song: *msg.song})

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.Cancel()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Reload):
			return m, m.dispatch(screen.Load{})

		case key.Matches(msg, m.keys.Collections):
			return m, func() tea.Msg { return ShowCollectionsMsg{} }

		case key.Matches(msg, m.keys.MarkPlayed):
			m.markFirst(m.repo.AddToRecentlyPlayed, "Отмечено как прослушанное", "Уже в прослушанных")
			return m, nil

		case key.Matches(msg, m.keys.Favorite):
			m.markFirst(m.repo.AddToFavorites, "Добавлено в избранное", "Уже в избранном")
			return m, nil

		case key.Matches(msg, m.keys.Select):
			m.selectCurrent()
			return m, nil
		}
	}

	if !m.state.ListVisible() {
		return m, nil
	}

	// Обновляем список
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// preload запускает загрузку песен по ID для текущей цепочки
func (m *Model) preload() tea.Cmd {
	if !m.state.ListVisible() || len(m.preloadIDs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(m.preloadIDs))
	for i, id := range m.preloadIDs {
		cmds[i] = fetchCmd(m.current.ctx, m.repo, id, m.current.id)
	}
	return tea.Batch(cmds...)
}

// markFirst применяет действие к первой песне результата, список не меняется
func (m *Model) markFirst(add func(song.Song) bool, done, already string) {
	first, ok := m.state.First()
	if !ok {
		m.notice = "Нет песен для действия"
		return
	}
	if add(first) {
		m.notice = fmt.Sprintf("%s: %s", done, first.Title)
	} else {
		m.notice = fmt.Sprintf("%s: %s", already, first.Title)
	}
	m.logger.Info(done, zap.String("song_id", first.ID), zap.String("title", first.Title))
}

// selectCurrent только сообщает о выбранной песне
func (m *Model) selectCurrent() {
	if !m.state.ListVisible() {
		return
	}
	item, ok := m.list.SelectedItem().(songItem)
	if !ok {
		return
	}
	m.notice = fmt.Sprintf("Выбрана песня: %s", item.song)
	m.logger.Info("выбрана песня", zap.String("song_id", item.song.ID), zap.Int("index", m.list.Index()))
}

// View отображает модель
func (m *Model) View() string {
	if m.quitting {
		return quitTextStyle.Render("До свидания!")
	}

	var b strings.Builder
	switch {
	case m.state.ListVisible() && m.state.Len() > 0:
		b.WriteString(m.list.View())
	case m.state.ListVisible():
		b.WriteString(titleStyle.Render(m.list.Title))
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.state.Status()))
	case m.state.Busy():
		b.WriteString(statusStyle.Render(m.spinner.View() + " " + m.state.Status()))
	case m.state.Phase() == screen.Failed:
		b.WriteString(errorStyle.Render(m.state.Status()))
	default:
		b.WriteString(statusStyle.Render(m.state.Status()))
	}
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	counts := m.repo.Counts()
	b.WriteString(countsStyle.Render(fmt.Sprintf("Всего: %d • Прослушано: %d • Избранное: %d",
		counts.All, counts.RecentlyPlayed, counts.Favorites)))

	if !m.state.ListVisible() || m.state.Len() == 0 {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.statusKeys())))
	}
	return b.String()
}
