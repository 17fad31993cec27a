// Package app содержит основную логику TUI приложения
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/hazadus/go-songrepo/internal/catalog"
	"github.com/hazadus/go-songrepo/internal/repository"
	"github.com/hazadus/go-songrepo/internal/tui/collections"
	"github.com/hazadus/go-songrepo/internal/tui/songlist"
)

// ScreenType определяет тип текущего экрана
type ScreenType int

// Константы для типов экранов
const (
	// SongListScreen - экран результатов поиска
	SongListScreen ScreenType = iota
	// CollectionsScreen - экран коллекций репозитория
	CollectionsScreen
)

// Options параметры главной модели
type Options struct {
	SearchTerm string
	PreloadIDs []string
	Logger     *zap.Logger
}

// MainModel представляет главную модель TUI
type MainModel struct {
	repo             *repository.Repository
	currentScreen    ScreenType
	songListModel    *songlist.Model
	collectionsModel *collections.Model
	lastSize         *tea.WindowSizeMsg
}

// NewMainModel создает новую главную модель
func NewMainModel(client catalog.Client, repo *repository.Repository, opts Options) *MainModel {
	songListModel := songlist.NewModel(client, repo, opts.SearchTerm, opts.Logger)
	songListModel.SetPreloadIDs(opts.PreloadIDs)

	return &MainModel{
		repo:             repo,
		currentScreen:    SongListScreen,
		songListModel:    songListModel,
		collectionsModel: nil, // Будет создана при открытии экрана коллекций
	}
}

// CurrentScreen возвращает активный экран
func (m *MainModel) CurrentScreen() ScreenType {
	return m.currentScreen
}

// SongList возвращает модель экрана песен
func (m *MainModel) SongList() *songlist.Model {
	return m.songListModel
}

// Init инициализирует модель
func (m *MainModel) Init() tea.Cmd {
	return m.songListModel.Init()
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Глобальные горячие клавиши
		if msg.String() == "ctrl+c" {
			m.songListModel.Cancel()
			return m, tea.Quit
		}

	case songlist.ShowCollectionsMsg:
		m.currentScreen = CollectionsScreen
		m.collectionsModel = collections.NewModel(m.repo)
		if m.lastSize != nil {
			m.collectionsModel, _ = m.collectionsModel.Update(*m.lastSize)
		}
		return m, m.collectionsModel.Init()

	case collections.GoBackMsg:
		m.currentScreen = SongListScreen
		m.collectionsModel = nil
		return m, nil

	case tea.WindowSizeMsg:
		// Размер нужен обоим экранам, экран коллекций создается позже
		m.lastSize = &msg
		var cmd tea.Cmd
		m.songListModel, cmd = m.songListModel.Update(msg)
		if m.collectionsModel != nil {
			m.collectionsModel, _ = m.collectionsModel.Update(msg)
		}
		return m, cmd
	}

	var cmd tea.Cmd
	if m.currentScreen == CollectionsScreen && isKey(msg) && m.collectionsModel != nil {
		m.collectionsModel, cmd = m.collectionsModel.Update(msg)
		return m, cmd
	}

	// Ответы каталога и тики приходят экрану песен независимо от активного экрана
	m.songListModel, cmd = m.songListModel.Update(msg)
	return m, cmd
}

func isKey(msg tea.Msg) bool {
	_, ok := msg.(tea.KeyMsg)
	return ok
}

// View отображает интерфейс
func (m *MainModel) View() string {
	switch m.currentScreen {
	case SongListScreen:
		return m.songListModel.View()

	case CollectionsScreen:
		if m.collectionsModel != nil {
			return m.collectionsModel.View()
		}
		return "Ошибка: модель коллекций не инициализирована"

	default:
		return "Неизвестный экран"
	}
}

// Close отменяет незавершенные запросы к каталогу
func (m *MainModel) Close() {
	m.songListModel.Cancel()
}
