// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-songrepo/internal/catalog"
	"github.com/hazadus/go-songrepo/internal/repository"
	"github.com/hazadus/go-songrepo/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	catalog catalog.Client
	repo    *repository.Repository
	opts    app.Options
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(client catalog.Client, repo *repository.Repository, opts app.Options) *App {
	return &App{
		catalog: client,
		repo:    repo,
		opts:    opts,
	}
}

// Run запускает TUI приложение
func (tuiApp *App) Run(programOpts ...tea.ProgramOption) error {
	// Создаем модель для Bubble Tea
	model := app.NewMainModel(tuiApp.catalog, tuiApp.repo, tuiApp.opts)

	// Создаем программу Bubble Tea
	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, programOpts...)...)

	// Запускаем программу
	_, err := p.Run()

	// Отменяем незавершенные запросы после завершения программы
	model.Close()

	return err
}
