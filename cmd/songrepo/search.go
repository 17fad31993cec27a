package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hazadus/go-songrepo/internal/catalog"
	"github.com/hazadus/go-songrepo/internal/song"
	"github.com/hazadus/go-songrepo/internal/utils"
)

// errNotAuthorized возвращается командами, если каталог не дал доступа
var errNotAuthorized = errors.New("доступ к каталогу не разрешен")

// createSearchCommand создает команду search с привязкой к экземпляру приложения
func (app *Application) createSearchCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "search [term]",
		Short: "Search the catalog for songs",
		Long:  `Request catalog access and print the songs matching the term. Without a term the search_term from the config is used.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			term := app.Config.SearchTerm
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				term = args[0]
			}
			return app.searchSongs(ctx, term)
		},
	}
}

func (app *Application) searchSongs(ctx context.Context, term string) error {
	if err := app.authorize(ctx); err != nil {
		return err
	}

	fmt.Printf("🔍 Ищем песни по запросу: %s\n", term)
	songs, err := app.Repository.SearchSongs(ctx, term)
	if err != nil {
		fmt.Println("❌ Ошибка загрузки песен. Попробуйте позже.")
		return err
	}

	if len(songs) == 0 {
		fmt.Println("📭 Песни не найдены.")
		return nil
	}

	for _, s := range songs {
		app.Repository.AddSong(s)
	}

	fmt.Printf("📚 Найдено песен: %d\n\n", len(songs))
	printSongTable(songs)
	fmt.Println()
	fmt.Println("💡 Используйте 'songrepo song [ID]' для просмотра песни")
	return nil
}

// authorize запрашивает доступ к каталогу и сообщает об отказе
func (app *Application) authorize(ctx context.Context) error {
	status := app.Catalog.RequestAuthorization(ctx)
	app.Logger.Debug("статус доступа к каталогу", zap.Stringer("status", status))
	if status == catalog.Authorized {
		return nil
	}

	fmt.Println("🔒 Доступ к музыкальной библиотеке не разрешен.")
	fmt.Println("   Проверьте адрес сервера и учетные данные в конфигурации.")
	return fmt.Errorf("%w: %s", errNotAuthorized, status)
}

func printSongTable(songs []song.Song) {
	fmt.Printf("%-4s %-24s %s %s %s %s\n",
		"#", "ID",
		utils.Column("Исполнитель", 20),
		utils.Column("Название", 40),
		utils.Column("Альбом", 24),
		"Длительность")
	fmt.Println(strings.Repeat("-", 130))

	for i, s := range songs {
		fmt.Printf("%-4d %-24s %s %s %s %s\n",
			i+1,
			utils.TruncateString(s.ID, 24),
			utils.Column(s.Artist, 20),
			utils.Column(s.Title, 40),
			utils.Column(s.Album, 24),
			utils.FormatDurationFromSeconds(s.Duration))
	}
}
