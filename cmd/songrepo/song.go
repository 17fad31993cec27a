package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-songrepo/internal/song"
	"github.com/hazadus/go-songrepo/internal/utils"
)

// createSongCommand создает команду song с привязкой к экземпляру приложения
func (app *Application) createSongCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "song [ID]",
		Short: "Show a song from the catalog by ID",
		Long:  `Fetch a single song by its catalog ID and print its details.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.showSong(ctx, args[0])
		},
	}
}

func (app *Application) showSong(ctx context.Context, id string) error {
	if err := app.authorize(ctx); err != nil {
		return err
	}

	s, err := app.Repository.LoadSong(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		fmt.Printf("❓ Песня с ID %s не найдена\n", id)
		return fmt.Errorf("песня с ID %s не найдена", id)
	}

	printSong(*s)
	return nil
}

func printSong(s song.Song) {
	fmt.Printf("🎵 %s\n", s.String())
	fmt.Printf("   ID: %s\n", s.ID)
	fmt.Printf("   Исполнитель: %s\n", valueOrDash(s.Artist))
	fmt.Printf("   Название: %s\n", s.Title)
	fmt.Printf("   Альбом: %s\n", valueOrDash(s.Album))
	fmt.Printf("   Продолжительность: %s\n", utils.FormatDurationFromSeconds(s.Duration))
	if s.CoverArt != "" {
		fmt.Printf("   Обложка: %s\n", s.CoverArt)
	}
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
