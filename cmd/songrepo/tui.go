package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-songrepo/internal/tui"
	tuiapp "github.com/hazadus/go-songrepo/internal/tui/app"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand() *cobra.Command {
	var (
		term    string
		songIDs []string
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch interactive terminal user interface that searches the catalog and shows the matching songs.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.launchTUI(term, songIDs)
		},
	}
	cmd.Flags().StringVarP(&term, "term", "t", "", "search term (defaults to search_term from the config)")
	cmd.Flags().StringSliceVar(&songIDs, "song", nil, "song IDs to load into the list after the search")

	return cmd
}

func (app *Application) launchTUI(term string, songIDs []string) error {
	if term == "" {
		term = app.Config.SearchTerm
	}

	tuiApp := tui.NewApp(app.Catalog, app.Repository, app.tuiOptions(term, songIDs))
	if err := tuiApp.Run(); err != nil {
		return fmt.Errorf("ошибка работы TUI: %w", err)
	}
	return nil
}

func (app *Application) tuiOptions(term string, songIDs []string) tuiapp.Options {
	return tuiapp.Options{
		SearchTerm: term,
		PreloadIDs: songIDs,
		Logger:     app.Logger,
	}
}
