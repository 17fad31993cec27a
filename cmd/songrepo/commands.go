package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-songrepo/internal/config"
)

// newRootCommand создает корневую команду. Приложение собирается
// в PersistentPreRunE, когда известен путь к конфигурации.
func newRootCommand(ctx context.Context) *cobra.Command {
	app := &Application{}
	var (
		configPath string
		closeLog   func() error
	)

	rootCmd := &cobra.Command{
		Use:           "songrepo",
		Short:         "Search a music catalog and collect songs",
		Long:          `A terminal tool that searches a Subsonic compatible music catalog and keeps recently played and favorite songs for the session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			// TUI занимает терминал, логи пишутся только в файл
			var console io.Writer
			if cmd.Name() != "tui" {
				console = os.Stderr
			}

			built, closeFn, err := newApplication(cfg, console)
			if err != nil {
				return err
			}
			*app = *built
			closeLog = closeFn
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if closeLog != nil {
				return closeLog()
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to the YAML config file")

	rootCmd.AddCommand(app.createCommands(ctx)...)
	return rootCmd
}

// createCommands создает подкоманды с привязкой к экземпляру приложения
func (app *Application) createCommands(ctx context.Context) []*cobra.Command {
	return []*cobra.Command{
		app.createTUICommand(),
		app.createSearchCommand(ctx),
		app.createSongCommand(ctx),
		app.createAuthCommand(ctx),
	}
}
