package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-songrepo/internal/catalog"
)

// createAuthCommand создает команду auth с привязкой к экземпляру приложения
func (app *Application) createAuthCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Check access to the music catalog",
		Long:  `Request access to the configured catalog and print the resulting authorization status.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.checkAuthorization(ctx)
		},
	}
}

func (app *Application) checkAuthorization(ctx context.Context) error {
	status := app.Catalog.RequestAuthorization(ctx)

	switch status {
	case catalog.Authorized:
		fmt.Printf("✅ Доступ к каталогу разрешен (%s)\n", status)
		return nil
	case catalog.Denied, catalog.Restricted:
		fmt.Printf("🔒 Доступ к каталогу запрещен (%s)\n", status)
	default:
		fmt.Printf("⚠️  Статус доступа не определен (%s): сервер недоступен или не заданы учетные данные\n", status)
	}
	return fmt.Errorf("%w: %s", errNotAuthorized, status)
}
