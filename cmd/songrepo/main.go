package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/hazadus/go-songrepo/internal/catalog"
	"github.com/hazadus/go-songrepo/internal/catalog/fixture"
	"github.com/hazadus/go-songrepo/internal/catalog/subsonic"
	"github.com/hazadus/go-songrepo/internal/config"
	"github.com/hazadus/go-songrepo/internal/logger"
	"github.com/hazadus/go-songrepo/internal/repository"
)

const (
	defaultConfigPath = "~/.songrepo.yaml"
)

// Application содержит зависимости, общие для всех команд
type Application struct {
	Config     *config.Config
	Catalog    catalog.Client
	Repository *repository.Repository
	Logger     *zap.Logger
}

// newApplication собирает приложение по конфигурации.
// console задает дополнительный вывод логов, nil для TUI.
func newApplication(cfg *config.Config, console io.Writer) (*Application, func() error, error) {
	log, closeLog, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
		Console:    console,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка создания логгера: %w", err)
	}

	client, err := newCatalog(cfg, log)
	if err != nil {
		_ = closeLog()
		return nil, nil, err
	}

	return &Application{
		Config:     cfg,
		Catalog:    client,
		Repository: repository.New(client, log),
		Logger:     log,
	}, closeLog, nil
}

// newCatalog выбирает офлайн-каталог из файла или Subsonic сервер
func newCatalog(cfg *config.Config, log *zap.Logger) (catalog.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.CatalogFixture != "" {
		c, err := fixture.Load(cfg.CatalogFixture)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки офлайн-каталога: %w", err)
		}
		log.Info("используется офлайн-каталог", zap.String("path", cfg.CatalogFixture))
		return c, nil
	}

	return subsonic.NewClient(subsonic.Config{
		BaseURL:    cfg.CatalogURL,
		Username:   cfg.CatalogUsername,
		Password:   cfg.CatalogPassword,
		ClientID:   cfg.CatalogClientID,
		APIVersion: cfg.CatalogAPIVersion,
		SongCount:  cfg.CatalogSongCount,
		Timeout:    cfg.HTTPTimeout(),
	}, log), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(ctx).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
