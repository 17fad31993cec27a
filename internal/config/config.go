// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Значения по умолчанию
const (
	DefaultSearchTerm = "Queen"
	DefaultClientID   = "songrepo"
	DefaultAPIVersion = "1.16.1"
	DefaultSongCount  = 20
	DefaultTimeout    = 30
	DefaultLogFile    = "~/.songrepo/songrepo.log"
)

// Переменные окружения, переопределяющие значения из файла
const (
	EnvCatalogURL = "SONGREPO_CATALOG_URL"
	EnvUsername   = "SONGREPO_USERNAME"
	EnvPassword   = "SONGREPO_PASSWORD"
	EnvSearchTerm = "SONGREPO_SEARCH_TERM"
	EnvLogLevel   = "SONGREPO_LOG_LEVEL"
)

// Config структура для хранения конфигурации приложения
type Config struct {
	CatalogURL         string `yaml:"catalog_url"`
	CatalogUsername    string `yaml:"catalog_username"`
	CatalogPassword    string `yaml:"catalog_password"`
	CatalogClientID    string `yaml:"catalog_client_id"`
	CatalogAPIVersion  string `yaml:"catalog_api_version"`
	CatalogSongCount   int    `yaml:"catalog_song_count"`
	CatalogHTTPTimeout int    `yaml:"catalog_http_timeout"` // В секундах
	CatalogFixture     string `yaml:"catalog_fixture"`      // YAML файл офлайн-каталога
	SearchTerm         string `yaml:"search_term"`
	LogLevel           string `yaml:"log_level"`
	LogFile            string `yaml:"log_file"`
	LogMaxSizeMB       int    `yaml:"log_max_size_mb"`
	LogMaxBackups      int    `yaml:"log_max_backups"`
	LogMaxAgeDays      int    `yaml:"log_max_age_days"`
	LogCompress        bool   `yaml:"log_compress"`
}

// HTTPTimeout возвращает таймаут запросов к каталогу
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.CatalogHTTPTimeout) * time.Second
}

// LoadConfig загружает конфигурацию приложения из указанного файла.
// Отсутствующий файл не считается ошибкой: используются значения по умолчанию
// и переменные окружения (в том числе из файла .env в текущей директории).
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	config := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Работаем без файла конфигурации
	case err != nil:
		return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
		}
	}

	// .env не переопределяет уже заданные переменные окружения
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("ошибка чтения .env: %w", err)
	}
	config.applyEnv()
	config.applyDefaults()

	// Раскрываем тильду в путях
	config.LogFile = strings.Replace(config.LogFile, "~", home, 1)
	config.CatalogFixture = strings.Replace(config.CatalogFixture, "~", home, 1)

	return config, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		EnvCatalogURL: &c.CatalogURL,
		EnvUsername:   &c.CatalogUsername,
		EnvPassword:   &c.CatalogPassword,
		EnvSearchTerm: &c.SearchTerm,
		EnvLogLevel:   &c.LogLevel,
	}
	for key, field := range overrides {
		if value, ok := os.LookupEnv(key); ok {
			*field = value
		}
	}
}

// applyDefaults устанавливает значения по умолчанию, если они не заданы
func (c *Config) applyDefaults() {
	if c.CatalogClientID == "" {
		c.CatalogClientID = DefaultClientID
	}
	if c.CatalogAPIVersion == "" {
		c.CatalogAPIVersion = DefaultAPIVersion
	}
	if c.CatalogSongCount <= 0 {
		c.CatalogSongCount = DefaultSongCount
	}
	if c.CatalogHTTPTimeout <= 0 {
		c.CatalogHTTPTimeout = DefaultTimeout
	}
	if strings.TrimSpace(c.SearchTerm) == "" {
		c.SearchTerm = DefaultSearchTerm
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
	if c.LogMaxSizeMB <= 0 {
		c.LogMaxSizeMB = 10
	}
	if c.LogMaxBackups <= 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays <= 0 {
		c.LogMaxAgeDays = 28
	}
}

// Validate проверяет, что каталог настроен: задан офлайн-каталог или адрес сервера
func (c *Config) Validate() error {
	if c.CatalogFixture != "" {
		return nil
	}
	if c.CatalogURL == "" {
		return fmt.Errorf("не задан адрес каталога: укажите catalog_url или catalog_fixture")
	}
	if c.CatalogUsername == "" {
		return fmt.Errorf("не задано имя пользователя каталога (catalog_username)")
	}
	return nil
}
