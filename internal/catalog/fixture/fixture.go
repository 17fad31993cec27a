// Package fixture содержит офлайн-каталог, загружаемый из YAML файла
package fixture

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hazadus/go-songrepo/internal/catalog"
	"github.com/hazadus/go-songrepo/internal/song"
)

// fileData структура YAML файла каталога
type fileData struct {
	Authorization string      `yaml:"authorization"`
	Songs         []song.Song `yaml:"songs"`
}

// Catalog каталог с фиксированным набором песен
type Catalog struct {
	status catalog.AuthorizationStatus
	songs  []song.Song
}

// New создает каталог из готового набора песен
func New(status catalog.AuthorizationStatus, songs []song.Song) *Catalog {
	return &Catalog{
		status: status,
		songs:  append([]song.Song(nil), songs...),
	}
}

// Load загружает каталог из файла
func Load(filePath string) (*Catalog, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла каталога: %w", err)
	}

	var fd fileData
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("ошибка разбора файла каталога: %w", err)
	}

	status, err := catalog.ParseAuthorizationStatus(fd.Authorization)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(fd.Songs))
	for i, s := range fd.Songs {
		if s.ID == "" {
			return nil, fmt.Errorf("песня #%d без идентификатора", i+1)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("повторяющийся идентификатор песни %q", s.ID)
		}
		seen[s.ID] = true
	}

	return New(status, fd.Songs), nil
}

// RequestAuthorization возвращает статус, записанный в файле
func (c *Catalog) RequestAuthorization(_ context.Context) catalog.AuthorizationStatus {
	return c.status
}

// Search ищет подстроку без учета регистра в названии, исполнителе и альбоме.
// Результат идет в порядке файла.
func (c *Catalog) Search(ctx context.Context, term string) ([]song.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, &catalog.Error{Op: "search", Err: err}
	}
	if c.status != catalog.Authorized {
		return nil, &catalog.Error{Op: "search", Message: "нет доступа к каталогу: " + c.status.String()}
	}

	needle := strings.ToLower(strings.TrimSpace(term))
	result := make([]song.Song, 0)
	for _, s := range c.songs {
		if needle == "" ||
			strings.Contains(strings.ToLower(s.Title), needle) ||
			strings.Contains(strings.ToLower(s.Artist), needle) ||
			strings.Contains(strings.ToLower(s.Album), needle) {
			result = append(result, s)
		}
	}
	return result, nil
}

// FetchByID возвращает песню по ID или nil, если ее нет
func (c *Catalog) FetchByID(ctx context.Context, id string) (*song.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, &catalog.Error{Op: "fetch", Err: err}
	}
	for i := range c.songs {
		if c.songs[i].ID == id {
			s := c.songs[i]
			return &s, nil
		}
	}
	return nil, nil
}
