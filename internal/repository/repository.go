// Package repository содержит in-memory хранилище песен: все, недавно прослушанные и избранные
package repository

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hazadus/go-songrepo/internal/catalog"
	"github.com/hazadus/go-songrepo/internal/song"
)

// collection упорядоченное множество песен по ID
type collection struct {
	songs []song.Song
	index map[string]struct{}
}

func newCollection() *collection {
	return &collection{index: make(map[string]struct{})}
}

// add добавляет песню, если ее ID еще нет в коллекции
func (c *collection) add(s song.Song) bool {
	if _, ok := c.index[s.ID]; ok {
		return false
	}
	c.index[s.ID] = struct{}{}
	c.songs = append(c.songs, s)
	return true
}

func (c *collection) snapshot() []song.Song {
	result := make([]song.Song, len(c.songs))
	copy(result, c.songs)
	return result
}

// Counts размеры коллекций репозитория
type Counts struct {
	All            int
	RecentlyPlayed int
	Favorites      int
}

// Repository управляет коллекциями песен в пределах жизни процесса
type Repository struct {
	mu             sync.RWMutex
	all            *collection
	recentlyPlayed *collection
	favorites      *collection
	catalog        catalog.Client
	logger         *zap.Logger
}

// New создает пустой репозиторий поверх клиента каталога
func New(client catalog.Client, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		all:            newCollection(),
		recentlyPlayed: newCollection(),
		favorites:      newCollection(),
		catalog:        client,
		logger:         logger.Named("repository"),
	}
}

func (r *Repository) addTo(c *collection, name string, s song.Song) bool {
	r.mu.Lock()
	added := c.add(s)
	r.mu.Unlock()

	if added {
		r.logger.Debug("песня добавлена", zap.String("collection", name), zap.String("song_id", s.ID))
	}
	return added
}

// AddSong добавляет песню в общий список; повторное добавление ничего не меняет
func (r *Repository) AddSong(s song.Song) bool {
	return r.addTo(r.all, "all", s)
}

// AddToRecentlyPlayed отмечает песню как прослушанную
func (r *Repository) AddToRecentlyPlayed(s song.Song) bool {
	return r.addTo(r.recentlyPlayed, "recently_played", s)
}

// AddToFavorites добавляет песню в избранное
func (r *Repository) AddToFavorites(s song.Song) bool {
	return r.addTo(r.favorites, "favorites", s)
}

// AllSongs возвращает копию общего списка в порядке добавления
func (r *Repository) AllSongs() []song.Song {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.all.snapshot()
}

// RecentlyPlayed возвращает копию списка прослушанных
func (r *Repository) RecentlyPlayed() []song.Song {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.recentlyPlayed.snapshot()
}

// Favorites возвращает копию избранного
func (r *Repository) Favorites() []song.Song {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.favorites.snapshot()
}

// Counts возвращает размеры всех коллекций
func (r *Repository) Counts() Counts {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Counts{
		All:            len(r.all.songs),
		RecentlyPlayed: len(r.recentlyPlayed.songs),
		Favorites:      len(r.favorites.songs),
	}
}

// SearchSongs выполняет поиск в каталоге. Порядок результата сохраняется,
// коллекции репозитория не изменяются.
func (r *Repository) SearchSongs(ctx context.Context, term string) ([]song.Song, error) {
	songs, err := r.catalog.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска песен по запросу %q: %w", term, err)
	}
	r.logger.Info("поиск выполнен", zap.String("term", term), zap.Int("count", len(songs)))
	return songs, nil
}

// LoadSong получает песню из каталога по ID и добавляет ее в общий список.
// Возвращает (nil, nil), если в каталоге такой песни нет.
func (r *Repository) LoadSong(ctx context.Context, id string) (*song.Song, error) {
	s, err := r.catalog.FetchByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки песни %s: %w", id, err)
	}
	if s == nil {
		r.logger.Info("песня не найдена в каталоге", zap.String("song_id", id))
		return nil, nil
	}
	r.AddSong(*s)
	return s, nil
}
