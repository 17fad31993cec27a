// Package song содержит модель песни из музыкального каталога
package song

import "fmt"

// Song описывает трек, полученный из каталога.
// После получения значение не изменяется; идентичность определяется полем ID.
type Song struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Artist   string `yaml:"artist"`
	Album    string `yaml:"album"`
	Duration int    `yaml:"duration"` // Длительность в секундах
	CoverArt string `yaml:"cover_art"`
}

// Equal сообщает, описывают ли два значения одну и ту же песню каталога
func (s Song) Equal(other Song) bool {
	return s.ID == other.ID
}

// String возвращает строку вида "Исполнитель - Название"
func (s Song) String() string {
	if s.Artist == "" {
		return s.Title
	}
	return fmt.Sprintf("%s - %s", s.Artist, s.Title)
}
