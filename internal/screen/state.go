// Package screen содержит конечный автомат экрана: авторизация, поиск, отображение.
//
// Transition не имеет побочных эффектов: он возвращает новое состояние и
// эффект, который должен выполнить вызывающий код (запросить авторизацию или
// выполнить поиск). Результаты эффектов возвращаются в автомат как события.
package screen

import (
	"fmt"

	"github.com/hazadus/go-songrepo/internal/catalog"
	"github.com/hazadus/go-songrepo/internal/song"
)

// Phase фаза жизненного цикла экрана
type Phase int

// Фазы экрана
const (
	// Unauthorized - начальная фаза, до загрузки экрана
	Unauthorized Phase = iota
	// Authorizing - ожидание ответа на запрос доступа
	Authorizing
	// Searching - доступ получен, выполняется поиск
	Searching
	// Displaying - результат поиска показан
	Displaying
	// Failed - цепочка завершилась ошибкой
	Failed
)

func (p Phase) String() string {
	switch p {
	case Unauthorized:
		return "unauthorized"
	case Authorizing:
		return "authorizing"
	case Searching:
		return "searching"
	case Displaying:
		return "displaying"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ErrorKind вид наблюдаемой ошибки экрана
type ErrorKind int

// Виды ошибок
const (
	KindNone ErrorKind = iota
	// KindAuthorizationDenied - доступ к каталогу не получен
	KindAuthorizationDenied
	// KindSearchFailed - любая ошибка клиента каталога при поиске
	KindSearchFailed
)

// Тексты статуса экрана
const (
	StatusLoading       = "Loading Songs..."
	StatusAuthorizing   = "Requesting music library access..."
	StatusSearching     = "Searching for Songs..."
	StatusNotAuthorized = "Music library access was not authorized.\nPlease check your privacy settings."
	StatusLoadFailed    = "Error loading songs.\nPlease try again later."
	StatusNoResults     = "No songs found."
)

// State неизменяемое состояние экрана
type State struct {
	phase  Phase
	status string
	kind   ErrorKind
	term   string
	songs  []song.Song
}

// NewState создает начальное состояние для поискового запроса
func NewState(term string) State {
	return State{
		phase:  Unauthorized,
		status: StatusLoading,
		term:   term,
	}
}

// Phase возвращает текущую фазу
func (s State) Phase() Phase { return s.phase }

// Status возвращает текст статуса
func (s State) Status() string { return s.status }

// ErrorKind возвращает вид ошибки для фазы Failed
func (s State) ErrorKind() ErrorKind { return s.kind }

// Term возвращает поисковый запрос
func (s State) Term() string { return s.term }

// Songs возвращает копию отображаемой последовательности
func (s State) Songs() []song.Song {
	return append([]song.Song(nil), s.songs...)
}

// Len возвращает число отображаемых песен
func (s State) Len() int { return len(s.songs) }

// First возвращает первую отображаемую песню
func (s State) First() (song.Song, bool) {
	if len(s.songs) == 0 {
		return song.Song{}, false
	}
	return s.songs[0], true
}

// ListVisible сообщает, показывается ли список
func (s State) ListVisible() bool { return s.phase == Displaying }

// Busy сообщает, нужен ли индикатор загрузки
func (s State) Busy() bool { return s.phase == Authorizing || s.phase == Searching }

// Effect действие, которое должен выполнить вызывающий код после перехода
type Effect int

// Эффекты переходов
const (
	EffectNone Effect = iota
	EffectRequestAuthorization
	EffectSearch
)

func (e Effect) String() string {
	switch e {
	case EffectRequestAuthorization:
		return "request_authorization"
	case EffectSearch:
		return "search"
	default:
		return "none"
	}
}

// Event событие автомата
type Event interface {
	isEvent()
}

// Load загрузка или перезагрузка экрана
type Load struct{}

// AuthorizationResult ответ на запрос доступа
type AuthorizationResult struct {
	Status catalog.AuthorizationStatus
}

// SearchSucceeded поиск вернул последовательность (возможно пустую)
type SearchSucceeded struct {
	Songs []song.Song
}

// SearchFailed поиск завершился ошибкой
type SearchFailed struct {
	Err error
}

// SongFetched песня загружена по ID
type SongFetched struct {
	Song song.Song
}

func (Load) isEvent()                {}
func (AuthorizationResult) isEvent() {}
func (SearchSucceeded) isEvent()     {}
func (SearchFailed) isEvent()        {}
func (SongFetched) isEvent()         {}

// Transition вычисляет новое состояние по событию.
// Неприменимые к текущей фазе события оставляют состояние без изменений.
func Transition(s State, e Event) (State, Effect) {
	switch e := e.(type) {
	case Load:
		return State{phase: Authorizing, status: StatusAuthorizing, term: s.term}, EffectRequestAuthorization

	case AuthorizationResult:
		if s.phase != Authorizing {
			return s, EffectNone
		}
		if e.Status != catalog.Authorized {
			return State{phase: Failed, status: StatusNotAuthorized, kind: KindAuthorizationDenied, term: s.term}, EffectNone
		}
		return State{phase: Searching, status: StatusSearching, term: s.term}, EffectSearch

	case SearchSucceeded:
		if s.phase != Searching {
			return s, EffectNone
		}
		next := State{phase: Displaying, term: s.term, songs: append([]song.Song(nil), e.Songs...)}
		if len(next.songs) == 0 {
			next.status = StatusNoResults
		}
		return next, EffectNone

	case SearchFailed:
		if s.phase != Searching {
			return s, EffectNone
		}
		return State{phase: Failed, status: StatusLoadFailed, kind: KindSearchFailed, term: s.term}, EffectNone

	case SongFetched:
		if s.phase != Displaying {
			return s, EffectNone
		}
		for _, existing := range s.songs {
			if existing.Equal(e.Song) {
				return s, EffectNone
			}
		}
		songs := make([]song.Song, len(s.songs), len(s.songs)+1)
		copy(songs, s.songs)
		return State{phase: Displaying, term: s.term, songs: append(songs, e.Song)}, EffectNone
	}

	return s, EffectNone
}
