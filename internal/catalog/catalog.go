// Package catalog описывает границу с внешним музыкальным каталогом
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/hazadus/go-songrepo/internal/song"
)

// AuthorizationStatus результат запроса доступа к каталогу
type AuthorizationStatus int

// Возможные результаты авторизации
const (
	// NotDetermined - статус не удалось определить
	NotDetermined AuthorizationStatus = iota
	// Authorized - доступ разрешен
	Authorized
	// Denied - пользователь или сервер отказал в доступе
	Denied
	// Restricted - доступ ограничен политикой сервера
	Restricted
)

func (s AuthorizationStatus) String() string {
	switch s {
	case Authorized:
		return "authorized"
	case Denied:
		return "denied"
	case Restricted:
		return "restricted"
	default:
		return "notDetermined"
	}
}

// ParseAuthorizationStatus разбирает статус из строкового представления
func ParseAuthorizationStatus(value string) (AuthorizationStatus, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "authorized", "":
		return Authorized, nil
	case "denied":
		return Denied, nil
	case "restricted":
		return Restricted, nil
	case "notdetermined", "not_determined":
		return NotDetermined, nil
	}
	return NotDetermined, fmt.Errorf("неизвестный статус авторизации: %q", value)
}

// Client внешний каталог: авторизация, поиск и получение песни по ID.
// RequestAuthorization должен вернуть Authorized до любых вызовов Search.
type Client interface {
	RequestAuthorization(ctx context.Context) AuthorizationStatus
	Search(ctx context.Context, term string) ([]song.Song, error)
	// FetchByID возвращает (nil, nil), если песни с таким ID нет
	FetchByID(ctx context.Context, id string) (*song.Song, error)
}

// Error описывает ошибку каталога: сетевую, авторизации или ответа сервиса
type Error struct {
	Op      string // Операция каталога, например "search"
	Code    int    // Код ошибки сервиса, 0 если ответа не было
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("каталог: ")
	b.WriteString(e.Op)
	if e.Code != 0 {
		fmt.Fprintf(&b, ": код %d", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
