// Package subsonic реализует каталог поверх REST API Subsonic (Navidrome, Airsonic)
package subsonic

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hazadus/go-songrepo/internal/catalog"
	"github.com/hazadus/go-songrepo/internal/song"
)

// Коды ошибок Subsonic API
const (
	codeWrongCredentials     = 40
	codeTokenAuthUnsupported = 41
	codeNotAuthorized        = 50
	codeNotFound             = 70
)

// Config содержит настройки подключения к серверу
type Config struct {
	BaseURL    string
	Username   string
	Password   string
	ClientID   string
	APIVersion string
	SongCount  int
	Timeout    time.Duration
}

// Client клиент Subsonic API
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient создает клиент Subsonic
func NewClient(config Config, logger *zap.Logger) *Client {
	if config.ClientID == "" {
		config.ClientID = "songrepo"
	}
	if config.APIVersion == "" {
		config.APIVersion = "1.16.1"
	}
	if config.SongCount <= 0 {
		config.SongCount = 20
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger.Named("subsonic"),
	}
}

// apiError тело ошибки в ответе сервера
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// envelope общая обертка ответов Subsonic
type envelope struct {
	Response struct {
		Status        string    `json:"status"`
		Version       string    `json:"version"`
		Error         *apiError `json:"error,omitempty"`
		SearchResult3 struct {
			Songs []apiSong `json:"song"`
		} `json:"searchResult3"`
		Song *apiSong `json:"song,omitempty"`
	} `json:"subsonic-response"`
}

type apiSong struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Album    string `json:"album"`
	Artist   string `json:"artist"`
	Duration int    `json:"duration"`
	CoverArt string `json:"coverArt"`
}

func (s apiSong) toSong() song.Song {
	return song.Song{
		ID:       s.ID,
		Title:    s.Title,
		Artist:   s.Artist,
		Album:    s.Album,
		Duration: s.Duration,
		CoverArt: s.CoverArt,
	}
}

// authToken возвращает токен md5(password + salt) и соль
func authToken(password string) (token, salt string) {
	salt = strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	token = fmt.Sprintf("%x", md5.Sum([]byte(password+salt)))
	return token, salt
}

func (c *Client) buildParams(extra map[string]string) url.Values {
	token, salt := authToken(c.config.Password)
	params := url.Values{}
	params.Set("u", c.config.Username)
	params.Set("t", token)
	params.Set("s", salt)
	params.Set("v", c.config.APIVersion)
	params.Set("c", c.config.ClientID)
	params.Set("f", "json")

	for k, v := range extra {
		params.Set(k, v)
	}
	return params
}

// call выполняет запрос к методу API и разбирает ответ.
// Ответ со статусом failed возвращается как *catalog.Error с кодом сервиса.
func (c *Client) call(ctx context.Context, op, method string, extra map[string]string) (*envelope, error) {
	requestURL := fmt.Sprintf("%s/rest/%s?%s", c.config.BaseURL, method, c.buildParams(extra).Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &catalog.Error{Op: op, Message: "ошибка создания запроса", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &catalog.Error{Op: op, Message: "ошибка запроса", Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("ответ сервера",
		zap.String("method", method),
		zap.Int("http_status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &catalog.Error{
			Op:      op,
			Message: fmt.Sprintf("неожиданный HTTP статус %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &catalog.Error{Op: op, Message: "ошибка разбора JSON", Err: err}
	}

	if env.Response.Status != "ok" {
		apiErr := env.Response.Error
		if apiErr == nil {
			apiErr = &apiError{Message: fmt.Sprintf("статус ответа %q", env.Response.Status)}
		}
		return &env, &catalog.Error{Op: op, Code: apiErr.Code, Message: apiErr.Message}
	}

	return &env, nil
}

// RequestAuthorization проверяет учетные данные запросом ping
func (c *Client) RequestAuthorization(ctx context.Context) catalog.AuthorizationStatus {
	if c.config.BaseURL == "" || c.config.Username == "" {
		c.logger.Warn("не заданы адрес сервера или имя пользователя")
		return catalog.NotDetermined
	}

	_, err := c.call(ctx, "authorize", "ping.view", nil)
	if err == nil {
		return catalog.Authorized
	}

	var catErr *catalog.Error
	if errors.As(err, &catErr) {
		switch catErr.Code {
		case codeWrongCredentials:
			return catalog.Denied
		case codeTokenAuthUnsupported, codeNotAuthorized:
			return catalog.Restricted
		}
	}

	c.logger.Warn("не удалось определить статус авторизации", zap.Error(err))
	return catalog.NotDetermined
}

// Search ищет песни по строке запроса, порядок ответа сервера сохраняется
func (c *Client) Search(ctx context.Context, term string) ([]song.Song, error) {
	env, err := c.call(ctx, "search", "search3.view", map[string]string{
		"query":       term,
		"songCount":   strconv.Itoa(c.config.SongCount),
		"artistCount": "0",
		"albumCount":  "0",
	})
	if err != nil {
		return nil, err
	}

	apiSongs := env.Response.SearchResult3.Songs
	songs := make([]song.Song, len(apiSongs))
	for i, s := range apiSongs {
		songs[i] = s.toSong()
	}
	return songs, nil
}

// FetchByID получает песню по идентификатору каталога
func (c *Client) FetchByID(ctx context.Context, id string) (*song.Song, error) {
	env, err := c.call(ctx, "fetch", "getSong.view", map[string]string{"id": id})
	if err != nil {
		var catErr *catalog.Error
		if errors.As(err, &catErr) && catErr.Code == codeNotFound {
			return nil, nil
		}
		return nil, err
	}

	if env.Response.Song == nil {
		return nil, nil
	}
	s := env.Response.Song.toSong()
	return &s, nil
}
