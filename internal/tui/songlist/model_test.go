package songlist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/hazadus/go-songrepo/internal/catalog"
	"github.com/hazadus/go-songrepo/internal/repository"
	"github.com/hazadus/go-songrepo/internal/screen"
	"github.com/hazadus/go-songrepo/internal/song"
)

var queenSongs = []song.Song{
	{ID: "a", Title: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera", Duration: 355},
	{ID: "b", Title: "Radio Ga Ga", Artist: "Queen", Album: "The Works", Duration: 348},
	{ID: "c", Title: "Under Pressure", Artist: "Queen", Album: "Hot Space", Duration: 248},
}

// stubCatalog каталог для тестов, считающий вызовы
type stubCatalog struct {
	status      catalog.AuthorizationStatus
	songs       []song.Song
	searchErr   error
	extra       map[string]song.Song
	searchCalls int
	searchTerms []string
}

func (c *stubCatalog) RequestAuthorization(context.Context) catalog.AuthorizationStatus {
	return c.status
}

func (c *stubCatalog) Search(_ context.Context, term string) ([]song.Song, error) {
	c.searchCalls++
	c.searchTerms = append(c.searchTerms, term)
	if c.searchErr != nil {
		return nil, c.searchErr
	}
	return c.songs, nil
}

func (c *stubCatalog) FetchByID(_ context.Context, id string) (*song.Song, error) {
	if s, ok := c.extra[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func newTestModel(c *stubCatalog) (*Model, *repository.Repository) {
	repo := repository.New(c, zap.NewNop())
	m := NewModel(c, repo, "Queen", zap.NewNop())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, repo
}

// execute выполняет команду и возвращает полученные сообщения, раскрывая пакеты.
// Тики спиннера отбрасываются, иначе анимация не закончится.
func execute(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg:
		return nil
	case tea.BatchMsg:
		var msgs []tea.Msg
		for _, c := range msg {
			msgs = append(msgs, execute(c)...)
		}
		return msgs
	default:
		return []tea.Msg{msg}
	}
}

// drive выполняет команды и передает их результаты в модель, пока очередь не опустеет
func drive(m *Model, cmd tea.Cmd) *Model {
	queue := execute(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]

		var next tea.Cmd
		m, next = m.Update(msg)
		queue = append(queue, execute(next)...)
	}
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m, _ := newTestModel(&stubCatalog{status: catalog.Authorized})

	if m.State().Phase() != screen.Unauthorized {
		t.Errorf("Ожидалась фаза unauthorized, получено %v", m.State().Phase())
	}
	if m.VisibleSongs() != nil {
		t.Error("До загрузки список не показывается")
	}
	if !strings.Contains(m.View(), screen.StatusLoading) {
		t.Errorf("Ожидался статус загрузки в представлении: %s", m.View())
	}
}

func TestLoadDisplaysSearchResults(t *testing.T) {
	c := &stubCatalog{status: catalog.Authorized, songs: queenSongs}
	m, repo := newTestModel(c)

	m = drive(m, m.Init())

	if m.State().Phase() != screen.Displaying {
		t.Fatalf("Ожидалась фаза displaying, получено %v", m.State().Phase())
	}
	if c.searchCalls != 1 || c.searchTerms[0] != "Queen" {
		t.Errorf("Ожидался один поиск по Queen, получено %d %v", c.searchCalls, c.searchTerms)
	}

	visible := m.VisibleSongs()
	if len(visible) != 3 {
		t.Fatalf("Ожидалось 3 строки, получено %d", len(visible))
	}
	for i, id := range []string{"a", "b", "c"} {
		if visible[i].ID != id {
			t.Errorf("Строка %d: ожидался ID %s, получено %s", i, id, visible[i].ID)
		}
	}

	// Найденные песни становятся известными репозиторию
	if counts := repo.Counts(); counts.All != 3 {
		t.Errorf("Ожидалось 3 песни в общем списке, получено %d", counts.All)
	}

	view := m.View()
	for _, expected := range []string{"Bohemian Rhapsody", "Radio Ga Ga", "Under Pressure", "05:55"} {
		if !strings.Contains(view, expected) {
			t.Errorf("Представление не содержит %q", expected)
		}
	}
}

func TestMarkFavoriteKeepsList(t *testing.T) {
	c := &stubCatalog{status: catalog.Authorized, songs: queenSongs}
	m, repo := newTestModel(c)
	m = drive(m, m.Init())

	// Курсор на второй строке, действие все равно применяется к первой песне
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(keyMsg("f"))

	favorites := repo.Favorites()
	if len(favorites) != 1 || favorites[0].ID != "a" {
		t.Fatalf("Ожидалась песня a в избранном, получено %+v", favorites)
	}
	if !strings.Contains(m.Notice(), "Bohemian Rhapsody") {
		t.Errorf("Ожидалось уведомление о песне, получено %q", m.Notice())
	}

	// Повторное действие не увеличивает избранное
	m, _ = m.Update(keyMsg("f"))
	if len(repo.Favorites()) != 1 {
		t.Errorf("Повторное добавление не должно увеличивать избранное, получено %d", len(repo.Favorites()))
	}

	visible := m.VisibleSongs()
	if len(visible) != 3 || visible[0].ID != "a" || visible[2].ID != "c" {
		t.Errorf("Действие не должно менять список, получено %+v", visible)
	}
}

func TestMarkPlayed(t *testing.T) {
	c := &stubCatalog{status: catalog.Authorized, songs: queenSongs}
	m, repo := newTestModel(c)
	m = drive(m, m.Init())

	m, _ = m.Update(keyMsg("p"))
	m, _ = m.Update(keyMsg("p"))

	played := repo.RecentlyPlayed()
	if len(played) != 1 || played[0].ID != "a" {
		t.Errorf("Ожидалась песня a в прослушанных, получено %+v", played)
	}
	if len(repo.Favorites()) != 0 {
		t.Error("Отметка о прослушивании не должна менять избранное")
	}
	if len(m.VisibleSongs()) != 3 {
		t.Errorf("Действие не должно менять список, получено %d", len(m.VisibleSongs()))
	}
}

func TestActionsWithoutSongs(t *testing.T) {
	c := &stubCatalog{status: catalog.Authorized}
	m, repo := newTestModel(c)
	m = drive(m, m.Init())

	m, _ = m.Update(keyMsg("p"))
	m, _ = m.Update(keyMsg("f"))

	if counts := repo.Counts(); counts.Favorites != 0 || counts.RecentlyPlayed != 0 {
		t.Errorf("Без песен действия ничего не меняют: %+v", counts)
	}
}

func TestAuthorizationNotGranted(t *testing.T) {
	for _, status := range []catalog.AuthorizationStatus{catalog.Denied, catalog.Restricted, catalog.NotDetermined} {
		t.Run(status.String(), func(t *testing.T) {
			c := &stubCatalog{status: status, songs: queenSongs}
			m, _ := newTestModel(c)

			m = drive(m, m.Init())

			if c.searchCalls != 0 {
				t.Errorf("Поиск не должен выполняться, выполнено %d", c.searchCalls)
			}
			if m.State().Phase() != screen.Failed || m.State().Status() != screen.StatusNotAuthorized {
				t.Errorf("Ожидалась ошибка авторизации, получено %v %q", m.State().Phase(), m.State().Status())
			}
			if m.VisibleSongs() != nil {
				t.Error("Список должен быть скрыт")
			}
			if !strings.Contains(m.View(), "not authorized") {
				t.Errorf("Представление должно содержать сообщение об отказе: %s", m.View())
			}
		})
	}
}

func TestSearchFailure(t *testing.T) {
	c := &stubCatalog{status: catalog.Authorized, searchErr: &catalog.Error{Op: "search", Message: "timeout"}}
	m, repo := newTestModel(c)

	m = drive(m, m.Init())

	if m.State().Phase() != screen.Failed || m.State().ErrorKind() != screen.KindSearchFailed {
		t.Fatalf("Ожидалась ошибка поиска, получено %v", m.State().Phase())
	}
	if !strings.Contains(m.View(), "Error loading songs.") {
		t.Errorf("Представление должно содержать сообщение об ошибке: %s", m.View())
	}
	if c.searchCalls != 1 {
		t.Errorf("Повтор поиска не выполняется, выполнено %d", c.searchCalls)
	}
	if repo.Counts().All != 0 {
		t.Error("Неудачный поиск не добавляет песни")
	}
}

func TestEmptyResultIsDisplayed(t *testing.T) {
	c := &stubCatalog{status: catalog.Authorized, songs: []song.Song{}}
	m, _ := newTestModel(c)

	m = drive(m, m.Init())

	if m.State().Phase() != screen.Displaying {
		t.Fatalf("Пустой результат отображается, получено %v", m.State().Phase())
	}
	if len(m.VisibleSongs()) != 0 {
		t.Errorf("Ожидался пустой список, получено %d", len(m.VisibleSongs()))
	}
	if !strings.Contains(m.View(), screen.StatusNoResults) {
		t.Errorf("Представление должно отличаться от загрузки: %s", m.View())
	}
}

func TestBusyStateShowsStatus(t *testing.T) {
	c := &stubCatalog{status: catalog.Authorized, songs: queenSongs}
	m, _ := newTestModel(c)

	// Только переход в authorizing, без выполнения команд
	_ = m.Init()

	if !m.State().Busy() {
		t.Fatal("Ожидалось состояние загрузки")
	}
	if !strings.Contains(m.View(), screen.StatusAuthorizing) {
		t.Errorf("Ожидался статус авторизации в представлении: %s", m.View())
	}
	if m.VisibleSongs() != nil {
		t.Error("Во время загрузки список скрыт")
	}
}

func TestStaleResultsDropped(t *testing.T) {
	c := &stubCatalog{status: catalog.Authorized, songs: queenSongs}
	m, _ := newTestModel(c)

	first := m.Init()
	firstMsgs := execute(first)
	if len(firstMsgs) != 1 {
		t.Fatalf("Ожидалось одно сообщение авторизации, получено %d", len(firstMsgs))
	}

	// Перезагрузка до прихода ответа первой цепочки
	reload, _ := m.Update(keyMsg("r"))
	m = reload

	// Ответ первой цепочки не влияет на новую
	m, cmd := m.Update(firstMsgs[0])
	if cmd != nil || m.State().Phase() != screen.Authorizing {
		t.Errorf("Устаревший ответ должен быть отброшен, фаза %v", m.State().Phase())
	}
	if c.searchCalls != 0 {
		t.Errorf("Устаревшая цепочка не должна запускать поиск, выполнено %d", c.searchCalls)
	}

	m, _ = m.Update(searchResultMsg{runID: "old-run", songs: queenSongs[:1]})
	if m.State().Phase() != screen.Authorizing {
		t.Errorf("Устаревший результат поиска должен быть отброшен, фаза %v", m.State().Phase())
	}
}

func TestReloadAfterDisplay(t *testing.T) {
	c := &stubCatalog{status: catalog.Authorized, songs: queenSongs}
	m, _ := newTestModel(c)
	m = drive(m, m.Init())

	c.songs = queenSongs[:2]
	m, cmd := m.Update(keyMsg("r"))
	if m.VisibleSongs() != nil {
		t.Error("При перезагрузке список скрывается")
	}
	m = drive(m, cmd)

	if c.searchCalls != 2 {
		t.Errorf("Ожидалось 2 поиска, выполнено %d", c.searchCalls)
	}
	if len(m.VisibleSongs()) != 2 {
		t.Errorf("Ожидалось 2 строки после перезагрузки, получено %d", len(m.VisibleSongs()))
	}
}

func TestPreloadAppendsFetchedSongs(t *testing.T) {
	killerQueen := song.Song{ID: "d", Title: "Killer Queen", Artist: "Queen"}
	c := &stubCatalog{
		status: catalog.Authorized,
		songs:  queenSongs,
		extra:  map[string]song.Song{"a": queenSongs[0], "d": killerQueen},
	}
	m, repo := newTestModel(c)
	m.SetPreloadIDs([]string{"a", "d", "missing"})

	m = drive(m, m.Init())

	visible := m.VisibleSongs()
	if len(visible) != 4 || visible[3].ID != "d" {
		t.Errorf("Ожидалась песня d в конце списка, получено %+v", visible)
	}
	if repo.Counts().All != 4 {
		t.Errorf("Ожидалось 4 песни в общем списке, получено %d", repo.Counts().All)
	}
}

func TestSelectIsInformational(t *testing.T) {
	c := &stubCatalog{status: catalog.Authorized, songs: queenSongs}
	m, repo := newTestModel(c)
	m = drive(m, m.Init())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	before := m.State()
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("Выбор строки не запускает команд")
	}
	if !strings.Contains(m.Notice(), "Radio Ga Ga") {
		t.Errorf("Ожидалось уведомление о выбранной песне, получено %q", m.Notice())
	}
	if m.State().Phase() != before.Phase() || m.State().Len() != before.Len() {
		t.Error("Выбор строки не меняет состояние")
	}
	if counts := repo.Counts(); counts.Favorites != 0 || counts.RecentlyPlayed != 0 {
		t.Errorf("Выбор строки не меняет коллекции: %+v", counts)
	}
}

func TestCollectionsKey(t *testing.T) {
	m, _ := newTestModel(&stubCatalog{status: catalog.Authorized})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if cmd == nil {
		t.Fatal("Ожидалась команда перехода к коллекциям")
	}
	if _, ok := cmd().(ShowCollectionsMsg); !ok {
		t.Error("Ожидалось сообщение ShowCollectionsMsg")
	}
}

func TestQuitCancelsRun(t *testing.T) {
	m, _ := newTestModel(&stubCatalog{status: catalog.Authorized})
	_ = m.Init()
	ctx := m.current.ctx

	m, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("Ожидалась команда выхода")
	}
	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Error("Выход должен отменять текущую цепочку")
	}
	if !strings.Contains(m.View(), "До свидания!") {
		t.Errorf("Ожидалось прощание, получено %s", m.View())
	}
}

func TestRenderPanicsOnForeignItem(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Ожидался panic для элемента другого типа")
		}
	}()

	m, _ := newTestModel(&stubCatalog{status: catalog.Authorized})
	var b strings.Builder
	songItemDelegate{}.Render(&b, m.list, 0, foreignItem{})
}

type foreignItem struct{}

func (foreignItem) FilterValue() string { return "" }
