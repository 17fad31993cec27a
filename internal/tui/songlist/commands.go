package songlist

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-songrepo/internal/catalog"
	"github.com/hazadus/go-songrepo/internal/repository"
	"github.com/hazadus/go-songrepo/internal/song"
)

// Результаты команд несут идентификатор цепочки, чтобы Update мог
// отбросить ответы цепочки, замененной перезагрузкой.

type authorizationMsg struct {
	runID  string
	status catalog.AuthorizationStatus
}

type searchResultMsg struct {
	runID string
	songs []song.Song
	err   error
}

type songFetchedMsg struct {
	runID string
	id    string
	song  *song.Song
	err   error
}

func authorizeCmd(ctx context.Context, client catalog.Client, runID string) tea.Cmd {
	return func() tea.Msg {
		return authorizationMsg{runID: runID, status: client.RequestAuthorization(ctx)}
	}
}

func searchCmd(ctx context.Context, repo *repository.Repository, term, runID string) tea.Cmd {
	return func() tea.Msg {
		songs, err := repo.SearchSongs(ctx, term)
		return searchResultMsg{runID: runID, songs: songs, err: err}
	}
}

func fetchCmd(ctx context.Context, repo *repository.Repository, id, runID string) tea.Cmd {
	return func() tea.Msg {
		s, err := repo.LoadSong(ctx, id)
		return songFetchedMsg{runID: runID, id: id, song: s, err: err}
	}
}
