package storage

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/aletube/catalogd/model"
)

// Memory is a PreferenceRepository for tests and deployments without
// Postgres.
type Memory struct {
	mu        sync.Mutex
	sets      map[string]map[model.PreferenceKind]map[model.VideoID]bool
	playlists map[string]map[string]model.Playlist
}

func NewMemory() *Memory {
	return &Memory{
		sets:      map[string]map[model.PreferenceKind]map[model.VideoID]bool{},
		playlists: map[string]map[string]model.Playlist{},
	}
}

func (m *Memory) Add(viewer string, kind model.PreferenceKind, id model.VideoID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sets[viewer] == nil {
		m.sets[viewer] = map[model.PreferenceKind]map[model.VideoID]bool{}
	}
	if m.sets[viewer][kind] == nil {
		m.sets[viewer][kind] = map[model.VideoID]bool{}
	}
	m.sets[viewer][kind][id] = true

	return nil
}

func (m *Memory) Remove(viewer string, kind model.PreferenceKind, id model.VideoID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sets[viewer][kind], id)

	return nil
}

func (m *Memory) List(viewer string, kind model.PreferenceKind) ([]model.VideoID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := []model.VideoID{}
	for id := range m.sets[viewer][kind] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}

func (m *Memory) SavePlaylist(playlist model.Playlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if playlist.ID == uuid.Nil {
		playlist.ID = uuid.New()
	}
	if m.playlists[playlist.Viewer] == nil {
		m.playlists[playlist.Viewer] = map[string]model.Playlist{}
	}
	if existing, ok := m.playlists[playlist.Viewer][playlist.Name]; ok {
		playlist.ID = existing.ID
	}
	m.playlists[playlist.Viewer][playlist.Name] = playlist

	return nil
}

func (m *Memory) Playlists(viewer string) ([]model.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	playlists := []model.Playlist{}
	for _, playlist := range m.playlists[viewer] {
		playlists = append(playlists, playlist)
	}
	sort.Slice(playlists, func(i, j int) bool { return playlists[i].Name < playlists[j].Name })

	return playlists, nil
}

func (m *Memory) DeletePlaylist(viewer, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.playlists[viewer][name]; !ok {
		return ErrNotFound
	}
	delete(m.playlists[viewer], name)

	return nil
}
