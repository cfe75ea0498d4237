// Package storage holds viewer preferences: bookmark and like sets
// plus named playlists. The catalog core never touches this store;
// only the API layer does.
package storage

import (
	"errors"

	"github.com/aletube/catalogd/model"
)

var ErrNotFound = errors.New("storage: not found")

type PreferenceRepository interface {
	Add(viewer string, kind model.PreferenceKind, id model.VideoID) error
	Remove(viewer string, kind model.PreferenceKind, id model.VideoID) error
	List(viewer string, kind model.PreferenceKind) ([]model.VideoID, error)

	SavePlaylist(playlist model.Playlist) error
	Playlists(viewer string) ([]model.Playlist, error)
	DeletePlaylist(viewer, name string) error
}
