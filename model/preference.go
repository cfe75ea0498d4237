package model

import "github.com/google/uuid"

// PreferenceKind distinguishes the flat per-viewer video-id sets.
type PreferenceKind string

const (
	KindBookmark PreferenceKind = "bookmark"
	KindLike     PreferenceKind = "like"
)

// Playlist is a viewer-named, ordered selection of videos.
type Playlist struct {
	ID     uuid.UUID
	Viewer string
	Name   string
	Videos []VideoID
}
