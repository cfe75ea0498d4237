package storage

import (
	"errors"
	"testing"

	"github.com/aletube/catalogd/model"
)

func TestMemoryPreferenceSets(t *testing.T) {
	mem := NewMemory()

	if err := mem.Add("alice", model.KindBookmark, "v2"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := mem.Add("alice", model.KindBookmark, "v1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := mem.Add("alice", model.KindBookmark, "v1"); err != nil {
		t.Fatalf("duplicate add: %v", err)
	}
	if err := mem.Add("alice", model.KindLike, "v3"); err != nil {
		t.Fatalf("add like: %v", err)
	}

	ids, err := mem.List("alice", model.KindBookmark)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 || ids[0] != "v1" || ids[1] != "v2" {
		t.Errorf("bookmarks = %v, want [v1 v2]", ids)
	}

	if err := mem.Remove("alice", model.KindBookmark, "v1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	ids, _ = mem.List("alice", model.KindBookmark)
	if len(ids) != 1 || ids[0] != "v2" {
		t.Errorf("bookmarks after remove = %v, want [v2]", ids)
	}

	// kinds and viewers are isolated
	likes, _ := mem.List("alice", model.KindLike)
	if len(likes) != 1 {
		t.Errorf("likes = %v, want [v3]", likes)
	}
	other, _ := mem.List("bob", model.KindBookmark)
	if len(other) != 0 {
		t.Errorf("bob's bookmarks = %v, want empty", other)
	}
}

func TestMemoryPlaylists(t *testing.T) {
	mem := NewMemory()

	if err := mem.SavePlaylist(model.Playlist{Viewer: "alice", Name: "road trips", Videos: []model.VideoID{"v1", "v2"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := mem.SavePlaylist(model.Playlist{Viewer: "alice", Name: "cooking", Videos: []model.VideoID{"v3"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	playlists, err := mem.Playlists("alice")
	if err != nil {
		t.Fatalf("playlists: %v", err)
	}
	if len(playlists) != 2 || playlists[0].Name != "cooking" || playlists[1].Name != "road trips" {
		t.Errorf("playlists = %v, want sorted by name", playlists)
	}

	// saving under the same name replaces the contents but keeps the id
	originalID := playlists[1].ID
	if err := mem.SavePlaylist(model.Playlist{Viewer: "alice", Name: "road trips", Videos: []model.VideoID{"v9"}}); err != nil {
		t.Fatalf("resave: %v", err)
	}
	playlists, _ = mem.Playlists("alice")
	if playlists[1].ID != originalID {
		t.Error("resave should keep the playlist id")
	}
	if len(playlists[1].Videos) != 1 || playlists[1].Videos[0] != "v9" {
		t.Errorf("resaved videos = %v, want [v9]", playlists[1].Videos)
	}

	if err := mem.DeletePlaylist("alice", "cooking"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := mem.DeletePlaylist("alice", "cooking"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}
