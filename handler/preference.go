package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aletube/catalogd/model"
	"github.com/aletube/catalogd/storage"
)

// PreferenceAPI exposes the viewer preference store:
//
//	GET    /preferences/{viewer}/bookmarks
//	PUT    /preferences/{viewer}/bookmarks/{videoID}
//	DELETE /preferences/{viewer}/bookmarks/{videoID}
//	       (same for likes)
//	GET    /preferences/{viewer}/playlists
//	PUT    /preferences/{viewer}/playlists/{name}   body: {"videos": [...]}
//	DELETE /preferences/{viewer}/playlists/{name}
type PreferenceAPI struct {
	repo   storage.PreferenceRepository
	logger *slog.Logger
}

func NewPreferenceAPI(repo storage.PreferenceRepository, logger *slog.Logger) *PreferenceAPI {
	return &PreferenceAPI{
		repo:   repo,
		logger: logger,
	}
}

func (p *PreferenceAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, tail := ShiftPath(r.URL.Path)
	section, tail := ShiftPath(tail)
	item, _ := ShiftPath(tail)

	if viewer == "" || section == "" {
		Error(w, http.StatusNotFound, "not found", errors.New("expected /preferences/{viewer}/{bookmarks|likes|playlists}"))
		return
	}

	switch section {
	case "bookmarks":
		p.serveSet(w, r, viewer, model.KindBookmark, item)
	case "likes":
		p.serveSet(w, r, viewer, model.KindLike, item)
	case "playlists":
		p.servePlaylists(w, r, viewer, item)
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("%q is not a preference section", section))
	}
}

func (p *PreferenceAPI) serveSet(w http.ResponseWriter, r *http.Request, viewer string, kind model.PreferenceKind, item string) {
	switch {
	case r.Method == http.MethodGet && item == "":
		ids, err := p.repo.List(viewer, kind)
		if err != nil {
			p.returnErr(w, http.StatusInternalServerError, "could not list preferences", err)
			return
		}
		p.returnJSON(w, struct {
			Videos []model.VideoID `json:"videos"`
		}{Videos: ids})
	case r.Method == http.MethodPut && item != "":
		if err := p.repo.Add(viewer, kind, model.VideoID(item)); err != nil {
			p.returnErr(w, http.StatusInternalServerError, "could not save preference", err)
			return
		}
		Message(w, http.StatusOK, "saved")
	case r.Method == http.MethodDelete && item != "":
		if err := p.repo.Remove(viewer, kind, model.VideoID(item)); err != nil {
			p.returnErr(w, http.StatusInternalServerError, "could not remove preference", err)
			return
		}
		Message(w, http.StatusOK, "removed")
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the preference api", r.Method, item))
	}
}

func (p *PreferenceAPI) servePlaylists(w http.ResponseWriter, r *http.Request, viewer, name string) {
	switch {
	case r.Method == http.MethodGet && name == "":
		playlists, err := p.repo.Playlists(viewer)
		if err != nil {
			p.returnErr(w, http.StatusInternalServerError, "could not list playlists", err)
			return
		}
		type respPlaylist struct {
			Name   string          `json:"name"`
			Videos []model.VideoID `json:"videos"`
		}
		resp := make([]respPlaylist, 0, len(playlists))
		for _, playlist := range playlists {
			resp = append(resp, respPlaylist{Name: playlist.Name, Videos: playlist.Videos})
		}
		p.returnJSON(w, struct {
			Playlists []respPlaylist `json:"playlists"`
		}{Playlists: resp})
	case r.Method == http.MethodPut && name != "":
		var body struct {
			Videos []model.VideoID `json:"videos"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			Error(w, http.StatusBadRequest, "could not decode playlist", err)
			return
		}
		playlist := model.Playlist{
			Viewer: viewer,
			Name:   name,
			Videos: body.Videos,
		}
		if err := p.repo.SavePlaylist(playlist); err != nil {
			p.returnErr(w, http.StatusInternalServerError, "could not save playlist", err)
			return
		}
		Message(w, http.StatusOK, "saved")
	case r.Method == http.MethodDelete && name != "":
		err := p.repo.DeletePlaylist(viewer, name)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			Error(w, http.StatusNotFound, "no such playlist", err)
		case err != nil:
			p.returnErr(w, http.StatusInternalServerError, "could not delete playlist", err)
		default:
			Message(w, http.StatusOK, "deleted")
		}
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the preference api", r.Method, name))
	}
}

func (p *PreferenceAPI) returnJSON(w http.ResponseWriter, response any) {
	jsonBody, err := json.Marshal(response)
	if err != nil {
		p.returnErr(w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(jsonBody)
}

func (p *PreferenceAPI) returnErr(w http.ResponseWriter, status int, message string, err error) {
	p.logger.Error(message, slog.String("err", err.Error()))
	Error(w, status, message, err)
}
