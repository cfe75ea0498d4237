package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aletube/catalogd/catalog"
	"github.com/aletube/catalogd/format"
	"github.com/aletube/catalogd/model"
)

type CatalogAPI struct {
	catalog CatalogSource
	logger  *slog.Logger
	now     func() time.Time
}

func NewCatalogAPI(source CatalogSource, logger *slog.Logger) *CatalogAPI {
	return &CatalogAPI{
		catalog: source,
		logger:  logger,
		now:     time.Now,
	}
}

func (c *CatalogAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodGet && sub == "":
		c.List(w, r)
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the catalog api", r.Method, sub))
	}
}

type respVideo struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Thumbnail    string    `json:"thumbnail"`
	PublishedAt  time.Time `json:"published_at"`
	Published    string    `json:"published"`
	ViewCount    int64     `json:"view_count"`
	Views        string    `json:"views"`
	LikeCount    int64     `json:"like_count"`
	Likes        string    `json:"likes"`
	CommentCount int64     `json:"comment_count"`
	Comments     string    `json:"comments"`
	Duration     string    `json:"duration"`
}

// List renders the current catalog view. Sort and filter come from the
// "sort" and "q" query parameters.
func (c *CatalogAPI) List(w http.ResponseWriter, r *http.Request) {
	records := c.catalog.Records()
	partial, lastErr := c.catalog.Status()
	if len(records) == 0 && lastErr != nil {
		c.returnErr(w, http.StatusServiceUnavailable, "catalog unavailable", lastErr)
		return
	}

	view := catalog.Query(records, model.ParseSort(r.URL.Query().Get("sort")), r.URL.Query().Get("q"), nil)

	now := c.now()
	videos := make([]respVideo, 0, len(view))
	for _, record := range view {
		videos = append(videos, respVideo{
			ID:           string(record.ID),
			Title:        record.Title,
			Description:  record.Description,
			Thumbnail:    record.ThumbnailURL,
			PublishedAt:  record.PublishedAt,
			Published:    format.RelativeTime(record.PublishedAt, now),
			ViewCount:    record.ViewCount,
			Views:        format.CompactNumber(record.ViewCount),
			LikeCount:    record.LikeCount,
			Likes:        format.CompactNumber(record.LikeCount),
			CommentCount: record.CommentCount,
			Comments:     format.CompactNumber(record.CommentCount),
			Duration:     record.Duration,
		})
	}

	response := struct {
		Videos  []respVideo `json:"videos"`
		Count   int         `json:"count"`
		Partial bool        `json:"partial"`
		Warning string      `json:"warning,omitempty"`
	}{
		Videos:  videos,
		Count:   len(videos),
		Partial: partial,
	}
	if partial {
		response.Warning = "some videos may be missing"
	}

	jsonBody, err := json.Marshal(response)
	if err != nil {
		c.returnErr(w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(jsonBody)
}

func (c *CatalogAPI) returnErr(w http.ResponseWriter, status int, message string, err error, details ...any) {
	c.logger.Error(message, slog.String("err", err.Error()), slog.String("details", fmt.Sprintf("%+v", details)))
	Error(w, status, message, err, details...)
}
