package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aletube/catalogd/format"
)

type ChannelAPI struct {
	summary SummarySource
	logger  *slog.Logger
}

func NewChannelAPI(summary SummarySource, logger *slog.Logger) *ChannelAPI {
	return &ChannelAPI{
		summary: summary,
		logger:  logger,
	}
}

func (c *ChannelAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodGet && sub == "":
		c.Latest(w, r)
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the channel api", r.Method, sub))
	}
}

// Latest returns the current channel snapshot. When no snapshot exists
// yet the error is surfaced as-is; there are no placeholder values.
func (c *ChannelAPI) Latest(w http.ResponseWriter, r *http.Request) {
	summary, lastErr := c.summary.Latest()
	if summary.FetchedAt.IsZero() {
		if lastErr == nil {
			lastErr = errors.New("no channel snapshot yet")
		}
		c.logger.Error("channel summary unavailable", slog.String("err", lastErr.Error()))
		Error(w, http.StatusServiceUnavailable, "channel summary unavailable", lastErr)
		return
	}

	response := struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Thumbnail   string `json:"thumbnail"`
		Subscribers string `json:"subscribers,omitempty"`
		Views       string `json:"views"`
		Videos      string `json:"videos"`
		Since       string `json:"since,omitempty"`
		FetchedAt   string `json:"fetched_at"`
		Stale       bool   `json:"stale,omitempty"`
	}{
		ID:        string(summary.ID),
		Title:     summary.Title,
		Thumbnail: summary.ThumbnailURL,
		Views:     format.CompactNumber(summary.ViewCount),
		Videos:    format.CompactNumber(summary.VideoCount),
		FetchedAt: summary.FetchedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Stale:     lastErr != nil,
	}
	if summary.SubscriberCount >= 0 {
		response.Subscribers = format.CompactNumber(summary.SubscriberCount)
	}
	if !summary.CreatedAt.IsZero() {
		response.Since = strconv.Itoa(summary.CreatedAt.Year())
	}

	jsonBody, err := json.Marshal(response)
	if err != nil {
		c.logger.Error("could not marshal response", slog.String("err", err.Error()))
		Error(w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(jsonBody)
}
