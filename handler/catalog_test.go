package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aletube/catalogd/model"
	"github.com/aletube/catalogd/storage"
)

type staticCatalog struct {
	records []model.VideoRecord
	partial bool
	err     error
}

func (s *staticCatalog) Records() []model.VideoRecord { return s.records }
func (s *staticCatalog) Status() (bool, error)        { return s.partial, s.err }

type staticSummary struct {
	summary model.ChannelSummary
	err     error
}

func (s *staticSummary) Latest() (model.ChannelSummary, error) { return s.summary, s.err }

func newTestServer(catalogSource CatalogSource, summarySource SummarySource) *Server {
	return NewServer(catalogSource, summarySource, storage.NewMemory(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testRecords() []model.VideoRecord {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.VideoRecord{
		{ID: "video1", Title: "Episode 1", PublishedAt: t1, ViewCount: 500, Duration: "12:03"},
		{ID: "video2", Title: "Episode 2", PublishedAt: t1.Add(24 * time.Hour), ViewCount: 1_500_000, Duration: "1:02:03"},
		{ID: "video3", Title: "Road Trip", PublishedAt: t1.Add(48 * time.Hour), ViewCount: 12, Duration: "0:45"},
	}
}

type catalogResponse struct {
	Videos []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Views string `json:"views"`
	} `json:"videos"`
	Count   int    `json:"count"`
	Partial bool   `json:"partial"`
	Warning string `json:"warning"`
}

func TestCatalogList(t *testing.T) {
	server := newTestServer(&staticCatalog{records: testRecords()}, &staticSummary{})

	req := httptest.NewRequest(http.MethodGet, "/catalog?sort=mostViewed", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response catalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	require.Equal(t, 3, response.Count)
	assert.Equal(t, "video2", response.Videos[0].ID)
	assert.Equal(t, "1.5M", response.Videos[0].Views)
	assert.Equal(t, "video1", response.Videos[1].ID)
	assert.Equal(t, "video3", response.Videos[2].ID)
	assert.False(t, response.Partial)
}

func TestCatalogListFilter(t *testing.T) {
	server := newTestServer(&staticCatalog{records: testRecords()}, &staticSummary{})

	req := httptest.NewRequest(http.MethodGet, "/catalog?q=road", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response catalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	require.Equal(t, 1, response.Count)
	assert.Equal(t, "video3", response.Videos[0].ID)
}

func TestCatalogListPartialWarning(t *testing.T) {
	source := &staticCatalog{
		records: testRecords(),
		partial: true,
		err:     assert.AnError,
	}
	server := newTestServer(source, &staticSummary{})

	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response catalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	assert.True(t, response.Partial)
	assert.Equal(t, "some videos may be missing", response.Warning)
	assert.Equal(t, 3, response.Count, "partial data is still served")
}

func TestCatalogListUnavailable(t *testing.T) {
	server := newTestServer(&staticCatalog{err: assert.AnError}, &staticSummary{})

	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestChannelLatest(t *testing.T) {
	summary := &staticSummary{summary: model.ChannelSummary{
		ID:              "UC123",
		Title:           "AleTube",
		SubscriberCount: 125_000,
		ViewCount:       3_400_000,
		VideoCount:      212,
		CreatedAt:       time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC),
		FetchedAt:       time.Now(),
	}}
	server := newTestServer(&staticCatalog{}, summary)

	req := httptest.NewRequest(http.MethodGet, "/channel", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response struct {
		Title       string `json:"title"`
		Subscribers string `json:"subscribers"`
		Views       string `json:"views"`
		Videos      string `json:"videos"`
		Since       string `json:"since"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	assert.Equal(t, "AleTube", response.Title)
	assert.Equal(t, "125.0K", response.Subscribers)
	assert.Equal(t, "3.4M", response.Views)
	assert.Equal(t, "212", response.Videos)
	assert.Equal(t, "2019", response.Since)
}

func TestChannelUnavailable(t *testing.T) {
	server := newTestServer(&staticCatalog{}, &staticSummary{err: assert.AnError})

	req := httptest.NewRequest(http.MethodGet, "/channel", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestChannelHiddenSubscribers(t *testing.T) {
	summary := &staticSummary{summary: model.ChannelSummary{
		ID:              "UC123",
		Title:           "AleTube",
		SubscriberCount: -1,
		FetchedAt:       time.Now(),
	}}
	server := newTestServer(&staticCatalog{}, summary)

	req := httptest.NewRequest(http.MethodGet, "/channel", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	_, present := response["subscribers"]
	assert.False(t, present, "hidden subscriber counts are omitted, not zeroed")
}
