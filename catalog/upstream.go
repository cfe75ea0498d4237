package catalog

import (
	"context"

	"github.com/aletube/catalogd/model"
)

// ChannelResolver looks up channel-level metadata and the id of the
// uploads playlist that enumerates the channel's videos.
type ChannelResolver interface {
	Resolve(ctx context.Context, id model.ChannelID) (model.ChannelSummary, string, error)
}

// PlaylistLister fetches one membership page of a playlist. An empty
// token requests the first page.
type PlaylistLister interface {
	Page(ctx context.Context, playlistID, token string, size int64) (model.CatalogPage, error)
}

// DetailFetcher resolves full, normalized records for up to 50 video
// ids per call.
type DetailFetcher interface {
	Details(ctx context.Context, ids []model.VideoID) ([]model.VideoRecord, error)
}
