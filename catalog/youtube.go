package catalog

import (
	"context"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/youtube/v3"

	"github.com/aletube/catalogd/format"
	"github.com/aletube/catalogd/model"
)

const requestTimeout = 10 * time.Second

// Youtube implements the upstream interfaces over the Data API. All
// calls share one rate limiter so a full catalog fetch stays inside
// the quota, and each call carries its own timeout.
type Youtube struct {
	client  *youtube.Service
	limiter *rate.Limiter
}

func NewYoutube(client *youtube.Service) *Youtube {
	return &Youtube{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(8), 8),
	}
}

func (y *Youtube) Resolve(ctx context.Context, id model.ChannelID) (model.ChannelSummary, string, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return model.ChannelSummary{}, "", err
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	response, err := y.client.Channels.
		List([]string{"snippet", "contentDetails", "statistics"}).
		Id(string(id)).
		Context(ctx).
		Do()
	if err != nil {
		return model.ChannelSummary{}, "", err
	}
	if len(response.Items) == 0 {
		return model.ChannelSummary{}, "", ErrChannelNotFound
	}

	item := response.Items[0]
	summary := model.ChannelSummary{
		ID:        id,
		FetchedAt: time.Now(),
	}
	if item.Snippet != nil {
		summary.Title = item.Snippet.Title
		summary.ThumbnailURL = bestThumbnail(item.Snippet.Thumbnails)
		summary.CreatedAt = parseTimestamp(item.Snippet.PublishedAt)
	}
	if item.Statistics != nil {
		summary.SubscriberCount = int64(item.Statistics.SubscriberCount)
		if item.Statistics.HiddenSubscriberCount {
			summary.SubscriberCount = -1
		}
		summary.ViewCount = int64(item.Statistics.ViewCount)
		summary.VideoCount = int64(item.Statistics.VideoCount)
	}

	uploads := ""
	if item.ContentDetails != nil && item.ContentDetails.RelatedPlaylists != nil {
		uploads = item.ContentDetails.RelatedPlaylists.Uploads
	}
	if uploads == "" {
		return summary, "", ErrUploadsNotFound
	}

	return summary, uploads, nil
}

func (y *Youtube) Page(ctx context.Context, playlistID, token string, size int64) (model.CatalogPage, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return model.CatalogPage{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	call := y.client.PlaylistItems.
		List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(size).
		Context(ctx)
	if token != "" {
		call = call.PageToken(token)
	}

	response, err := call.Do()
	if err != nil {
		return model.CatalogPage{}, err
	}

	page := model.CatalogPage{NextToken: response.NextPageToken}
	for _, item := range response.Items {
		if item.Snippet == nil || item.Snippet.ResourceId == nil {
			continue
		}
		page.Items = append(page.Items, model.VideoID(item.Snippet.ResourceId.VideoId))
	}

	return page, nil
}

func (y *Youtube) Details(ctx context.Context, ids []model.VideoID) ([]model.VideoRecord, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = string(id)
	}

	response, err := y.client.Videos.
		List([]string{"snippet", "contentDetails", "statistics"}).
		Id(strings.Join(strIDs, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	records := make([]model.VideoRecord, 0, len(response.Items))
	for _, item := range response.Items {
		records = append(records, normalizeVideo(item))
	}

	return records, nil
}

// normalizeVideo maps one raw item onto a VideoRecord. Missing parts
// get safe defaults instead of dropping the item: zero counts, zero
// duration, thumbnail cascade high to medium to default.
func normalizeVideo(item *youtube.Video) model.VideoRecord {
	record := model.VideoRecord{
		ID:       model.VideoID(item.Id),
		Duration: "0:00",
	}
	if item.Snippet != nil {
		record.Title = item.Snippet.Title
		record.Description = item.Snippet.Description
		record.ThumbnailURL = bestThumbnail(item.Snippet.Thumbnails)
		record.PublishedAt = parseTimestamp(item.Snippet.PublishedAt)
	}
	if item.ContentDetails != nil {
		d := format.DecodeDuration(item.ContentDetails.Duration)
		record.DurationSeconds = d.TotalSeconds
		record.Duration = d.Display
	}
	if item.Statistics != nil {
		record.ViewCount = int64(item.Statistics.ViewCount)
		record.LikeCount = int64(item.Statistics.LikeCount)
		record.CommentCount = int64(item.Statistics.CommentCount)
	}

	return record
}

func bestThumbnail(thumbs *youtube.ThumbnailDetails) string {
	if thumbs == nil {
		return ""
	}
	for _, t := range []*youtube.Thumbnail{thumbs.High, thumbs.Medium, thumbs.Default} {
		if t != nil && t.Url != "" {
			return t.Url
		}
	}

	return ""
}

func parseTimestamp(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
