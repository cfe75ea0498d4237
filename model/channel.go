package model

import "time"

// ChannelSummary is an immutable snapshot of channel-level statistics.
// Counts that the upstream withholds (hidden subscriber counts) are
// carried as -1 so the presentation layer can distinguish "hidden"
// from zero.
type ChannelSummary struct {
	ID              ChannelID
	Title           string
	ThumbnailURL    string
	SubscriberCount int64
	ViewCount       int64
	VideoCount      int64
	CreatedAt       time.Time
	FetchedAt       time.Time
}
