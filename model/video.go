package model

import "time"

type VideoID string

type ChannelID string

// VideoRecord is the normalized shape of one catalog entry. Records are
// immutable after normalization; a refresh replaces them wholesale.
type VideoRecord struct {
	ID           VideoID
	Title        string
	Description  string
	ThumbnailURL string
	PublishedAt  time.Time
	ViewCount    int64
	LikeCount    int64
	CommentCount int64

	DurationSeconds int
	Duration        string
}

// CatalogPage is one upstream page of playlist membership. Items arrive
// in upstream page order, which is not necessarily chronological. An
// empty NextToken marks the end of the collection.
type CatalogPage struct {
	Items     []VideoID
	NextToken string
}

type Sort string

const (
	SortNewest        Sort = "newest"
	SortOldest        Sort = "oldest"
	SortMostViewed    Sort = "mostViewed"
	SortMostLiked     Sort = "mostLiked"
	SortMostCommented Sort = "mostCommented"
	SortRandom        Sort = "random"
)

// ParseSort maps a query-parameter value onto a Sort, defaulting to
// newest for anything unrecognized.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortOldest, SortMostViewed, SortMostLiked, SortMostCommented, SortRandom:
		return Sort(s)
	default:
		return SortNewest
	}
}
