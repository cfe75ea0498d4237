package catalog

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/aletube/catalogd/model"
)

// Query returns an ordered view of records without mutating the input.
// The filter is a case-insensitive substring match against title or
// description; empty text passes everything. Deterministic orders use
// a stable sort so ties keep their relative order across calls. Random
// reshuffles on every call; pass rnd for a reproducible shuffle, nil
// for a time-seeded one.
func Query(records []model.VideoRecord, by model.Sort, filter string, rnd *rand.Rand) []model.VideoRecord {
	needle := strings.ToLower(strings.TrimSpace(filter))
	out := make([]model.VideoRecord, 0, len(records))
	for _, record := range records {
		if needle != "" &&
			!strings.Contains(strings.ToLower(record.Title), needle) &&
			!strings.Contains(strings.ToLower(record.Description), needle) {
			continue
		}
		out = append(out, record)
	}

	switch by {
	case model.SortRandom:
		if rnd == nil {
			rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		rnd.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	case model.SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PublishedAt.Before(out[j].PublishedAt)
		})
	case model.SortMostViewed:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ViewCount > out[j].ViewCount
		})
	case model.SortMostLiked:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].LikeCount > out[j].LikeCount
		})
	case model.SortMostCommented:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CommentCount > out[j].CommentCount
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		})
	}

	return out
}
