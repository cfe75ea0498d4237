package catalog

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aletube/catalogd/model"
)

var queryBase = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testRecord(id string, published time.Time, views, likes, comments int64) model.VideoRecord {
	return model.VideoRecord{
		ID:           model.VideoID(id),
		Title:        "Episode " + id,
		Description:  "description of " + id,
		PublishedAt:  published,
		ViewCount:    views,
		LikeCount:    likes,
		CommentCount: comments,
	}
}

func TestQueryOrders(t *testing.T) {
	t1, t2, t3 := queryBase, queryBase.Add(time.Hour), queryBase.Add(2*time.Hour)
	records := []model.VideoRecord{
		testRecord("video1", t1, 500, 10, 3),
		testRecord("video2", t2, 1_500_000, 200, 9),
		testRecord("video3", t3, 12, 0, 1),
	}

	for _, tc := range []struct {
		by   model.Sort
		want []model.VideoID
	}{
		{model.SortMostViewed, []model.VideoID{"video2", "video1", "video3"}},
		{model.SortNewest, []model.VideoID{"video3", "video2", "video1"}},
		{model.SortOldest, []model.VideoID{"video1", "video2", "video3"}},
		{model.SortMostLiked, []model.VideoID{"video2", "video1", "video3"}},
		{model.SortMostCommented, []model.VideoID{"video2", "video1", "video3"}},
	} {
		t.Run(string(tc.by), func(t *testing.T) {
			got := Query(records, tc.by, "", nil)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestQuerySortStability(t *testing.T) {
	published := queryBase
	records := []model.VideoRecord{
		testRecord("a", published, 10, 0, 0),
		testRecord("b", published, 20, 0, 0),
		testRecord("c", published.Add(time.Hour), 5, 0, 0),
	}

	first := Query(records, model.SortNewest, "", nil)
	second := Query(records, model.SortNewest, "", nil)

	assert.Equal(t, ids(first), ids(second))
	// the tied pair keeps input order
	assert.Equal(t, []model.VideoID{"c", "a", "b"}, ids(first))
}

func TestQueryDoesNotMutateInput(t *testing.T) {
	records := []model.VideoRecord{
		testRecord("a", queryBase.Add(time.Hour), 1, 0, 0),
		testRecord("b", queryBase, 2, 0, 0),
	}

	Query(records, model.SortOldest, "", nil)

	assert.Equal(t, []model.VideoID{"a", "b"}, ids(records))
}

func TestQueryFilter(t *testing.T) {
	records := []model.VideoRecord{
		{ID: "a", Title: "Road Trip Special", Description: "we drive"},
		{ID: "b", Title: "Cooking", Description: "a road dinner"},
		{ID: "c", Title: "Q&A", Description: "questions"},
	}

	got := Query(records, model.SortNewest, "ROAD", nil)
	assert.Equal(t, []model.VideoID{"a", "b"}, ids(got))

	empty := Query(records, model.SortNewest, "  ", nil)
	assert.Len(t, empty, 3)
}

func TestQueryFilterIdempotent(t *testing.T) {
	records := []model.VideoRecord{
		{ID: "a", Title: "Road Trip Special"},
		{ID: "b", Title: "Cooking"},
		{ID: "c", Description: "on the road again"},
	}

	once := Query(records, model.SortNewest, "road", nil)
	twice := Query(once, model.SortNewest, "road", nil)

	assert.Equal(t, once, twice)
}

func TestQueryRandom(t *testing.T) {
	records := make([]model.VideoRecord, 0, 20)
	for i := 0; i < 20; i++ {
		records = append(records, testRecord(string(rune('a'+i)), queryBase.Add(time.Duration(i)*time.Hour), int64(i), 0, 0))
	}

	a := Query(records, model.SortRandom, "", rand.New(rand.NewSource(1)))
	b := Query(records, model.SortRandom, "", rand.New(rand.NewSource(1)))
	assert.Equal(t, ids(a), ids(b), "same seed must reproduce the shuffle")
	assert.ElementsMatch(t, ids(records), ids(a), "shuffle keeps every record")

	c := Query(records, model.SortRandom, "", rand.New(rand.NewSource(2)))
	assert.NotEqual(t, ids(a), ids(c), "different seeds should reorder 20 records")
}

func ids(records []model.VideoRecord) []model.VideoID {
	out := make([]model.VideoID, len(records))
	for i, record := range records {
		out[i] = record.ID
	}
	return out
}
