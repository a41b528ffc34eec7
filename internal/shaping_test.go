package internal

import (
	"testing"
	"time"

	"github.com/derWhity/fyyur/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByArea(t *testing.T) {
	venues := []models.Venue{
		{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA"},
		{ID: 2, Name: "The Dueling Pianos Bar", City: "New York", State: "NY"},
		{ID: 3, Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA"},
		{ID: 4, Name: "Portland Venue", City: "Portland", State: "ME"},
		{ID: 5, Name: "Other Portland", City: "Portland", State: "OR"},
	}
	areas := groupByArea(venues, map[uint]uint{3: 1, 7: 5})
	require.Len(t, areas, 4)

	assert.Equal(t, "San Francisco", areas[0].City)
	assert.Equal(t, []models.Summary{
		{ID: 1, Name: "The Musical Hop"},
		{ID: 3, Name: "Park Square Live Music & Coffee", NumUpcomingShows: 1},
	}, areas[0].Venues)
	assert.Equal(t, "NY", areas[1].State)
	assert.Equal(t, "ME", areas[2].State)
	assert.Equal(t, "OR", areas[3].State)

	// Every venue ends up in exactly one area
	seen := map[uint]int{}
	for _, a := range areas {
		for _, v := range a.Venues {
			seen[v.ID]++
		}
	}
	assert.Len(t, seen, len(venues))
	for id, n := range seen {
		assert.Equal(t, 1, n, "venue %d", id)
	}

	assert.NotNil(t, groupByArea(nil, nil))
	assert.Empty(t, groupByArea(nil, nil))
}

func TestPartitionShows(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := []models.ShowRow{
		{ShowID: 1, StartTime: now.Add(2 * time.Hour)},
		{ShowID: 2, StartTime: now.Add(-2 * time.Hour)},
		{ShowID: 3, StartTime: now},
		{ShowID: 4, StartTime: now.Add(time.Hour)},
		{ShowID: 5, StartTime: now.Add(-2 * time.Hour)},
	}
	past, upcoming := partitionShows(rows, now)

	ids := func(rows []models.ShowRow) []uint {
		ret := []uint{}
		for _, r := range rows {
			ret = append(ret, r.ShowID)
		}
		return ret
	}
	assert.Equal(t, []uint{2, 5, 3}, ids(past))
	assert.Equal(t, []uint{4, 1}, ids(upcoming))
	assert.Len(t, append(past, upcoming...), len(rows))
	assert.Equal(t, uint(1), rows[0].ShowID, "input must stay untouched")

	past, upcoming = partitionShows(nil, now)
	assert.NotNil(t, past)
	assert.NotNil(t, upcoming)
}

func TestSearchResult(t *testing.T) {
	res := searchResult([]models.Summary{{ID: 2, Name: "B"}, {ID: 1, Name: "A"}}, map[uint]uint{1: 4})
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, uint(0), res.Data[0].NumUpcomingShows)
	assert.Equal(t, uint(4), res.Data[1].NumUpcomingShows)

	empty := searchResult(nil, nil)
	assert.Equal(t, 0, empty.Count)
	assert.NotNil(t, empty.Data)
}
