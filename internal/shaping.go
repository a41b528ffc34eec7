package internal

import (
	"sort"
	"time"

	"github.com/derWhity/fyyur/internal/models"
)

// areaKey identifies the bucket a venue is sorted into on the venue list
type areaKey struct {
	city  string
	state string
}

// groupByArea sorts the venues into one area per distinct city and state. The areas keep the order in which their
// first venue appears in the input, the venues keep their input order inside each area
func groupByArea(venues []models.Venue, upcoming map[uint]uint) []models.Area {
	ret := []models.Area{}
	idx := make(map[areaKey]int)
	for _, v := range venues {
		key := areaKey{v.City, v.State}
		i, ok := idx[key]
		if !ok {
			i = len(ret)
			idx[key] = i
			ret = append(ret, models.Area{City: v.City, State: v.State, Venues: []models.Summary{}})
		}
		ret[i].Venues = append(ret[i].Venues, models.Summary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: upcoming[v.ID],
		})
	}
	return ret
}

// partitionShows splits the shows into past and upcoming ones relative to now. Shows starting exactly at now count as
// past. Both lists are ordered by start time, then by show ID
func partitionShows(rows []models.ShowRow, now time.Time) (past, upcoming []models.ShowRow) {
	sorted := make([]models.ShowRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].StartTime.Equal(sorted[j].StartTime) {
			return sorted[i].StartTime.Before(sorted[j].StartTime)
		}
		return sorted[i].ShowID < sorted[j].ShowID
	})
	past = []models.ShowRow{}
	upcoming = []models.ShowRow{}
	for _, row := range sorted {
		if row.Upcoming(now) {
			upcoming = append(upcoming, row)
		} else {
			past = append(past, row)
		}
	}
	return past, upcoming
}

// searchResult builds the result of a name search. Each entry's upcoming show count is looked up by its own ID
func searchResult(entries []models.Summary, upcoming map[uint]uint) *models.SearchResult {
	data := make([]models.Summary, 0, len(entries))
	for _, e := range entries {
		e.NumUpcomingShows = upcoming[e.ID]
		data = append(data, e)
	}
	return &models.SearchResult{Count: len(data), Data: data}
}
