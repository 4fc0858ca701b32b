// Package history builds the day-bucketed status summary shown on the
// dashboard for each service.
package history

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/stashboard/internal/server/models"
	"github.com/dmitrijs2005/stashboard/internal/timex"
)

// Replacement icon and name for days with non-default events.
const (
	InformationImage = "icons/fugue/information.png"
	InformationName  = "information"
)

// MaxEvents caps how many events of a window are considered.
const MaxEvents = 100

// Window returns the half-open range [from, to) covering the days calendar
// days strictly before start's day.
func Window(days int, start time.Time) (from, to time.Time) {
	to = timex.StartOfDay(start)
	from = to.AddDate(0, 0, -days)
	return from, to
}

// Build returns one record per calendar day of Window(days, start), newest
// first. Every day starts from the default status. A day gets the
// information icon once any event on it has a status other than def.
//
// Events outside the window are ignored. Events are applied in ascending
// Start order so the last write per day is that day's most recent event.
func Build(days int, def *models.Status, start time.Time, events []*models.Event) []models.HistoryDay {
	if days <= 0 {
		return []models.HistoryDay{}
	}

	from, to := Window(days, start)
	loc := to.Location()

	stats := make(map[string]*models.HistoryDay, days)
	result := make([]models.HistoryDay, 0, days)
	day := to
	for i := 0; i < days; i++ {
		day = day.AddDate(0, 0, -1)
		stats[dayKey(day)] = &models.HistoryDay{
			Image: def.Image,
			Name:  def.Name,
			Day:   day,
		}
	}

	ordered := make([]*models.Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start.Before(ordered[j].Start)
	})

	for _, e := range ordered {
		if e.Start.Before(from) || !e.Start.Before(to) {
			continue
		}
		if e.StatusSlug == def.Slug {
			continue
		}
		bucket, ok := stats[dayKey(e.Start.In(loc))]
		if !ok {
			continue
		}
		bucket.Image = InformationImage
		bucket.Name = InformationName
		bucket.Informational = true
	}

	for _, d := range stats {
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Day.After(result[j].Day)
	})
	return result
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
