package geo

import (
	"math"
	"sort"

	"eventlistings/internal/domain"
)

// FilterByDistance keeps the events within radiusKm of origin, annotates each with its
// distance rounded to two decimals, and returns them nearest first. Events without both
// coordinates are dropped. Ties keep their input order.
func FilterByDistance(events []*domain.Event, origin domain.GeoPoint, radiusKm float64) []*domain.Event {
	kept := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if !e.HasCoordinates() {
			continue
		}
		d := DistanceKm(origin.Lat, origin.Lng, *e.Lat, *e.Lng)
		if d > radiusKm {
			continue
		}
		rounded := roundTo2(d)
		e.DistanceKm = &rounded
		kept = append(kept, e)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return *kept[i].DistanceKm < *kept[j].DistanceKm
	})
	return kept
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
