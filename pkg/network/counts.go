package network

import (
	"cmp"
	"slices"
	"time"
)

// Weekdays in report order
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

type DayTripCount struct {
	DayOfWeek time.Weekday
	TripCount int
}

// TripCountsByWeekday counts distinct trips per day of the week, Monday first.
// Days with no service are reported with a zero count.
func TripCountsByWeekday(tripDays []TripDay) []DayTripCount {
	trips := map[time.Weekday]map[string]struct{}{}
	for _, tripDay := range tripDays {
		weekday := tripDay.Date.Weekday()
		if trips[weekday] == nil {
			trips[weekday] = map[string]struct{}{}
		}
		trips[weekday][tripDay.TripID] = struct{}{}
	}

	counts := make([]DayTripCount, 0, len(Weekdays))
	for _, weekday := range Weekdays {
		counts = append(counts, DayTripCount{
			DayOfWeek: weekday,
			TripCount: len(trips[weekday]),
		})
	}

	return counts
}

type StopConnectivity struct {
	StopID     string
	StopName   string
	Latitude   float64
	Longitude  float64
	RouteCount int
}

// Connectivity counts the distinct routes serving each stop of the network.
// Stops come out in stop id order.
func (n *Network) Connectivity() []StopConnectivity {
	tripRoutes := make(map[string]string, len(n.Trips))
	for _, trip := range n.Trips {
		tripRoutes[trip.ID] = trip.RouteID
	}

	stopRoutes := map[string]map[string]struct{}{}
	for _, stopTime := range n.StopTimes {
		routeID, exists := tripRoutes[stopTime.TripID]
		if !exists {
			continue
		}
		if stopRoutes[stopTime.StopID] == nil {
			stopRoutes[stopTime.StopID] = map[string]struct{}{}
		}
		stopRoutes[stopTime.StopID][routeID] = struct{}{}
	}

	var connectivity []StopConnectivity
	for _, stop := range n.Stops {
		routes, exists := stopRoutes[stop.ID]
		if !exists {
			continue
		}

		connectivity = append(connectivity, StopConnectivity{
			StopID:     stop.ID,
			StopName:   stop.Name,
			Latitude:   stop.Latitude,
			Longitude:  stop.Longitude,
			RouteCount: len(routes),
		})
	}

	slices.SortFunc(connectivity, func(a, b StopConnectivity) int {
		return cmp.Compare(a.StopID, b.StopID)
	})

	return connectivity
}
