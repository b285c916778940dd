package network

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
	"github.com/travigo/headways/pkg/gtfs"
	"github.com/travigo/headways/pkg/util"
)

var ErrEmptySelection = errors.New("no routes matched the selection")

// AnyRouteType disables the route type filter. Zero is a real route type (tram).
const AnyRouteType = -1

// Selection picks the routes and service days that make up the analysed network.
// Expression is optional and is evaluated against each gtfs.Route, for example
// `Type == 401 && ShortName in ["10", "11"]`.
type Selection struct {
	AgencyID        string
	RouteShortNames []string
	RouteType       int
	Expression      string

	Start time.Time
	End   time.Time
}

// TripDay is one trip running on one date. Each pair appears once.
type TripDay struct {
	TripID    string
	RouteID   string
	ServiceID string
	Date      time.Time
}

type Network struct {
	Routes    []gtfs.Route
	Trips     []gtfs.Trip
	TripDays  []TripDay
	StopTimes []gtfs.StopTime
	Stops     []gtfs.Stop
	Shapes    []gtfs.Shape
}

type routeMatcher struct {
	selection  Selection
	shortNames map[string]struct{}
	program    *vm.Program
}

func newRouteMatcher(selection Selection) (*routeMatcher, error) {
	matcher := &routeMatcher{
		selection:  selection,
		shortNames: util.Set(selection.RouteShortNames, func(s string) string { return s }),
	}

	if selection.Expression != "" {
		program, err := expr.Compile(selection.Expression, expr.Env(gtfs.Route{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile route expression: %w", err)
		}
		matcher.program = program
	}

	return matcher, nil
}

func (m *routeMatcher) Match(route gtfs.Route) (bool, error) {
	if m.selection.AgencyID != "" && route.AgencyID != m.selection.AgencyID {
		return false, nil
	}
	if m.selection.RouteType != AnyRouteType && route.Type != m.selection.RouteType {
		return false, nil
	}
	if len(m.shortNames) > 0 {
		if _, exists := m.shortNames[route.ShortName]; !exists {
			return false, nil
		}
	}

	if m.program == nil {
		return true, nil
	}

	output, err := expr.Run(m.program, route)
	if err != nil {
		return false, fmt.Errorf("evaluate route expression for %s: %w", route.ID, err)
	}

	return output.(bool), nil
}

// Select narrows the feed down to the selected routes, the trips of those routes that run
// at least once within the date window, and the stop times, stops and shapes they use.
func Select(feed *gtfs.Feed, selection Selection) (*Network, error) {
	matcher, err := newRouteMatcher(selection)
	if err != nil {
		return nil, err
	}

	network := &Network{}

	routeIDs := map[string]struct{}{}
	for _, route := range feed.Routes {
		matched, err := matcher.Match(route)
		if err != nil {
			return nil, err
		}
		if matched {
			network.Routes = append(network.Routes, route)
			routeIDs[route.ID] = struct{}{}
		}
	}
	if len(network.Routes) == 0 {
		return nil, ErrEmptySelection
	}
	log.Info().Int("length", len(network.Routes)).Msg("Selected routes")

	serviceDates, err := gtfs.ActiveServiceDates(feed, selection.Start, selection.End)
	if err != nil {
		return nil, err
	}

	tripIDs := map[string]struct{}{}
	seenTripDays := map[string]struct{}{}
	for _, trip := range feed.Trips {
		if _, exists := routeIDs[trip.RouteID]; !exists {
			continue
		}

		dates := serviceDates[trip.ServiceID]
		if len(dates) == 0 {
			continue
		}

		if _, exists := tripIDs[trip.ID]; !exists {
			network.Trips = append(network.Trips, trip)
			tripIDs[trip.ID] = struct{}{}
		}

		for _, date := range dates {
			key := trip.ID + "/" + date.Format(gtfs.DateLayout)
			if _, exists := seenTripDays[key]; exists {
				continue
			}
			seenTripDays[key] = struct{}{}

			network.TripDays = append(network.TripDays, TripDay{
				TripID:    trip.ID,
				RouteID:   trip.RouteID,
				ServiceID: trip.ServiceID,
				Date:      date,
			})
		}
	}
	log.Info().
		Int("trips", len(network.Trips)).
		Int("tripdays", len(network.TripDays)).
		Msg("Selected trips in date window")

	network.StopTimes = slices.Clone(feed.StopTimes)
	util.InPlaceFilter(&network.StopTimes, func(stopTime gtfs.StopTime) bool {
		_, exists := tripIDs[stopTime.TripID]
		return exists
	})

	stopIDs := util.Set(network.StopTimes, func(stopTime gtfs.StopTime) string { return stopTime.StopID })
	network.Stops = slices.Clone(feed.Stops)
	util.InPlaceFilter(&network.Stops, func(stop gtfs.Stop) bool {
		_, exists := stopIDs[stop.ID]
		return exists
	})

	shapeIDs := util.Set(network.Trips, func(trip gtfs.Trip) string { return trip.ShapeID })
	network.Shapes = slices.Clone(feed.Shapes)
	util.InPlaceFilter(&network.Shapes, func(shape gtfs.Shape) bool {
		_, exists := shapeIDs[shape.ID]
		return exists && shape.ID != ""
	})

	log.Info().
		Int("stoptimes", len(network.StopTimes)).
		Int("stops", len(network.Stops)).
		Int("shapes", len(network.Shapes)).
		Msg("Filtered network tables")

	return network, nil
}

// RouteNames maps route id to its display name
func (n *Network) RouteNames() map[string]string {
	names := make(map[string]string, len(n.Routes))
	for _, route := range n.Routes {
		names[route.ID] = route.DisplayName()
	}

	return names
}
