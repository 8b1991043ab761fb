package domain

// Route is a driving route between two coordinates: an ordered polyline
// plus the total distance in miles. A Route is produced once per planning
// request and is never cached on its own.
type Route struct {
	Polyline   []Coordinates
	TotalMiles float64
}

// Candidate pairs a station with its projected position along a route
// ("mile marker"). Candidates exist only during optimization and are
// rebuilt fresh for every request.
type Candidate struct {
	Station    Station
	MileMarker float64
	Price      float64
}

// Stop is a chosen refueling location in the final plan.
// It is immutable once produced; the mile marker is rounded to 0.1 mi.
type Stop struct {
	City       string      `json:"city"`
	State      string      `json:"state"`
	Price      float64     `json:"price"`
	MileMarker float64     `json:"mile_marker"`
	Location   Coordinates `json:"coordinates"`
}

// RouteResult is the externally visible plan for one (start, finish) pair.
// It is the unit stored in the full-result cache. Stop mile markers are
// strictly increasing.
type RouteResult struct {
	TotalMiles    float64 `json:"total_miles"`
	FuelStops     []Stop  `json:"fuel_stops"`
	TotalFuelCost float64 `json:"total_fuel_cost"`
}
