package dto

// RouteRequest is the body for POST /route. Validation rejects empty
// locations and identical start/finish before planning begins.
type RouteRequest struct {
	StartLocation  string `json:"start_location" validate:"required"`
	FinishLocation string `json:"finish_location" validate:"required,nefield=StartLocation"`
}

type StopResponse struct {
	City        string    `json:"city"`
	State       string    `json:"state"`
	Price       float64   `json:"price"`
	MileMarker  float64   `json:"mile_marker"`
	Coordinates []float64 `json:"coordinates"`
}

type RouteResponse struct {
	TotalMiles    float64        `json:"total_miles"`
	FuelStops     []StopResponse `json:"fuel_stops"`
	TotalFuelCost float64        `json:"total_fuel_cost"`
}
