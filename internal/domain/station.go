package domain

// Station is a fuel station read from the station store. Rows originate
// from the OPIS truckstop price feed and are geocoded at ingestion time.
type Station struct {
	OpisID      int
	Name        string
	Address     string
	City        string
	State       string
	RetailPrice float64
	Location    Coordinates
}
