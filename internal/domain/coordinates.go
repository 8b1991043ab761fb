package domain

import (
	"encoding/json"
	"fmt"
)

// Immutable geographic coordinates (longitude, latitude), WGS84.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Coordinates serialize as a [lon, lat] pair, matching the geocoding
// provider's wire order.
func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lon, c.Lat})
}

func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinates: expected [lon, lat] pair: %w", err)
	}
	c.Lon = pair[0]
	c.Lat = pair[1]
	return nil
}
