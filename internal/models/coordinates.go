package models

import "strconv"

// Coordinates represents a geographical point defined by its longitude and latitude.
type Coordinates struct {
	Latitude  float64 // Latitude of the geographical point.
	Longitude float64 // Longitude of the geographical point.
}

// LatString formats the latitude with the shortest exact representation.
func (c Coordinates) LatString() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64)
}

// LonString formats the longitude with the shortest exact representation.
func (c Coordinates) LonString() string {
	return strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}
