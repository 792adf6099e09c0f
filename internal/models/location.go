package models

// Location is the place a forecast was requested for.
// Country is an optional two-letter code and is never validated.
type Location struct {
	City    string
	Country string
}

// Query returns the geocoding query string: "city" or "city,CC".
func (l Location) Query() string {
	if l.Country == "" {
		return l.City
	}

	return l.City + "," + l.Country
}

func (l Location) String() string {
	if l.Country == "" {
		return l.City
	}

	return l.City + ", " + l.Country
}
