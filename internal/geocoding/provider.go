package geocoding

import (
	"context"

	"github.com/UnknownOlympus/nimbus/internal/models"
)

// Provider is an interface that defines a method for geocoding a location.
// The Geocode method takes a context and a location as input,
// and returns the coordinates of the best match and an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, loc models.Location) (*models.Coordinates, error)
}
