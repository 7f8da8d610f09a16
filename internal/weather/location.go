package weather

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks that exactly one usable location form is present and returns
// the form that will be sent to the provider. When both a city and coordinates
// are given the city wins and the coordinates are dropped.
func (l Location) Validate() (Location, error) {
	city := strings.TrimSpace(l.City)
	if city != "" {
		return Location{City: city}, nil
	}

	switch {
	case l.Lat == nil && l.Lon == nil:
		return Location{}, ErrMissingLocation
	case l.Lat == nil || l.Lon == nil:
		return Location{}, ErrIncompleteCoordinates
	}

	coords := Location{Lat: l.Lat, Lon: l.Lon}
	if err := validate.Struct(coords); err != nil {
		return Location{}, fmt.Errorf("%w: %s", ErrInvalidCoordinates, coords.describe(err))
	}
	return coords, nil
}

func (l Location) describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "Lat":
			msgs = append(msgs, fmt.Sprintf("latitude %s out of range [-90, 90]", formatDegrees(*l.Lat)))
		case "Lon":
			msgs = append(msgs, fmt.Sprintf("longitude %s out of range [-180, 180]", formatDegrees(*l.Lon)))
		default:
			msgs = append(msgs, fe.Error())
		}
	}
	return strings.Join(msgs, ", ")
}

// Ambiguous reports whether both a city and coordinates were supplied.
func (l Location) Ambiguous() bool {
	return strings.TrimSpace(l.City) != "" && (l.Lat != nil || l.Lon != nil)
}
