// Package locator supplies the device position the claim workflow starts
// from. A terminal has no positioning hardware, so the position is either
// configured up front or the device is reported as having no location
// capability.
package locator

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/landgrab/internal/client/models"
	"github.com/dmitrijs2005/landgrab/internal/common"
)

type Locator interface {
	Locate(ctx context.Context) (models.Coordinates, error)
}

// Fixed always reports the same position.
type Fixed models.Coordinates

func (f Fixed) Locate(ctx context.Context) (models.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinates{}, err
	}
	return models.Coordinates(f), nil
}

// Unavailable is the Locator of a device without location capability.
type Unavailable struct{}

func (Unavailable) Locate(context.Context) (models.Coordinates, error) {
	return models.Coordinates{}, common.ErrGeolocationUnavailable
}

// FromPosition returns Fixed for a configured position and Unavailable
// otherwise.
func FromPosition(pos *models.Coordinates) Locator {
	if pos == nil {
		return Unavailable{}
	}
	return Fixed(*pos)
}

// ParsePosition parses "lat,lng" into coordinates, checking WGS84 ranges.
func ParsePosition(s string) (models.Coordinates, error) {
	latStr, lngStr, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return models.Coordinates{}, fmt.Errorf("position %q: want \"lat,lng\"", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("position %q: latitude: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("position %q: longitude: %w", s, err)
	}
	pos := models.Coordinates{Lat: lat, Lng: lng}
	if err := CheckRange(pos); err != nil {
		return models.Coordinates{}, fmt.Errorf("position %q: %w", s, err)
	}
	return pos, nil
}

// CheckRange rejects NaN and anything outside WGS84 bounds.
func CheckRange(c models.Coordinates) error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return fmt.Errorf("not a number")
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("out of range")
	}
	return nil
}
