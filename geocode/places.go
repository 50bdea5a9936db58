package geocode

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

const (
	defaultSearchRadius = 5000 // meters
	maxPlaces           = 5
)

// Place is a live hospital listing from the Places API.
type Place struct {
	PlaceID  string  `json:"placeId"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Rating   float32 `json:"rating,omitempty"`
	OpenNow  *bool   `json:"openNow,omitempty"`
	Distance string  `json:"distance"`
	Km       float64 `json:"distanceKm"`
}

// NearbyHospitals lists up to five hospitals around (lat, lon) within radius meters,
// in the order the Places API returns them.
func NearbyHospitals(ctx context.Context, client *maps.Client, lat, lon float64, radius uint) ([]Place, error) {
	if radius == 0 {
		radius = defaultSearchRadius
	}

	req := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: lat, Lng: lon},
		Radius:   radius,
		Type:     maps.PlaceTypeHospital,
	}

	resp, err := client.NearbySearch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("places nearby search: %w", err)
	}

	places := make([]Place, 0, maxPlaces)
	for _, r := range resp.Results {
		if len(places) == maxPlaces {
			break
		}
		km := CalculateDistance(lat, lon, r.Geometry.Location.Lat, r.Geometry.Location.Lng)
		p := Place{
			PlaceID:  r.PlaceID,
			Name:     r.Name,
			Address:  r.Vicinity,
			Lat:      r.Geometry.Location.Lat,
			Lon:      r.Geometry.Location.Lng,
			Rating:   r.Rating,
			Distance: FormatDistance(km),
			Km:       km,
		}
		if r.OpeningHours != nil {
			p.OpenNow = r.OpeningHours.OpenNow
		}
		places = append(places, p)
	}

	return places, nil
}
