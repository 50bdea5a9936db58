package geocode

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"googlemaps.github.io/maps"
)

// ErrNoCredentials is returned when MAPS_CREDENTIALS is not configured.
var ErrNoCredentials = errors.New("MAPS_CREDENTIALS environment variable not set")

// mapsClient is a singleton maps client instance.
var (
	mapsClient *maps.Client
	clientOnce sync.Once
	clientErr  error
)

// InitMapsClient initializes and returns a singleton Google Maps client.
func InitMapsClient() (*maps.Client, error) {
	clientOnce.Do(func() {
		apiKey := os.Getenv("MAPS_CREDENTIALS")
		if apiKey == "" {
			clientErr = ErrNoCredentials
			return
		}
		mapsClient, clientErr = maps.NewClient(maps.WithAPIKey(apiKey))
		if clientErr != nil {
			log.Printf("Failed to create maps client: %v", clientErr)
		}
	})
	return mapsClient, clientErr
}

// Result is a single forward-geocoding hit.
type Result struct {
	FormattedAddress string
	Lat              float64
	Lon              float64
}

// MapsGeocoder resolves free-text addresses through the Google Geocoding API,
// biased towards Nigeria.
type MapsGeocoder struct {
	client *maps.Client
	region string
}

func NewMapsGeocoder(client *maps.Client) *MapsGeocoder {
	return &MapsGeocoder{client: client, region: "ng"}
}

// Geocode returns the best match for address, or ok=false when nothing was found.
func (g *MapsGeocoder) Geocode(ctx context.Context, address string) (Result, bool, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Result{}, false, nil
	}

	req := &maps.GeocodingRequest{
		Address: address,
		Region:  g.region,
	}

	results, err := g.client.Geocode(ctx, req)
	if err != nil {
		return Result{}, false, fmt.Errorf("geocode %q: %w", address, err)
	}
	if len(results) == 0 {
		return Result{}, false, nil
	}

	location := results[0].Geometry.Location
	return Result{
		FormattedAddress: results[0].FormattedAddress,
		Lat:              location.Lat,
		Lon:              location.Lng,
	}, true, nil
}
