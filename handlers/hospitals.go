package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-healthai/geocode"
	"go-healthai/hospitals"
	"go-healthai/metrics"
	"go-healthai/types"
)

// RecommendHospitals handles GET /api/hospitals. Omitting emergencyType lists
// hospitals without a specialty filter; an explicit "none" with no other
// filter yields an empty list, as in the chat flow.
func RecommendHospitals(repo hospitals.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, lon, err := parseCoordinates(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rawType := c.Query("emergencyType")
		q := hospitals.Query{
			EmergencyType: types.ParseEmergencyType(rawType),
			Lat:           lat,
			Lon:           lon,
			LocationQuery: c.Query("q"),
			Type:          types.HospitalType(c.Query("type")),
			State:         c.Query("state"),
			Browse:        rawType == "",
		}

		recs := hospitals.Recommend(repo, q)
		metrics.RecordRecommendation(lat != nil)
		c.JSON(http.StatusOK, gin.H{"hospitals": recs})
	}
}

// PlacesSearcher looks up live hospital listings around a point.
type PlacesSearcher func(ctx context.Context, lat, lon float64, radius uint) ([]geocode.Place, error)

// NearbyHospitals handles GET /api/hospitals/nearby. A nil search means the
// Maps client is not configured.
func NearbyHospitals(search PlacesSearcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		if search == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Live hospital search is not configured"})
			return
		}

		lat, lon, err := parseCoordinates(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if lat == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon are required"})
			return
		}

		var radius uint64
		if v := c.Query("radius"); v != "" {
			radius, err = strconv.ParseUint(v, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "radius must be a positive number of meters"})
				return
			}
		}

		places, err := search(c.Request.Context(), *lat, *lon, uint(radius))
		if err != nil {
			log.Printf("Nearby hospitals: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Hospital search failed. Please try again."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"hospitals": places})
	}
}

// parseCoordinates reads optional lat/lon query parameters. Both or neither
// must be given.
func parseCoordinates(c *gin.Context) (*float64, *float64, error) {
	rawLat, rawLon := c.Query("lat"), c.Query("lon")
	if rawLat == "" && rawLon == "" {
		return nil, nil, nil
	}
	if rawLat == "" || rawLon == "" {
		return nil, nil, fmt.Errorf("lat and lon must be given together")
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, nil, fmt.Errorf("invalid lat %q", rawLat)
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, nil, fmt.Errorf("invalid lon %q", rawLon)
	}
	return &lat, &lon, nil
}
