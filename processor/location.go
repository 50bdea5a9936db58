package processor

import (
	"context"
	"fmt"
	"log"
	"strings"

	"go-healthai/followup"
	"go-healthai/geocode"
	"go-healthai/types"
)

// EntityExtractor finds place names in free text.
type EntityExtractor interface {
	Locations(ctx context.Context, text string) ([]string, error)
}

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geocode.Result, bool, error)
}

// LocationResolver turns a user's location reply into a LocationQuery. The
// gazetteer always runs first; entity extraction and geocoding are optional
// and only consulted when the gazetteer finds no coordinates.
type LocationResolver struct {
	Entities EntityExtractor
	Geocoder Geocoder
}

func (r *LocationResolver) Resolve(ctx context.Context, text string) types.LocationQuery {
	var logBuilder strings.Builder
	addLog := func(format string, args ...interface{}) {
		logBuilder.WriteString(fmt.Sprintf(format, args...))
		logBuilder.WriteString("\n")
	}
	defer func() {
		if logBuilder.Len() > 0 {
			log.Print(logBuilder.String())
		}
	}()

	loc := followup.ProcessLocationResponse(text)
	if loc.HasCoordinates() || loc.IsEmpty() || r == nil {
		return loc
	}
	addLog("Location: %q not in gazetteer", loc.Address)

	candidates := []string{loc.Address}
	if r.Entities != nil {
		names, err := r.Entities.Locations(ctx, loc.Address)
		if err != nil {
			addLog("Location: entity extraction failed: %v", err)
		} else {
			addLog("Location: extracted entities %v", names)
			for _, name := range names {
				// an extracted name may still be a known city or area
				if known := followup.ProcessLocationResponse(name); known.HasCoordinates() {
					addLog("Location: entity %q matched gazetteer", name)
					return known
				}
			}
			candidates = append(names, candidates...)
		}
	}

	if r.Geocoder == nil {
		return loc
	}

	for _, candidate := range candidates {
		res, ok, err := r.Geocoder.Geocode(ctx, candidate)
		if err != nil {
			addLog("Location: geocoding %q failed: %v", candidate, err)
			continue
		}
		if !ok {
			addLog("Location: no geocoding result for %q", candidate)
			continue
		}

		addLog("Location: geocoded %q to %s (%.4f, %.4f)", candidate, res.FormattedAddress, res.Lat, res.Lon)
		lat, lon := res.Lat, res.Lon
		address := res.FormattedAddress
		if address == "" {
			address = loc.Address
		}
		return types.LocationQuery{Lat: &lat, Lon: &lon, Address: address}
	}

	return loc
}
