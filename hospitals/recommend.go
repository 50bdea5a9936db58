package hospitals

import (
	"sort"
	"strings"

	"go-healthai/geocode"
	"go-healthai/types"
)

const (
	DefaultLimit  = 3
	LocationLimit = 5

	// AvailabilityLabel is shown instead of a distance when the caller's position is unknown.
	AvailabilityLabel = "24/7 Emergency"
)

// Query narrows a recommendation. Zero values mean "no filter".
type Query struct {
	EmergencyType types.EmergencyType
	Lat           *float64
	Lon           *float64
	LocationQuery string
	Type          types.HospitalType
	State         string

	// Browse asks for hospitals even when EmergencyType is none,
	// e.g. the user explicitly asked where the nearest hospital is.
	Browse bool
}

func (q Query) hasCoordinates() bool {
	return q.Lat != nil && q.Lon != nil
}

func (q Query) hasFilters() bool {
	return q.Type != "" || q.State != "" || strings.TrimSpace(q.LocationQuery) != ""
}

// Recommend filters the repository by specialty, type, state and free-text location,
// ranks by distance when coordinates are known and returns the top results.
func Recommend(repo Repository, q Query) []types.Recommendation {
	emergencyType := q.EmergencyType
	if emergencyType == "" {
		emergencyType = types.NoEmergency
	}

	if emergencyType == types.NoEmergency && !q.Browse && !q.hasFilters() {
		return []types.Recommendation{}
	}

	locationQuery := strings.ToLower(strings.TrimSpace(q.LocationQuery))

	var matches []types.Hospital
	for _, h := range repo.All() {
		if emergencyType != types.NoEmergency && !matchesSpecialty(h, emergencyType) {
			continue
		}
		if q.Type != "" && h.Type != q.Type {
			continue
		}
		if q.State != "" && !strings.EqualFold(h.State, q.State) {
			continue
		}
		if locationQuery != "" && !matchesLocation(h, locationQuery) {
			continue
		}
		matches = append(matches, h)
	}

	recs := make([]types.Recommendation, 0, len(matches))
	for _, h := range matches {
		rec := types.Recommendation{Hospital: h, Distance: AvailabilityLabel}
		if q.hasCoordinates() {
			km := geocode.CalculateDistance(*q.Lat, *q.Lon, h.Coordinates.Lat, h.Coordinates.Lon)
			rec.DistanceKm = &km
			rec.Distance = geocode.FormatDistance(km)
		}
		recs = append(recs, rec)
	}

	if q.hasCoordinates() {
		sort.SliceStable(recs, func(i, j int) bool {
			return *recs[i].DistanceKm < *recs[j].DistanceKm
		})
	}

	limit := DefaultLimit
	if locationQuery != "" {
		limit = LocationLimit
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}

	return recs
}

func matchesSpecialty(h types.Hospital, t types.EmergencyType) bool {
	return h.HasSpecialty(types.Specialty(t)) || h.HasSpecialty(types.SpecialtyGeneral)
}

func matchesLocation(h types.Hospital, needle string) bool {
	return strings.Contains(strings.ToLower(h.Name), needle) ||
		strings.Contains(strings.ToLower(h.Address), needle) ||
		strings.Contains(strings.ToLower(h.State), needle)
}
