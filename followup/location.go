package followup

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go-healthai/types"
)

type place struct {
	name    string
	lat     float64
	lon     float64
	city    string
	address string
	area    bool
}

// gazetteer holds the cities and Lagos/Abuja areas recognised in free text.
var gazetteer = []place{
	{name: "lagos", lat: 6.5244, lon: 3.3792, city: "Lagos", address: "Lagos, Nigeria"},
	{name: "abuja", lat: 9.0579, lon: 7.4951, city: "Abuja", address: "Abuja, Nigeria"},
	{name: "kano", lat: 12.0022, lon: 8.5920, city: "Kano", address: "Kano, Nigeria"},
	{name: "ibadan", lat: 7.3775, lon: 3.9470, city: "Ibadan", address: "Ibadan, Oyo State"},
	{name: "port harcourt", lat: 4.8156, lon: 7.0498, city: "Port Harcourt", address: "Port Harcourt, Rivers State"},
	{name: "benin", lat: 6.3350, lon: 5.6037, city: "Benin City", address: "Benin City, Edo State"},
	{name: "kaduna", lat: 10.5105, lon: 7.4165, city: "Kaduna", address: "Kaduna, Nigeria"},
	{name: "jos", lat: 9.8965, lon: 8.8583, city: "Jos", address: "Jos, Plateau State"},
	{name: "ilorin", lat: 8.4799, lon: 4.5418, city: "Ilorin", address: "Ilorin, Kwara State"},
	{name: "enugu", lat: 6.4281, lon: 7.5243, city: "Enugu", address: "Enugu, Nigeria"},
	{name: "owerri", lat: 5.4840, lon: 7.0351, city: "Owerri", address: "Owerri, Imo State"},
	{name: "calabar", lat: 4.9517, lon: 8.3417, city: "Calabar", address: "Calabar, Cross River State"},
	{name: "umuahia", lat: 5.5250, lon: 7.4896, city: "Umuahia", address: "Umuahia, Abia State"},
	{name: "aba", lat: 5.1066, lon: 7.3667, city: "Aba", address: "Aba, Abia State"},

	{name: "ikeja", lat: 6.6018, lon: 3.3515, city: "Lagos", address: "Ikeja, Lagos", area: true},
	{name: "victoria island", lat: 6.4281, lon: 3.4219, city: "Lagos", address: "Victoria Island, Lagos", area: true},
	{name: "lekki", lat: 6.4698, lon: 3.5852, city: "Lagos", address: "Lekki, Lagos", area: true},
	{name: "surulere", lat: 6.5056, lon: 3.3619, city: "Lagos", address: "Surulere, Lagos", area: true},
	{name: "yaba", lat: 6.5158, lon: 3.3696, city: "Lagos", address: "Yaba, Lagos", area: true},

	{name: "garki", lat: 9.0579, lon: 7.4951, city: "Abuja", address: "Garki, Abuja", area: true},
	{name: "wuse", lat: 9.0579, lon: 7.4951, city: "Abuja", address: "Wuse, Abuja", area: true},
	{name: "maitama", lat: 9.0579, lon: 7.4951, city: "Abuja", address: "Maitama, Abuja", area: true},
}

type matcher struct {
	place
	re *regexp.Regexp
}

// matchers is the gazetteer ordered longest name first, with areas ahead of
// cities of the same length, so "Ikeja Lagos" resolves to Ikeja.
var matchers = func() []matcher {
	out := make([]matcher, len(gazetteer))
	for i, p := range gazetteer {
		out[i] = matcher{place: p, re: regexp.MustCompile(`\b` + regexp.QuoteMeta(p.name) + `\b`)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i].name) != len(out[j].name) {
			return len(out[i].name) > len(out[j].name)
		}
		return out[i].area && !out[j].area
	})
	return out
}()

var coordinatePattern = regexp.MustCompile(`(-?\d+\.?\d*),\s*(-?\d+\.?\d*)`)

// ProcessLocationResponse resolves a free-text location reply. It tries the
// gazetteer, then a literal "lat,lon" pair, and finally keeps the trimmed text
// as an address. Blank input yields an empty query.
func ProcessLocationResponse(text string) types.LocationQuery {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return types.LocationQuery{}
	}
	lower := strings.ToLower(trimmed)

	for _, m := range matchers {
		if m.re.MatchString(lower) {
			lat, lon := m.lat, m.lon
			return types.LocationQuery{Lat: &lat, Lon: &lon, City: m.city, Address: m.address}
		}
	}

	if lat, lon, ok := parseCoordinates(lower); ok {
		return types.LocationQuery{
			Lat:     &lat,
			Lon:     &lon,
			Address: fmt.Sprintf("%.4f, %.4f", lat, lon),
		}
	}

	return types.LocationQuery{Address: trimmed}
}

func parseCoordinates(s string) (float64, float64, bool) {
	m := coordinatePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}
