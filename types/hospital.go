package types

type HospitalType string

const (
	National HospitalType = "national"
	Teaching HospitalType = "teaching"
	Federal  HospitalType = "federal"
	General  HospitalType = "general"
)

type Specialty string

const (
	SpecialtyEmergency Specialty = "emergency"
	SpecialtyTrauma    Specialty = "trauma"
	SpecialtyCardiac   Specialty = "cardiac"
	SpecialtyPediatric Specialty = "pediatric"
	SpecialtyGeneral   Specialty = "general"
)

type Coordinates struct {
	Lat float64 `firestore:"lat" json:"lat" yaml:"lat"`
	Lon float64 `firestore:"lon" json:"lon" yaml:"lon"`
}

// Hospital is static reference data. Records are never mutated after load.
type Hospital struct {
	Name        string       `firestore:"name" json:"name" yaml:"name"`
	Phone       string       `firestore:"phone" json:"phone" yaml:"phone"`
	Address     string       `firestore:"address" json:"address" yaml:"address"`
	State       string       `firestore:"state" json:"state" yaml:"state"`
	Type        HospitalType `firestore:"type" json:"type" yaml:"type"`
	Specialties []Specialty  `firestore:"specialties" json:"specialties" yaml:"specialties"`
	Coordinates Coordinates  `firestore:"coordinates" json:"coordinates" yaml:"coordinates"`
}

// HasSpecialty reports whether the hospital carries the given tag.
func (h Hospital) HasSpecialty(s Specialty) bool {
	for _, sp := range h.Specialties {
		if sp == s {
			return true
		}
	}
	return false
}

// Recommendation is a hospital as returned to the client, with a display distance.
// Distance holds "24/7 Emergency" when the caller's position is unknown.
type Recommendation struct {
	Hospital
	Distance   string   `json:"distance"`
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}
