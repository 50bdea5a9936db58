package detection

import (
	"strings"

	"go-healthai/types"
)

// emergencyRule pairs a predicate over lower-cased text with the category it yields.
type emergencyRule struct {
	category types.EmergencyType
	match    func(lower string) bool
}

var (
	cardiacPhrases = []string{"chest pain", "heart attack", "chest pressure", "heart pain"}
	traumaPhrases  = []string{"accident", "bleeding", "broken", "fracture", "injury"}

	// Pediatric needs a child term AND a distress term in the same message.
	childTerms          = []string{"child", "baby", "pikin"}
	pediatricDistress   = []string{"fever", "convulsion", "breathing"}
	generalEmergencyCue = []string{"emergency", "severe", "unconscious", "difficulty breathing", "can't breathe"}
)

// emergencyRules is evaluated top to bottom and the first match wins.
var emergencyRules = []emergencyRule{
	{types.Cardiac, func(s string) bool { return containsAny(s, cardiacPhrases) }},
	{types.Trauma, func(s string) bool { return containsAny(s, traumaPhrases) }},
	{types.Pediatric, func(s string) bool {
		return containsAny(s, childTerms) && containsAny(s, pediatricDistress)
	}},
	{types.GeneralCase, func(s string) bool { return containsAny(s, generalEmergencyCue) }},
}

// DetectEmergencyType classifies a message into exactly one emergency category.
func DetectEmergencyType(text string) types.EmergencyType {
	lower := normalize(text)
	for _, rule := range emergencyRules {
		if rule.match(lower) {
			return rule.category
		}
	}
	return types.NoEmergency
}

var onlineDoctorSymptoms = []string{
	"headache", "fever", "cough", "cold", "flu",
	"rash", "itch", "stomach", "diarrhea", "constipation",
	"tired", "fatigue", "stress", "anxiety", "insomnia",
}

// ShouldSuggestOnlineDoctor reports whether the message describes mild symptoms
// an online consultation can handle.
func ShouldSuggestOnlineDoctor(text string) bool {
	return containsAny(normalize(text), onlineDoctorSymptoms)
}

var hospitalRequestPhrases = []string{
	"hospital", "clinic", "doctor near", "where i fit see doctor", "emergency room",
}

// IsHospitalRequest reports whether the user explicitly asked for a hospital.
func IsHospitalRequest(text string) bool {
	return containsAny(normalize(text), hospitalRequestPhrases)
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// normalize lower-cases text and folds typographic apostrophes so that
// "can’t breathe" matches "can't breathe".
func normalize(text string) string {
	return strings.ReplaceAll(strings.ToLower(text), "’", "'")
}
