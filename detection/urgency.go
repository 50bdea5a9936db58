package detection

import "go-healthai/types"

// informationalPatterns mark a general health question or a hospital lookup.
// Those get no urgency badge unless the message is already an emergency.
var informationalPatterns = []string{
	"what is", "what are", "how to", "how can", "tell me about",
	"explain", "define", "meaning of", "information about",
	"hospital", "find hospital", "nearest hospital", "doctor near",
}

type urgencyTier struct {
	urgency  types.Urgency
	keywords []string
}

// urgencyTiers is ordered from most to least urgent.
var urgencyTiers = []urgencyTier{
	{
		urgency: types.Urgency{Level: types.UrgencyEmergency, Label: "EMERGENCY", Icon: "🚨", Action: "Call 112 immediately"},
		keywords: []string{
			"chest pain", "can't breathe", "difficulty breathing", "unconscious",
			"severe bleeding", "stroke", "heart attack",
		},
	},
	{
		urgency: types.Urgency{Level: types.UrgencyHigh, Label: "HIGH URGENCY", Icon: "🔴", Action: "Go to hospital today"},
		keywords: []string{
			"severe", "high fever", "vomiting blood", "can't eat", "dehydrated", "convulsion",
		},
	},
	{
		urgency: types.Urgency{Level: types.UrgencyMedium, Label: "MEDIUM", Icon: "🟡", Action: "See doctor within 24-48 hours"},
		keywords: []string{
			"fever", "pain", "cough", "diarrhea", "rash", "headache", "feel", "sick", "hurt",
		},
	},
}

var notApplicable = types.Urgency{Level: types.UrgencyNone}

// DetectUrgencyLevel returns the presentation tier for a message. The result has
// level none for informational questions and for messages with no symptom words.
func DetectUrgencyLevel(text string, isEmergency bool) types.Urgency {
	lower := normalize(text)

	if !isEmergency && containsAny(lower, informationalPatterns) {
		return notApplicable
	}

	if isEmergency {
		return urgencyTiers[0].urgency
	}

	for _, tier := range urgencyTiers {
		if containsAny(lower, tier.keywords) {
			return tier.urgency
		}
	}

	return notApplicable
}
