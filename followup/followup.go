package followup

import (
	"strings"

	"go-healthai/types"
)

// Context values echoed back by the client on the next turn.
const (
	ContextHospitalRecommendation = "hospital_recommendation"
	ContextPainAssessment         = "pain_assessment"
	ContextSymptomDuration        = "symptom_duration"
)

var (
	locationQuestion = types.FollowUpQuestion{
		Type:             types.FollowUpLocation,
		PromptEnglish:    "To find the nearest hospital, please share your location or tell me your area (e.g., 'Ikeja Lagos', 'Garki Abuja', 'Victoria Island')",
		PromptPidgin:     "Make I find hospital wey near you, tell me your area (like 'Ikeja Lagos', 'Garki Abuja', 'Victoria Island')",
		Context:          ContextHospitalRecommendation,
		RequiresLocation: true,
	}
	severityQuestion = types.FollowUpQuestion{
		Type:          types.FollowUpSeverity,
		PromptEnglish: "How would you rate your pain from 1-10? (1 = mild, 10 = severe)",
		PromptPidgin:  "How you go rate your pain from 1-10? (1 = small small, 10 = serious)",
		Context:       ContextPainAssessment,
	}
	durationQuestion = types.FollowUpQuestion{
		Type:          types.FollowUpDuration,
		PromptEnglish: "How long have you had these symptoms? (hours, days, weeks)",
		PromptPidgin:  "How long these symptoms don start? (hours, days, weeks)",
		Context:       ContextSymptomDuration,
	}
)

// DetectFollowUpNeeds picks at most one clarifying question for the next turn.
// Location outranks severity, which outranks duration. Returns nil when the
// conversation needs nothing more.
func DetectFollowUpNeeds(aiResponse, userMessage string) *types.FollowUpQuestion {
	response := strings.ToLower(aiResponse)
	message := strings.ToLower(userMessage)

	hospitalLocationRequest := strings.Contains(message, "hospital") &&
		containsAny(message, []string{" in ", "near", "around", "location"})

	var q types.FollowUpQuestion
	switch {
	case hospitalLocationRequest || containsAny(response, []string{"hospital", "nearest", "emergency"}):
		q = locationQuestion
	case strings.Contains(response, "pain") && !containsAny(message, []string{"severe", "mild"}):
		q = severityQuestion
	case containsAny(response, []string{"fever", "symptoms"}) && !containsAny(message, []string{"day", "week", "hour"}):
		q = durationQuestion
	default:
		return nil
	}
	return &q
}

// Prompt returns the question in the requested language.
func Prompt(q *types.FollowUpQuestion, lang types.Language) string {
	if q == nil {
		return ""
	}
	if lang == types.LanguagePidgin {
		return q.PromptPidgin
	}
	return q.PromptEnglish
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
