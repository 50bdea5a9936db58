package filter

import (
	"strings"

	"go-healthai/types"
)

var offTopicSubjects = []string{
	"weather", "sports", "politics", "entertainment",
	"cooking", "travel", "technology", "business",
}

var redirectTerms = []string{"health", "medical"}

// ValidateResponseScope reports whether response is acceptable for userMessage.
// Off-topic questions are in scope only when the answer steers back to health.
func ValidateResponseScope(response, userMessage string) bool {
	if !containsAny(strings.ToLower(userMessage), offTopicSubjects) {
		return true
	}
	return containsAny(strings.ToLower(response), redirectTerms)
}

const (
	scopeRedirectEnglish = "I'm HealthAI, and I can only help with health and medical questions. " +
		"Please tell me about any symptoms or health concerns you have, and I'll do my best to guide you."
	scopeRedirectPidgin = "Na health matter I dey help with o. " +
		"Abeg tell me wetin dey worry your body or any health question wey you get, make I help you."
)

// ScopeRedirectMessage is the canned reply substituted for an off-topic answer.
func ScopeRedirectMessage(lang types.Language) string {
	if lang == types.LanguagePidgin {
		return scopeRedirectPidgin
	}
	return scopeRedirectEnglish
}
