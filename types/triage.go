package types

type EmergencyType string

const (
	Cardiac     EmergencyType = "cardiac"
	Trauma      EmergencyType = "trauma"
	Pediatric   EmergencyType = "pediatric"
	GeneralCase EmergencyType = "general"
	NoEmergency EmergencyType = "none"
)

// ParseEmergencyType maps a query value onto the closed set, defaulting to none.
func ParseEmergencyType(s string) EmergencyType {
	switch EmergencyType(s) {
	case Cardiac, Trauma, Pediatric, GeneralCase:
		return EmergencyType(s)
	}
	return NoEmergency
}

type UrgencyLevel string

const (
	UrgencyEmergency UrgencyLevel = "emergency"
	UrgencyHigh      UrgencyLevel = "high"
	UrgencyMedium    UrgencyLevel = "medium"
	UrgencyNone      UrgencyLevel = "none"
)

// Urgency is the presentation tier attached to a user message.
// Level none means the message is informational and gets no badge.
type Urgency struct {
	Level  UrgencyLevel `json:"level"`
	Label  string       `json:"label,omitempty"`
	Icon   string       `json:"icon,omitempty"`
	Action string       `json:"action,omitempty"`
}

func (u Urgency) Applicable() bool {
	return u.Level != UrgencyNone && u.Level != ""
}

type Language string

const (
	LanguageAuto    Language = "auto"
	LanguageEnglish Language = "english"
	LanguagePidgin  Language = "pidgin"
)

// FilterResult is the outcome of sanitizing one generated answer.
type FilterResult struct {
	IsValid          bool     `json:"isValid"`
	FilteredResponse string   `json:"filteredResponse"`
	Warnings         []string `json:"warnings"`
}
