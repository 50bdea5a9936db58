package offline

import (
	"fmt"
	"strings"

	"go-healthai/types"
)

type Phrase struct {
	English string `json:"english"`
	Pidgin  string `json:"pidgin"`
}

// EmergencyData is the static bundle the client caches for use without a network.
type EmergencyData struct {
	EmergencyContacts []string `json:"emergencyContacts"`
	BasicFirstAid     []string `json:"basicFirstAid"`
	HospitalList      []string `json:"hospitalList"`
	EmergencyPhrases  []Phrase `json:"emergencyPhrases"`
	HealthTips        []string `json:"healthTips"`
}

var data = EmergencyData{
	EmergencyContacts: []string{
		"Nigeria Emergency: 112",
		"Police: 199",
		"Fire Service: 199",
		"NEMA: +234 800 CALL NEMA",
	},
	BasicFirstAid: []string{
		"Severe bleeding: Apply direct pressure with clean cloth",
		"Unconscious person: Check breathing, place in recovery position",
		"Choking: 5 back blows, 5 chest thrusts",
		"Burns: Cool with clean water for 10+ minutes",
		"Chest pain: Keep person calm, call 112 immediately",
		"Difficulty breathing: Sit person upright, loosen tight clothing",
	},
	HospitalList: []string{
		"National Hospital Abuja: +234 9 461 2200",
		"LUTH Lagos: +234 1 263 2626",
		"UCH Ibadan: +234 2 241 3545",
		"UNTH Enugu: +234 42 252 3165",
		"AKTH Kano: +234 64 664 430",
		"FMC Umuahia: +234 88 220 134",
	},
	EmergencyPhrases: []Phrase{
		{English: "This is a medical emergency", Pidgin: "This na emergency for hospital"},
		{English: "Need ambulance immediately", Pidgin: "We need ambulance sharp sharp"},
		{English: "Person is unconscious", Pidgin: "Person don faint, e no dey wake up"},
		{English: "Severe bleeding", Pidgin: "Blood dey comot plenty"},
		{English: "Can't breathe properly", Pidgin: "E no fit breathe well"},
	},
	HealthTips: []string{
		"💡 Save 112 in your phone for emergencies",
		"💡 Malaria is preventable with mosquito nets",
		"💡 Drink clean, treated water to prevent typhoid",
		"💡 Wash hands regularly to prevent infections",
		"💡 Fever above 38°C (100.4°F) needs medical attention",
		"💡 Keep a basic first aid kit at home",
		"💡 Regular exercise improves overall health",
		"💡 Get 7-8 hours of sleep each night",
		"💡 Eat balanced meals with fruits and vegetables",
		"💡 Visit a doctor for regular check-ups",
	},
}

// Data returns a copy of the offline bundle.
func Data() EmergencyData {
	return EmergencyData{
		EmergencyContacts: append([]string(nil), data.EmergencyContacts...),
		BasicFirstAid:     append([]string(nil), data.BasicFirstAid...),
		HospitalList:      append([]string(nil), data.HospitalList...),
		EmergencyPhrases:  append([]Phrase(nil), data.EmergencyPhrases...),
		HealthTips:        append([]string(nil), data.HealthTips...),
	}
}

const hospitalsInReply = 3

var emergencyCues = []string{"chest pain", "bleeding", "unconscious", "breathe"}

const (
	emergencyEnglish = `🚨 EMERGENCY: This sounds serious! Call 112 immediately. If no network, find someone with a phone or go to nearest hospital.

Basic first aid:
- Severe bleeding: Apply direct pressure with clean cloth
- Unconscious: Check breathing, recovery position
- Chest pain: Keep calm, call 112

Nearest hospitals:
%s

⚠️ This is emergency guidance only. Get professional help immediately!`

	generalEnglish = `I'm currently offline, but I can provide basic guidance.

For emergencies, call 112. If symptoms are serious, don't wait - go to hospital.

Major hospitals:
%s

⚠️ Please see a doctor for proper diagnosis. This is basic guidance only.`

	emergencyPidgin = `🚨 EMERGENCY: This thing serious o! Call 112 now now. If no network, find person wey get phone or go nearest hospital sharp sharp.

Basic help:
- If person dey bleed: Press the place with clean cloth
- If person faint: Put am for side, check if e dey breathe
- If chest pain: Make the person sit down, call 112

Hospitals near you:
%s

⚠️ This na emergency advice. Find doctor quick quick!`

	generalPidgin = `I no get internet connection now, but I fit help small small.

For emergency, call 112. If symptoms serious, no wait - go hospital.

Basic hospitals:
%s

⚠️ See doctor for proper check. This na basic advice only.`
)

// IsEmergency applies the crude keyword check used to pick a template.
func IsEmergency(symptoms string) bool {
	lower := strings.ToLower(symptoms)
	for _, cue := range emergencyCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

// GenerateOfflineEmergencyResponse builds a reply without any network dependency.
// Every variant carries 112 and the first three static hospitals.
func GenerateOfflineEmergencyResponse(symptoms string, lang types.Language) string {
	hospitals := strings.Join(data.HospitalList[:hospitalsInReply], "\n")
	emergency := IsEmergency(symptoms)

	var tmpl string
	switch {
	case lang == types.LanguagePidgin && emergency:
		tmpl = emergencyPidgin
	case lang == types.LanguagePidgin:
		tmpl = generalPidgin
	case emergency:
		tmpl = emergencyEnglish
	default:
		tmpl = generalEnglish
	}

	return fmt.Sprintf(tmpl, hospitals)
}
