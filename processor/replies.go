package processor

import (
	"fmt"
	"strings"

	"go-healthai/types"
)

const (
	emergencyFallbackEnglish = "🚨 This sounds like an emergency. Call 112 immediately or go to the nearest hospital now. " +
		"Do not wait for symptoms to get worse. If you cannot call, ask someone nearby to take you to the hospital."
	emergencyFallbackPidgin = "🚨 This one na emergency o! Call 112 now now or go hospital wey near you sharp sharp. " +
		"No wait make e worse. If you no fit call, beg person wey dey near you make e carry you go hospital."
)

func emergencyFallback(lang types.Language) string {
	if lang == types.LanguagePidgin {
		return emergencyFallbackPidgin
	}
	return emergencyFallbackEnglish
}

// hospitalListReply renders the answer to a location follow-up. matched is
// false when nothing in the directory mentions the user's area and the list
// is the general ranking instead.
func hospitalListReply(area string, recs []types.Recommendation, matched bool, lang types.Language) string {
	pidgin := lang == types.LanguagePidgin

	var b strings.Builder
	switch {
	case len(recs) == 0 && pidgin:
		b.WriteString("I no fit find hospital for my list wey match your area.")
	case len(recs) == 0:
		b.WriteString("I couldn't find a hospital in my directory for your area.")
	case !matched && pidgin:
		fmt.Fprintf(&b, "I no get hospital for %s for my list, but these ones fit help you:", area)
	case !matched:
		fmt.Fprintf(&b, "I don't have a hospital listed for %s, but these hospitals can help:", area)
	case pidgin:
		fmt.Fprintf(&b, "Hospitals wey near %s:", area)
	default:
		fmt.Fprintf(&b, "Here are the hospitals closest to %s:", area)
	}
	b.WriteString("\n")

	for i, r := range recs {
		fmt.Fprintf(&b, "\n%d. %s (%s)\n   📞 %s\n   📍 %s\n", i+1, r.Name, r.Distance, r.Phone, r.Address)
	}

	b.WriteString("\n")
	if pidgin {
		b.WriteString("If na emergency, call 112 now now.")
	} else {
		b.WriteString("If this is an emergency, call 112 now.")
	}
	return b.String()
}
