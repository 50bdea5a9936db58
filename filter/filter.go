package filter

import (
	"fmt"
	"regexp"
	"strings"

	"go-healthai/types"
)

const (
	Disclaimer      = "⚠️ Please consult a healthcare professional for proper diagnosis and treatment."
	HotlineSentence = "🚨 This sounds like an emergency. Call 112 immediately."
	Hotline         = "112"
)

var dangerousPhrases = []string{
	"you definitely have",
	"this is definitely",
	"you should not see a doctor",
	"ignore medical advice",
	"don't go to hospital",
	"cure yourself",
	"guaranteed cure",
	"medical treatment is unnecessary",
}

var safetyPhrases = []string{
	"see a doctor",
	"consult",
	"medical professional",
	"proper diagnosis",
	"emergency",
}

var emergencyKeywords = []string{
	"chest pain",
	"difficulty breathing",
	"unconscious",
	"severe bleeding",
}

type fix struct {
	wrong   string
	correct string
	re      *regexp.Regexp
}

func newFix(wrong, correct string) fix {
	return fix{
		wrong:   wrong,
		correct: correct,
		re:      regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(wrong) + `\b`),
	}
}

var grammarFixes = []fix{
	// contractions
	newFix("cant breathe", "can't breathe"),
	newFix("wont stop", "won't stop"),
	newFix("doesnt feel", "doesn't feel"),
	newFix("isnt normal", "isn't normal"),
	newFix("shouldnt ignore", "shouldn't ignore"),
	newFix("dont wait", "don't wait"),
	newFix("hasnt improved", "hasn't improved"),

	// medical spelling
	newFix("symtoms", "symptoms"),
	newFix("sympton", "symptom"),
	newFix("medicin", "medicine"),
	newFix("hosptial", "hospital"),
	newFix("docter", "doctor"),
	newFix("emergancy", "emergency"),
	newFix("treatement", "treatment"),
	newFix("diagosis", "diagnosis"),

	// phrasing
	newFix("you need see", "you need to see"),
	newFix("go see doctor", "go see a doctor"),
	newFix("visit hospital", "visit a hospital"),
	newFix("call doctor", "call a doctor"),
	newFix("take medicine", "take the medicine"),

	newFix("alot of", "a lot of"),
	newFix("loose weight", "lose weight"),
	newFix("there symptoms", "their symptoms"),
	newFix("your feeling", "you're feeling"),
	newFix("its important", "it's important"),
}

var (
	lowerAfterPeriod = regexp.MustCompile(`\. [a-z]`)
	doubleSpaces     = regexp.MustCompile(`  +`)
	missingFullStop  = regexp.MustCompile(`([a-zA-Z])\s*$`)
	veryMuchImp      = regexp.MustCompile(`(?i)\bvery much important\b`)
	muchVery         = regexp.MustCompile(`(?i)\bmuch very\b`)

	youHave           = regexp.MustCompile(`(?i)\byou have ([a-z])`)
	thisIsDefinitely  = regexp.MustCompile(`(?i)\bthis is definitely\b`)
	youDefinitelyNeed = regexp.MustCompile(`(?i)\byou definitely need\b`)
	willCure          = regexp.MustCompile(`(?i)\bwill cure\b`)
)

// FilterMedicalResponse sanitizes a generated answer. Flagged text is still
// corrected and returned; IsValid only reports that a dangerous phrase was seen.
func FilterMedicalResponse(raw string) types.FilterResult {
	result := types.FilterResult{IsValid: true, FilteredResponse: raw, Warnings: []string{}}
	lowerRaw := strings.ToLower(raw)

	// 1. danger scan
	for _, phrase := range dangerousPhrases {
		if strings.Contains(lowerRaw, phrase) {
			result.IsValid = false
			result.Warnings = append(result.Warnings, fmt.Sprintf("Contains potentially dangerous advice: %q", phrase))
		}
	}

	// 2. disclaimer
	if !containsAny(lowerRaw, safetyPhrases) {
		result.FilteredResponse += "\n\n" + Disclaimer
		result.Warnings = append(result.Warnings, "Added missing safety disclaimer")
	}

	// 3. grammar and structure
	text := result.FilteredResponse
	for _, f := range grammarFixes {
		if f.re.MatchString(text) {
			text = replaceKeepingCase(f.re, text, f.correct)
			result.Warnings = append(result.Warnings, fmt.Sprintf("Fixed grammar: %q → %q", f.wrong, f.correct))
		}
	}
	text = doubleSpaces.ReplaceAllString(text, " ")
	text = lowerAfterPeriod.ReplaceAllStringFunc(text, strings.ToUpper)
	text = missingFullStop.ReplaceAllString(text, "${1}.")
	text = replaceKeepingCase(veryMuchImp, text, "very important")
	text = replaceKeepingCase(muchVery, text, "very much")

	// 4. diagnostic softening
	lower := strings.ToLower(text)
	if strings.Contains(lower, "you have ") && !strings.Contains(lower, "might have") && !strings.Contains(lower, "could have") {
		text = youHave.ReplaceAllStringFunc(text, func(m string) string {
			return keepCase(m, "you might have "+m[len(m)-1:])
		})
		result.Warnings = append(result.Warnings, "Softened definitive diagnosis language")
	}
	text = replaceKeepingCase(thisIsDefinitely, text, "this could be")
	text = replaceKeepingCase(youDefinitelyNeed, text, "you should consider")
	text = replaceKeepingCase(willCure, text, "may help with")

	// 5. hotline, never skipped
	if containsAny(strings.ToLower(text), emergencyKeywords) && !strings.Contains(text, Hotline) {
		text += "\n\n" + HotlineSentence
		result.Warnings = append(result.Warnings, "Added emergency contact information")
	}

	result.FilteredResponse = text
	return result
}

// replaceKeepingCase substitutes every match of re, upper-casing the first
// letter of the replacement when the match started with a capital.
func replaceKeepingCase(re *regexp.Regexp, text, repl string) string {
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return keepCase(m, repl)
	})
}

func keepCase(match, repl string) string {
	if match == "" || repl == "" {
		return repl
	}
	if match[0] >= 'A' && match[0] <= 'Z' {
		return strings.ToUpper(repl[:1]) + repl[1:]
	}
	return repl
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
