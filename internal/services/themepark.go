package services

import "strings"

// ThemeParkClass is the classification verdict for one attraction.
type ThemeParkClass struct {
	IsThemePark bool
	Matched     string
}

// Operator names and venue-type signals that mark a full-day park.
var themeParkTerms = []string{
	"disney",
	"disneyland",
	"magic kingdom",
	"epcot",
	"hollywood studios",
	"animal kingdom",
	"universal studios",
	"islands of adventure",
	"volcano bay",
	"citywalk",
	"seaworld",
	"busch gardens",
	"legoland",
	"six flags",
	"knott's berry farm",
	"theme park",
	"amusement park",
	"water park",
}

// Venues that contain park-like words but are ordinary attractions.
// Exclusions always win over the positive lexicon. Matched on whole words
// so "garden" cannot swallow operator names like "Busch Gardens".
var themeParkExclusions = []string{
	"museum",
	"science center",
	"science centre",
	"national park",
	"state park",
	"city park",
	"central park",
	"skate park",
	"parking",
	"garden",
	"zoo",
	"aquarium",
}

// ClassifyThemePark reports whether an attraction is a full-day theme park.
// Pure lexicon matching over name and description, deterministic and total.
func ClassifyThemePark(name, description string) ThemeParkClass {
	text := strings.ToLower(name + " " + description)
	words := foldWords(text)

	for _, term := range themeParkExclusions {
		if containsWordSequence(words, term) {
			return ThemeParkClass{}
		}
	}
	for _, term := range themeParkTerms {
		if strings.Contains(text, term) {
			return ThemeParkClass{IsThemePark: true, Matched: term}
		}
	}
	return ThemeParkClass{}
}

// foldWords splits lowercased text into plain alphanumeric words.
func foldWords(text string) []string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

func containsWordSequence(words []string, phrase string) bool {
	target := strings.Fields(phrase)
	if len(target) == 0 || len(target) > len(words) {
		return false
	}
	for i := 0; i+len(target) <= len(words); i++ {
		match := true
		for j, w := range target {
			if words[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
