package utils

import "strings"

// TitleCase uppercases the first letter of a single word.
func TitleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
