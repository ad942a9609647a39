package utils

import (
	"unicode"
)

// IsInnerWordPunct reports punctuation that may appear inside a word.
func IsInnerWordPunct(r rune) bool {
	return r == '\'' || r == '-' || r == '’'
}

// IsOnlyNumbers checks if a string consists entirely of digits
func IsOnlyNumbers(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsValidInput reports whether a typed word is worth a dictionary lookup.
// Numbers, words with symbols and runs of one repeated letter are skipped.
func IsValidInput(s string) bool {
	if s == "" || IsOnlyNumbers(s) || IsRepetitive(s) {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !IsInnerWordPunct(r) {
			return false
		}
	}
	return true
}

// IsRepetitive checks for one character repeated three times or more ("aaa").
func IsRepetitive(s string) bool {
	runes := []rune(s)
	if len(runes) <= 2 {
		return false
	}
	for _, r := range runes[1:] {
		if unicode.ToLower(r) != unicode.ToLower(runes[0]) {
			return false
		}
	}
	return true
}
