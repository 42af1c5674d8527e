package validator

import (
	"strings"
	"unicode/utf8"
)

func HackathonName(name string) bool {
	name = strings.TrimSpace(name)
	return utf8.RuneCountInString(name) >= 3 && utf8.RuneCountInString(name) <= 150
}

func ParticipantLimit(max int) bool {
	return max > 0
}

func TeamLimit(max int) bool {
	return max > 0
}

func ProblemDescription(text string) bool {
	return strings.TrimSpace(text) != ""
}
