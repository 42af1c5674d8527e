package validator

import (
	"strings"
	"unicode/utf8"
)

func TeamName(name string) bool {
	name = strings.TrimSpace(name)
	return utf8.RuneCountInString(name) >= 2 && utf8.RuneCountInString(name) <= 100
}

// TeamSize caps what a leader can ask for; a team always holds at least its leader.
func TeamSize(size int) bool {
	return size >= 1 && size <= 20
}

func ProgressTitle(title string) bool {
	title = strings.TrimSpace(title)
	return title != "" && utf8.RuneCountInString(title) <= 150
}
