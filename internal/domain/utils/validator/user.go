package validator

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

func Login(login string) bool {
	login = strings.TrimSpace(login)
	return utf8.RuneCountInString(login) >= 3 && utf8.RuneCountInString(login) <= 50
}

func Password(password string) bool {
	return utf8.RuneCountInString(password) >= 6
}

func PersonName(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && utf8.RuneCountInString(name) <= 100
}

func Email(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
