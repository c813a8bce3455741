package service

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/Novip1906/join/internal/config"
	"github.com/Novip1906/join/internal/models"
)

const dueDateLayout = "2006-01-02"

var phonePattern = regexp.MustCompile(`^[+0-9 ()/-]*$`)

func processText(text string) string {
	return strings.TrimSpace(text)
}

func lenIsValid(text string, bounds config.MinMaxLen) bool {
	length := utf8.RuneCountInString(text)
	return length >= bounds.Min && length <= bounds.Max
}

// emailIsValid accepts a bare address only, without a display name.
func emailIsValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func phoneIsValid(phone string) bool {
	return phonePattern.MatchString(phone)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func parseDueDate(raw string) (time.Time, bool) {
	d, err := time.Parse(dueDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Initials takes the first letter of the first and the last word of a name,
// upper-cased: "anna maria schmidt" -> "AS", "Guest" -> "G".
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	first := firstLetter(words[0])
	if len(words) == 1 {
		return first
	}
	return first + firstLetter(words[len(words)-1])
}

func firstLetter(word string) string {
	r, _ := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

func canonicalCategory(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, c := range models.Categories {
		if strings.EqualFold(raw, c) {
			return c, true
		}
	}
	return "", false
}
