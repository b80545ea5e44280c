package util

import (
	"regexp"
	"strings"
)

var (
	numericPattern   = regexp.MustCompile(`^[0-9]+$`)
	mailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	mobilePattern    = regexp.MustCompile(`^09[0-9]{7}$`)
	legalNamePattern = regexp.MustCompile(`^[0-9A-ZÁÉÍÓÚÜÑa-záéíóúüñ][0-9A-ZÁÉÍÓÚÜÑa-záéíóúüñ .,&'\-]*$`)
)

// IsNumeric reports whether s is non-empty and contains only digits.
func IsNumeric(s string) bool {
	return numericPattern.MatchString(s)
}

// IsValidMail reports whether s looks like a deliverable mail address.
func IsValidMail(s string) bool {
	return mailPattern.MatchString(s)
}

// IsValidMobile reports whether s is a Uruguayan mobile number (09xxxxxxx).
func IsValidMobile(s string) bool {
	return mobilePattern.MatchString(s)
}

// IsValidLegalName reports whether the registered legal name is admissible
// for a unipersonal account.
func IsValidLegalName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return false
	}
	return legalNamePattern.MatchString(name)
}

// SimilarNames reports whether the owner's registered name is close enough
// to the business legal name. At least half of the owner's name tokens must
// appear in the legal name, ignoring case and accents.
func SimilarNames(ownerName, legalName string) bool {
	ownerTokens := tokenize(ownerName)
	if len(ownerTokens) == 0 {
		return false
	}

	legalTokens := make(map[string]bool)
	for _, t := range tokenize(legalName) {
		legalTokens[t] = true
	}

	matched := 0
	for _, t := range ownerTokens {
		if legalTokens[t] {
			matched++
		}
	}

	return matched*2 >= len(ownerTokens)
}

func tokenize(s string) []string {
	var tokens []string
	for _, t := range strings.Fields(strings.ToUpper(s)) {
		t = stripAccents(t)
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

var accentReplacer = strings.NewReplacer(
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ü", "U",
)

func stripAccents(s string) string {
	return accentReplacer.Replace(s)
}
