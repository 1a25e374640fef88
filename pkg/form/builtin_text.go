package form

import (
	"regexp"
	"strings"
)

// sequences are rejected by noSequence. Entries are literal substrings.
var sequences = []string{"abc", "123"}

var (
	reAlphabets              = regexp.MustCompile(`[a-z A-Z]`)
	reAlphabetsOnly          = regexp.MustCompile(`^[a-z A-Z]+$`)
	reAlphabetsLowercase     = regexp.MustCompile(`[a-z]`)
	reAlphabetsLowercaseOnly = regexp.MustCompile(`^[a-z]+$`)
	reAlphabetsUppercase     = regexp.MustCompile(`[A-Z]`)
	reAlphabetsUppercaseOnly = regexp.MustCompile(`^[A-Z]+$`)
	reNumbers                = regexp.MustCompile(`\d`)
	reNumbersOnly            = regexp.MustCompile(`^\d+$`)
	reSpecial                = regexp.MustCompile("[!@#$%^&*()_+~`{}\\[\\]\\\\;:'\"<>,.?/]+")
	reSpecialOnly            = regexp.MustCompile("^[!@#$%^&*()_+~`{}\\[\\]\\\\;:'\"<>,.?/]+$")

	reEmail = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)
	reURL   = regexp.MustCompile(`[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_+.~#?&/=]*)`)
	rePhone = regexp.MustCompile(`^\+?(234|0)[789][01]\d{8}$`)
	reMoney = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	reName  = regexp.MustCompile(`\w{2}(\s\w{2})+`)
)

// matches reports whether the text form of value matches re. nil never matches.
func matches(re *regexp.Regexp) func(any, []string) bool {
	return func(value any, _ []string) bool {
		text, ok := toText(value)
		return ok && re.MatchString(text)
	}
}

func presenceRules() map[string]Rule {
	return map[string]Rule{
		"required": valueRule(func(value any, _ []string) bool {
			return isTruthy(value)
		}, fixed("this field is required.")),
		"nullable": valueRule(func(any, []string) bool {
			return true
		}, fixed("")),
	}
}

// characterRules check character classes. The "Only" variants anchor the whole value.
// alphabets and alphabetsOnly also accept spaces.
func characterRules() map[string]Rule {
	return map[string]Rule{
		"alphabets":              valueRule(matches(reAlphabets), fixed("this field must contain letters.")),
		"alphabetsOnly":          valueRule(matches(reAlphabetsOnly), fixed("this field must contain only letters.")),
		"alphabetsLowercase":     valueRule(matches(reAlphabetsLowercase), fixed("this field must contain lowercase letters.")),
		"alphabetsLowercaseOnly": valueRule(matches(reAlphabetsLowercaseOnly), fixed("this field must contain only lowercase letters.")),
		"alphabetsUppercase":     valueRule(matches(reAlphabetsUppercase), fixed("this field must contain uppercase letters.")),
		"alphabetsUppercaseOnly": valueRule(matches(reAlphabetsUppercaseOnly), fixed("this field must contain only uppercase letters.")),
		"numbers":                valueRule(matches(reNumbers), fixed("this field must contain numbers.")),
		"numbersOnly":            valueRule(matches(reNumbersOnly), fixed("this field must contain only numbers.")),
		"specialCharacters":      valueRule(matches(reSpecial), fixed("this field must contain punctuations.")),
		"specialCharactersOnly":  valueRule(matches(reSpecialOnly), fixed("this field must contain only punctuations.")),
	}
}

func formatRules() map[string]Rule {
	return map[string]Rule{
		"email": valueRule(matches(reEmail), fixed("this field has to be a valid email address.")),
		"url":   valueRule(matches(reURL), fixed("this field has to be a valid url address")),
		"phone": valueRule(matches(rePhone), fixed("the field has to be a valid nigerian phone number.")),
		"money": valueRule(matches(reMoney), fixed("this field can only money format and in 2 decimal places.")),
		"name":  valueRule(matches(reName), fixed("this field has to be a valid full name.")),
		"noSequence": valueRule(func(value any, _ []string) bool {
			text, ok := toText(value)
			if !ok {
				return true
			}
			for _, seq := range sequences {
				if strings.Contains(text, seq) {
					return false
				}
			}
			return true
		}, fixed("this field must not contain simple sequences like "+strings.Join(sequences, ", "))),
	}
}
