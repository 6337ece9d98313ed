package validation

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/shopline/catalog-service/internal/domain"
)

const (
	MsgEmail     = "Please provide a valid email address."
	MsgPassword  = "Password must be at least 8 characters long, contain at least one uppercase letter, one lowercase letter, one number, and one special character."
	MsgFirstName = "First name must be a string."
	MsgLastName  = "Last name must be a string."

	// MsgPasswordTooLong is reported by the hashing step, not by the schema.
	MsgPasswordTooLong = "Password must be at most 72 bytes long."

	passwordMinLen  = 8
	passwordSymbols = "-#!$@£%^&*()_+|~=`{}[]:\";'<>?,./\\ "
)

var userSchema = schema{
	{field: "email", message: MsgEmail, requiredOn: on(Create), check: checkEmail},
	{field: "password", message: MsgPassword, requiredOn: on(Create), check: checkPassword},
	{field: "firstName", message: MsgFirstName, check: checkString},
	{field: "lastName", message: MsgLastName, check: checkString},
}

// User validates a user payload. Email is returned normalized; password is
// returned as received.
func User(kind Kind, body []byte) (domain.UserPatch, error) {
	values, errs := userSchema.apply(kind, body)
	if errs != nil {
		return domain.UserPatch{}, errs
	}

	var patch domain.UserPatch
	if v, ok := values["email"].(string); ok {
		patch.Email = &v
	}
	if v, ok := values["password"].(string); ok {
		patch.Password = &v
	}
	if v, ok := values["firstName"].(string); ok {
		patch.FirstName = &v
	}
	if v, ok := values["lastName"].(string); ok {
		patch.LastName = &v
	}
	return patch, nil
}

func checkEmail(raw json.RawMessage) (any, bool) {
	s, ok := isString(raw)
	if !ok {
		return nil, false
	}
	normalized, err := NormalizeEmail(s)
	if err != nil {
		return nil, false
	}
	return normalized, true
}

func checkPassword(raw json.RawMessage) (any, bool) {
	s, ok := isString(raw)
	if !ok {
		return nil, false
	}
	return s, StrongPassword(s)
}

// StrongPassword requires at least 8 characters with an ASCII upper-case
// letter, an ASCII lower-case letter, a digit 0-9 and one of passwordSymbols.
func StrongPassword(s string) bool {
	if utf8.RuneCountInString(s) < passwordMinLen {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
