// Package validation checks request payloads against strict per-resource
// schemas before anything reaches persistence.
package validation

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// Kind selects which rules are mandatory.
type Kind int

const (
	Create Kind = iota
	Update
)

func (k Kind) String() string {
	if k == Update {
		return "update"
	}
	return "create"
}

// Messages shared by every schema.
const (
	MsgFailed       = "validation failed"
	MsgUnknownField = "Unknown fields specified"
	MsgInvalidBody  = "Request body must be a JSON object"
	MsgEmptyUpdate  = "At least one field must be provided"
	bodyField       = "body"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the full set of problems found in a payload.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// rule validates one field. check returns the parsed value or ok=false.
type rule struct {
	field      string
	message    string
	requiredOn map[Kind]bool
	check      func(raw json.RawMessage) (any, bool)
}

// schema is an allow-list of rules.
type schema []rule

func (s schema) allows(field string) bool {
	for _, r := range s {
		if r.field == field {
			return true
		}
	}
	return false
}

// apply decodes body, rejects unknown fields and runs every rule, collecting
// all failures. Parsed values are keyed by field name.
func (s schema) apply(kind Kind, body []byte) (map[string]any, Errors) {
	var payload map[string]json.RawMessage
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' || json.Unmarshal(trimmed, &payload) != nil {
		return nil, Errors{{Field: bodyField, Message: MsgInvalidBody}}
	}

	var errs Errors
	for field := range payload {
		if !s.allows(field) {
			errs = append(errs, FieldError{Field: field, Message: MsgUnknownField})
		}
	}

	values := make(map[string]any, len(s))
	for _, r := range s {
		raw, present := payload[r.field]
		if !present {
			if r.requiredOn[kind] {
				errs = append(errs, FieldError{Field: r.field, Message: r.message})
			}
			continue
		}
		v, ok := r.check(raw)
		if !ok {
			errs = append(errs, FieldError{Field: r.field, Message: r.message})
			continue
		}
		values[r.field] = v
	}

	if kind == Update && len(payload) == 0 {
		errs = append(errs, FieldError{Field: bodyField, Message: MsgEmptyUpdate})
	}

	if len(errs) > 0 {
		sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
		return nil, errs
	}
	return values, nil
}

func isString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func checkString(raw json.RawMessage) (any, bool) {
	return isString(raw)
}

func on(kinds ...Kind) map[Kind]bool {
	m := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return m
}
