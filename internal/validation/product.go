package validation

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/shopline/catalog-service/internal/domain"
)

const (
	MsgTitle = "Title length should be 3-30 symbols"
	MsgPrice = "Price must be a non-negative number without symbols"

	titleMinLen = 3
	titleMaxLen = 30
)

var numericPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

var productSchema = schema{
	{field: "title", message: MsgTitle, requiredOn: on(Create), check: checkTitle},
	{field: "price", message: MsgPrice, requiredOn: on(Create), check: checkPrice},
}

// Product validates a product payload. On update every field is optional but
// still checked when present.
func Product(kind Kind, body []byte) (domain.ProductPatch, error) {
	values, errs := productSchema.apply(kind, body)
	if errs != nil {
		return domain.ProductPatch{}, errs
	}

	var patch domain.ProductPatch
	if v, ok := values["title"].(string); ok {
		patch.Title = &v
	}
	if v, ok := values["price"].(float64); ok {
		patch.Price = &v
	}
	return patch, nil
}

func checkTitle(raw json.RawMessage) (any, bool) {
	s, ok := isString(raw)
	if !ok {
		return nil, false
	}
	n := utf8.RuneCountInString(s)
	return s, n >= titleMinLen && n <= titleMaxLen
}

// checkPrice accepts a JSON number or numeric string made only of digits and
// an optional decimal point.
func checkPrice(raw json.RawMessage) (any, bool) {
	raw = bytes.TrimSpace(raw)
	token := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		s, ok := isString(raw)
		if !ok {
			return nil, false
		}
		token = s
	}
	if !numericPattern.MatchString(token) {
		return nil, false
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}
