package job

import (
	"encoding/json"
	"io"
	"math"
	"math/big"
	"mime"
	"strconv"
	"strings"

	"github.com/titanous/json5"

	"github.com/teranos/cronstorm/errors"
)

const literalReason = "not a data literal (object, array, string, number, boolean or null)"

// EncodeBody prepares a --body value for transmission.
//
// With a JSON content type the text is read as a data literal (objects,
// arrays, strings, numbers, booleans, null; unquoted keys, single quotes,
// hex numbers and trailing commas are accepted) and re-serialized as strict
// JSON. Numbers keep their digits. Nothing is ever evaluated. Any other
// content type passes the text through untouched.
func EncodeBody(text, contentType string) (string, error) {
	if !IsJSONContentType(contentType) {
		return text, nil
	}

	value, err := decodeLiteral(text)
	if err != nil {
		v := newValidationError(FieldBody, text, literalReason)
		v.Err = err
		return "", v
	}

	value, err = toJSONValue(value)
	if err != nil {
		v := newValidationError(FieldBody, text, "cannot be represented as JSON")
		v.Err = err
		return "", v
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		v := newValidationError(FieldBody, text, "cannot be represented as JSON")
		v.Err = err
		return "", v
	}
	return string(encoded), nil
}

// decodeLiteral reads exactly one value from text.
func decodeLiteral(text string) (interface{}, error) {
	dec := json5.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}

	var extra interface{}
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after literal")
		}
		return nil, err
	}
	return value, nil
}

func toJSONValue(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, elem := range t {
			c, err := toJSONValue(elem)
			if err != nil {
				return nil, err
			}
			t[k] = c
		}
	case []interface{}:
		for i, elem := range t {
			c, err := toJSONValue(elem)
			if err != nil {
				return nil, err
			}
			t[i] = c
		}
	case json5.Number:
		return jsonNumber(string(t))
	case float64:
		// NaN and Infinity arrive as floats even with UseNumber.
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, errors.Newf("%v has no JSON form", t)
		}
	}
	return v, nil
}

// jsonNumber rewrites a JSON5 number literal as a JSON number without
// passing it through float64 when it is already valid JSON.
func jsonNumber(s string) (json.Number, error) {
	sign := ""
	digits := s
	switch {
	case strings.HasPrefix(digits, "-"):
		sign, digits = "-", digits[1:]
	case strings.HasPrefix(digits, "+"):
		digits = digits[1:]
	}

	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		n, ok := new(big.Int).SetString(digits[2:], 16)
		if !ok {
			return "", errors.Newf("invalid hex number %q", s)
		}
		if sign == "-" {
			n.Neg(n)
		}
		return json.Number(n.String()), nil
	}

	if candidate := sign + digits; json.Valid([]byte(candidate)) {
		return json.Number(candidate), nil
	}

	f, err := strconv.ParseFloat(sign+digits, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", errors.Newf("number %q has no JSON form", s)
	}
	return json.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

// IsJSONContentType reports whether contentType names the JSON media type,
// ignoring parameters such as charset.
func IsJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == MediaTypeJSON
}
