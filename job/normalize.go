package job

import (
	"net/url"
	"strconv"
	"strings"
)

// Normalize validates every field of raw and builds the canonical Spec.
// Fields are checked in command order and the first failure is returned,
// so the error always points at the leftmost offending token.
func Normalize(raw Raw) (Spec, error) {
	method, err := NormalizeMethod(raw.Method)
	if err != nil {
		return Spec{}, err
	}

	if err := ValidateURL(raw.URL); err != nil {
		return Spec{}, err
	}

	intervalCount, err := ParseCount(FieldIntervalCount, raw.IntervalCount)
	if err != nil {
		return Spec{}, err
	}
	interval, err := NormalizeUnit(FieldInterval, raw.Interval)
	if err != nil {
		return Spec{}, err
	}

	durationCount, err := ParseCount(FieldDurationCount, raw.DurationCount)
	if err != nil {
		return Spec{}, err
	}
	duration, err := NormalizeUnit(FieldDuration, raw.Duration)
	if err != nil {
		return Spec{}, err
	}

	contentType := strings.TrimSpace(raw.ContentType)
	if contentType == "" {
		contentType = MediaTypeJSON
	}

	var body *string
	if raw.Body != nil {
		encoded, err := EncodeBody(*raw.Body, contentType)
		if err != nil {
			return Spec{}, err
		}
		body = &encoded
	}

	return Spec{
		Method:        method,
		URL:           raw.URL,
		IntervalCount: intervalCount,
		Interval:      interval,
		DurationCount: durationCount,
		Duration:      duration,
		Body:          body,
		ContentType:   contentType,
		APIKey:        raw.APIKey,
	}, nil
}

// NormalizeMethod upper-cases s and checks it against Methods.
func NormalizeMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(s))
	for _, known := range Methods {
		if m == known {
			return m, nil
		}
	}
	return "", newValidationError(FieldMethod, s, "must be one of "+joinMethods())
}

// NormalizeUnit lower-cases s, drops exactly one trailing "s", and checks the
// result against Units. The strip is deliberately naive: "days" becomes "day",
// but so would any singular word ending in "s".
func NormalizeUnit(field, s string) (Unit, error) {
	u := Unit(singularize(strings.ToLower(s)))
	for _, known := range Units {
		if u == known {
			return u, nil
		}
	}
	return "", newValidationError(field, s, "must be one of "+joinUnits())
}

func singularize(s string) string {
	return strings.TrimSuffix(s, "s")
}

// ParseCount parses s as a strictly positive base-10 integer.
func ParseCount(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		v := newValidationError(field, s, "integer required")
		v.Err = err
		return 0, v
	}
	if n <= 0 {
		return 0, newValidationError(field, s, "must be greater than zero")
	}
	return n, nil
}

// ValidateURL requires s to parse as an absolute URL with a port, if any, in
// 0-65535. The string itself is never rewritten, so forms a browser would
// repair such as "http:/a.b" (no host until normalized) are rejected.
func ValidateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		v := newValidationError(FieldURL, s, "malformed URL")
		v.Err = err
		return v
	}
	if !u.IsAbs() {
		return newValidationError(FieldURL, s, "absolute URL required (e.g. https://example.com/hook)")
	}
	if u.Opaque == "" && u.Host == "" && (u.Scheme == "http" || u.Scheme == "https") {
		return newValidationError(FieldURL, s, "missing host")
	}
	if p := u.Port(); p != "" {
		if n, err := strconv.Atoi(p); err != nil || n > 65535 {
			return newValidationError(FieldURL, s, "port out of range")
		}
	}
	return nil
}

func joinMethods() string {
	names := make([]string, len(Methods))
	for i, m := range Methods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func joinUnits() string {
	names := make([]string, len(Units))
	for i, u := range Units {
		names[i] = string(u)
	}
	return strings.Join(names, ", ")
}
