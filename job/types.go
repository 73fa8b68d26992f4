// Package job holds the canonical description of a recurring HTTP call and the
// single normalization step that turns raw command fields into it.
package job

import "strings"

// Unit is the time granularity used for both the repeat interval and the job lifespan.
type Unit string

const (
	Second Unit = "second"
	Minute Unit = "minute"
	Hour   Unit = "hour"
	Day    Unit = "day"
	Week   Unit = "week"
	Month  Unit = "month"
)

// Units lists every accepted recurrence unit in ascending order.
var Units = []Unit{Second, Minute, Hour, Day, Week, Month}

// Method is an HTTP method the remote scheduler will fire.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodPatch  Method = "PATCH"
	MethodHead   Method = "HEAD"
)

// Methods lists every accepted HTTP method.
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch, MethodHead}

// MediaTypeJSON is the default content type; bodies sent with it are parsed as
// data literals and re-serialized as JSON.
const MediaTypeJSON = "application/json"

// Raw carries the six positional fields exactly as typed, plus the option values.
// Both command grammars produce a Raw; Normalize is the only way to get a Spec from it.
type Raw struct {
	Method        string
	URL           string
	IntervalCount string
	Interval      string
	DurationCount string
	Duration      string

	Body        *string // nil when --body was not given
	ContentType string  // empty means MediaTypeJSON
	APIKey      string
}

// Spec is the canonical, fully validated job specification.
// Field names in the JSON form match what the scheduler expects.
type Spec struct {
	Method        Method  `json:"method"`
	URL           string  `json:"url"`
	IntervalCount int     `json:"intervalCount"`
	Interval      Unit    `json:"interval"`
	DurationCount int     `json:"durationCount"`
	Duration      Unit    `json:"duration"`
	Body          *string `json:"body,omitempty"`
	ContentType   string  `json:"contentType"`
	APIKey        string  `json:"-"`
}

// Handle identifies a job created by the remote scheduler.
type Handle struct {
	ID string `json:"id"`
}

func (h Handle) String() string {
	return h.ID
}

// Validate rejects ids that cannot name a single job in a URL path:
// the empty string and the dot segments "." and "..".
func (h Handle) Validate() error {
	switch strings.TrimSpace(h.ID) {
	case "":
		return newValidationError(FieldID, h.ID, "must not be empty")
	case ".", "..":
		return newValidationError(FieldID, h.ID, "is not a job id")
	}
	return nil
}
