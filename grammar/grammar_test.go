package grammar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/cronstorm/errors"
	"github.com/teranos/cronstorm/internal/util"
	"github.com/teranos/cronstorm/job"
)

func TestParseBegin(t *testing.T) {
	raw, err := ParseBegin(strings.Fields("post http://a.b every 1 seconds for 9 months"))
	require.NoError(t, err)

	assert.Equal(t, &job.Raw{
		Method:        "post",
		URL:           "http://a.b",
		IntervalCount: "1",
		Interval:      "seconds",
		DurationCount: "9",
		Duration:      "months",
	}, raw)
}

func TestParseEvery(t *testing.T) {
	raw, err := ParseEvery(strings.Fields("9 seconds for 5 weeks patch https://a.b"))
	require.NoError(t, err)

	assert.Equal(t, &job.Raw{
		Method:        "patch",
		URL:           "https://a.b",
		IntervalCount: "9",
		Interval:      "seconds",
		DurationCount: "5",
		Duration:      "weeks",
	}, raw)
}

func TestRule_FieldAt(t *testing.T) {
	field, ok := BeginRule.FieldAt(3)
	assert.True(t, ok)
	assert.Equal(t, job.FieldIntervalCount, field)

	field, ok = EveryRule.FieldAt(3)
	assert.True(t, ok)
	assert.Equal(t, job.FieldDurationCount, field)

	_, ok = BeginRule.FieldAt(2)
	assert.False(t, ok, "keyword slot")
	_, ok = EveryRule.FieldAt(7)
	assert.False(t, ok, "past the end")
	_, ok = EveryRule.FieldAt(-1)
	assert.False(t, ok)
}

func TestBothGrammarsProduceSameSpec(t *testing.T) {
	tests := []struct {
		begin string
		every string
	}{
		{
			begin: "begin post http://a.b every 1 seconds for 9 months",
			every: "every 1 seconds for 9 months post http://a.b",
		},
		{
			begin: "begin patch https://a.b every 9 seconds for 5 weeks",
			every: "every 9 seconds for 5 weeks patch https://a.b",
		},
		{
			begin: "BEGIN Get https://example.com/x?y=1 EVERY 3 Hours FOR 2 day",
			every: "Every 3 hours For 2 Days GET https://example.com/x?y=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.every, func(t *testing.T) {
			beginRaw, err := Parse(strings.Fields(tt.begin))
			require.NoError(t, err)
			everyRaw, err := Parse(strings.Fields(tt.every))
			require.NoError(t, err)

			beginSpec, err := job.Normalize(*beginRaw)
			require.NoError(t, err)
			everySpec, err := job.Normalize(*everyRaw)
			require.NoError(t, err)

			assert.Equal(t, beginSpec, everySpec)
		})
	}
}

func TestEveryScenarioSpec(t *testing.T) {
	raw, err := Parse(strings.Fields("every 9 seconds for 5 weeks patch https://a.b"))
	require.NoError(t, err)

	spec, err := job.Normalize(*raw)
	require.NoError(t, err)

	assert.Equal(t, job.MethodPatch, spec.Method)
	assert.Equal(t, "https://a.b", spec.URL)
	assert.Equal(t, 9, spec.IntervalCount)
	assert.Equal(t, job.Second, spec.Interval)
	assert.Equal(t, 5, spec.DurationCount)
	assert.Equal(t, job.Week, spec.Duration)
}

func TestInvalidURLIsValidationNotGrammar(t *testing.T) {
	raw, err := Parse(strings.Fields("begin get not-a-url every 1 seconds for 1 week"))
	require.NoError(t, err, "shape is fine; only the url field is bad")

	_, err = job.Normalize(*raw)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.False(t, errors.IsGrammarError(err))

	var verr *job.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, job.FieldURL, verr.Field)
}

func TestGrammarErrors(t *testing.T) {
	tests := []struct {
		name     string
		tokens   string
		kind     ErrorKind
		position int
		token    string
	}{
		{"too few begin args", "begin post http://a.b every 1 seconds", ErrorKindArity, -1, ""},
		{"too many every args", "every 1 second for 1 week get https://a.b extra", ErrorKindArity, -1, ""},
		{"missing every keyword", "begin post http://a.b each 1 seconds for 9 months", ErrorKindKeyword, 2, "each"},
		{"missing for keyword", "every 1 second during 1 week get https://a.b", ErrorKindKeyword, 2, "during"},
		{"swapped order", "begin every 1 seconds for 9 months post http://a.b", ErrorKindKeyword, 2, "seconds"},
		{"unknown command", "start post http://a.b every 1 seconds for 9 months", ErrorKindCommand, 0, "start"},
		{"empty", "", ErrorKindCommand, -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.Fields(tt.tokens))
			require.Error(t, err)
			assert.True(t, errors.IsGrammarError(err))
			assert.False(t, errors.IsValidationError(err))

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.kind, perr.Kind)
			assert.Equal(t, tt.position, perr.Position)
			assert.Equal(t, tt.token, perr.Token)
			assert.NotEmpty(t, perr.Suggestions)
		})
	}
}

func TestRuleUsage(t *testing.T) {
	assert.Equal(t, "begin <method> <url> every <interval> <time> for <total> <Time>", BeginRule.Usage())
	assert.Equal(t, "every <interval> <time> for <total> <Time> <method> <url>", EveryRule.Usage())
}

func TestParseErrorFormatting(t *testing.T) {
	err := NewParseError(ErrorKindKeyword, `expected "for" but found "during"`).
		WithPosition(2, 7).
		WithToken("during").
		WithSuggestion("usage: " + EveryRule.Usage())

	plain := err.FormatError(ErrorContextPlain)
	assert.Equal(t, `expected "for" but found "during" (at position 3/7). Suggestions: usage: `+EveryRule.Usage(), plain)
	assert.Equal(t, plain, err.Error())

	terminal := err.FormatError(ErrorContextTerminal)
	assert.Contains(t, terminal, "during")
	assert.Contains(t, terminal, "Suggestions:")
}

func TestCanonical(t *testing.T) {
	body := `{"a":1}`
	spec := job.Spec{
		Method:        job.MethodPost,
		URL:           "http://a.b",
		IntervalCount: 1,
		Interval:      job.Second,
		DurationCount: 9,
		Duration:      job.Month,
		Body:          &body,
		ContentType:   job.MediaTypeJSON,
		APIKey:        "secret",
	}

	tokens := Canonical(spec)
	assert.Equal(t, []string{
		"begin", "post", "http://a.b", "every", "1", "second", "for", "9", "months", "--body", `{"a":1}`,
	}, tokens)
	assert.NotContains(t, tokens, "secret")

	// The canonical form parses back to the same spec.
	raw, err := Parse(tokens[:9])
	require.NoError(t, err)
	raw.Body = util.Ptr(body)
	again, err := job.Normalize(*raw)
	require.NoError(t, err)
	spec.APIKey = ""
	assert.Equal(t, spec, again)
}
