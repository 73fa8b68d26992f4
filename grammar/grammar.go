// Package grammar recognizes the two equivalent ways of declaring a recurring job:
//
//	begin <method> <url> every <interval> <time> for <total> <Time>
//	every <interval> <time> for <total> <Time> <method> <url>
//
// Each shape is a rule (an ordered list of keywords and field slots). Matching a
// rule only binds tokens to fields; coercion and validation happen once, in
// job.Normalize, for both shapes.
package grammar

import (
	"fmt"
	"strings"

	"github.com/teranos/cronstorm/job"
)

// Command keywords
const (
	KeywordBegin = "begin"
	KeywordEvery = "every"
	KeywordFor   = "for"
)

type slotKind int

const (
	slotKeyword slotKind = iota
	slotField
)

type slot struct {
	kind slotKind
	word string // keyword text, or field placeholder name
	bind func(raw *job.Raw, token string)
}

func keyword(word string) slot {
	return slot{kind: slotKeyword, word: word}
}

func field(name string, bind func(raw *job.Raw, token string)) slot {
	return slot{kind: slotField, word: name, bind: bind}
}

var (
	methodSlot        = field(job.FieldMethod, func(r *job.Raw, t string) { r.Method = t })
	urlSlot           = field(job.FieldURL, func(r *job.Raw, t string) { r.URL = t })
	intervalCountSlot = field(job.FieldIntervalCount, func(r *job.Raw, t string) { r.IntervalCount = t })
	intervalSlot      = field(job.FieldInterval, func(r *job.Raw, t string) { r.Interval = t })
	durationCountSlot = field(job.FieldDurationCount, func(r *job.Raw, t string) { r.DurationCount = t })
	durationSlot      = field(job.FieldDuration, func(r *job.Raw, t string) { r.Duration = t })
)

// Rule is one accepted command shape, excluding its leading command word.
type Rule struct {
	Command string
	Example string
	slots   []slot
}

// BeginRule matches: <method> <url> every <interval> <time> for <total> <Time>
var BeginRule = Rule{
	Command: KeywordBegin,
	Example: "cronstorm begin post http://a.b every 1 seconds for 9 months",
	slots: []slot{
		methodSlot, urlSlot,
		keyword(KeywordEvery), intervalCountSlot, intervalSlot,
		keyword(KeywordFor), durationCountSlot, durationSlot,
	},
}

// EveryRule matches: <interval> <time> for <total> <Time> <method> <url>
var EveryRule = Rule{
	Command: KeywordEvery,
	Example: "cronstorm every 9 seconds for 5 weeks patch https://a.b",
	slots: []slot{
		intervalCountSlot, intervalSlot,
		keyword(KeywordFor), durationCountSlot, durationSlot,
		methodSlot, urlSlot,
	},
}

// Rules lists every accepted command shape.
var Rules = []Rule{BeginRule, EveryRule}

// Usage renders the rule as a usage line, e.g. "begin <method> <url> every ...".
func (r Rule) Usage() string {
	parts := []string{r.Command}
	for _, s := range r.slots {
		if s.kind == slotKeyword {
			parts = append(parts, s.word)
		} else {
			parts = append(parts, "<"+s.word+">")
		}
	}
	return strings.Join(parts, " ")
}

// FieldAt returns the field bound by the i-th token, if that token is a field slot.
func (r Rule) FieldAt(i int) (string, bool) {
	if i < 0 || i >= len(r.slots) || r.slots[i].kind != slotField {
		return "", false
	}
	return r.slots[i].word, true
}

// Match binds args (the tokens after the command word) to the rule's fields.
// Keywords match case-insensitively. The returned Raw has only the six
// positional fields set.
func (r Rule) Match(args []string) (*job.Raw, error) {
	if len(args) != len(r.slots) {
		return nil, NewParseError(ErrorKindArity,
			fmt.Sprintf("%s expects %d arguments, got %d", r.Command, len(r.slots), len(args))).
			WithSuggestion("usage: " + r.Usage()).
			WithSuggestion("example: " + r.Example)
	}

	raw := &job.Raw{}
	for i, s := range r.slots {
		token := args[i]
		switch s.kind {
		case slotKeyword:
			if !strings.EqualFold(token, s.word) {
				return nil, NewParseError(ErrorKindKeyword,
					fmt.Sprintf("expected %q but found %q", s.word, token)).
					WithPosition(i, len(args)).
					WithToken(token).
					WithSuggestion("usage: " + r.Usage())
			}
		case slotField:
			s.bind(raw, token)
		}
	}
	return raw, nil
}

// ParseBegin parses the tokens that follow the "begin" command word.
func ParseBegin(args []string) (*job.Raw, error) {
	return BeginRule.Match(args)
}

// ParseEvery parses the tokens that follow the "every" command word.
func ParseEvery(args []string) (*job.Raw, error) {
	return EveryRule.Match(args)
}

// Parse parses a complete phrase, dispatching on its leading command word.
func Parse(tokens []string) (*job.Raw, error) {
	if len(tokens) == 0 {
		return nil, unknownCommand("")
	}

	for _, rule := range Rules {
		if strings.EqualFold(tokens[0], rule.Command) {
			return rule.Match(tokens[1:])
		}
	}
	return nil, unknownCommand(tokens[0])
}

func unknownCommand(token string) *ParseError {
	msg := "empty command"
	if token != "" {
		msg = fmt.Sprintf("unknown command %q", token)
	}
	e := NewParseError(ErrorKindCommand, msg).WithToken(token)
	if token != "" {
		e.WithPosition(0, 1)
	}
	for _, rule := range Rules {
		e.WithSuggestion(rule.Usage())
	}
	return e
}

// Canonical renders spec as the equivalent begin command, one token per element.
// The API key is never included.
func Canonical(spec job.Spec) []string {
	tokens := []string{
		KeywordBegin,
		strings.ToLower(string(spec.Method)),
		spec.URL,
		KeywordEvery, fmt.Sprint(spec.IntervalCount), pluralize(spec.Interval, spec.IntervalCount),
		KeywordFor, fmt.Sprint(spec.DurationCount), pluralize(spec.Duration, spec.DurationCount),
	}
	if spec.Body != nil {
		tokens = append(tokens, "--body", *spec.Body)
	}
	if spec.ContentType != "" && spec.ContentType != job.MediaTypeJSON {
		tokens = append(tokens, "--contentType", spec.ContentType)
	}
	return tokens
}

func pluralize(u job.Unit, n int) string {
	if n == 1 {
		return string(u)
	}
	return string(u) + "s"
}
