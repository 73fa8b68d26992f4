package grammar

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/cronstorm/errors"
)

// ErrorContext indicates the environment where parse errors will be displayed
type ErrorContext string

const (
	// ErrorContextTerminal renders with ANSI colors
	ErrorContextTerminal ErrorContext = "terminal"
	// ErrorContextPlain renders without ANSI codes (logs, JSON output)
	ErrorContextPlain ErrorContext = "plain"
)

// ErrorKind categorizes parse errors for programmatic handling
type ErrorKind string

const (
	ErrorKindArity   ErrorKind = "arity"   // Wrong number of tokens
	ErrorKindKeyword ErrorKind = "keyword" // Expected keyword missing or misplaced
	ErrorKindCommand ErrorKind = "command" // Leading word is not a known command
)

// ParseError is a GrammarError: the tokens match neither accepted command shape.
type ParseError struct {
	Kind        ErrorKind
	Message     string
	Position    int    // Token position where error occurred, -1 when not tied to a token
	TokenCount  int    // Total tokens being parsed
	Token       string // Offending token, if any
	Suggestions []string
}

// Error implements error interface with the plain rendering
func (e *ParseError) Error() string {
	return e.FormatError(ErrorContextPlain)
}

// Is makes every ParseError match errors.ErrGrammar
func (e *ParseError) Is(target error) bool {
	return target == errors.ErrGrammar
}

// FormatError generates context-appropriate error message
func (e *ParseError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextPlain {
		return e.formatPlainError()
	}
	return e.formatTerminalError()
}

// formatPlainError creates concise error for logs
func (e *ParseError) formatPlainError() string {
	msg := e.Message
	if e.Position >= 0 && e.TokenCount > 0 {
		msg += fmt.Sprintf(" (at position %d/%d)", e.Position+1, e.TokenCount)
	}
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(". Suggestions: %s", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// formatTerminalError creates rich colored error for terminal
func (e *ParseError) formatTerminalError() string {
	var b strings.Builder
	b.WriteString(pterm.Red(e.Message))

	if e.Position >= 0 && e.TokenCount > 0 {
		b.WriteString(fmt.Sprintf("\n\n%s", pterm.LightCyan("Context:")))
		b.WriteString(fmt.Sprintf("\n  %s %d/%d", pterm.Yellow("Position:"), e.Position+1, e.TokenCount))
		if e.Token != "" {
			b.WriteString(fmt.Sprintf("\n  %s '%s'", pterm.Yellow("Token:"), e.Token))
		}
	}

	if len(e.Suggestions) > 0 {
		b.WriteString(fmt.Sprintf("\n\n%s", pterm.Green("Suggestions:")))
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// NewParseError creates a new ParseError with the given kind and message
func NewParseError(kind ErrorKind, message string) *ParseError {
	return &ParseError{
		Kind:     kind,
		Message:  message,
		Position: -1,
	}
}

// WithPosition sets the token position where the error occurred
func (e *ParseError) WithPosition(pos int, total int) *ParseError {
	e.Position = pos
	e.TokenCount = total
	return e
}

// WithToken sets the token that caused the error
func (e *ParseError) WithToken(token string) *ParseError {
	e.Token = token
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *ParseError) WithSuggestion(suggestion string) *ParseError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}
