// Package errors provides error handling for cronstorm.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "run `cronstorm auth` first")
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	FlattenHints   = crdb.FlattenHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenDetails = crdb.FlattenDetails
)

// Error taxonomy for the command pipeline.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Mark() or errors.Wrap() to add context while preserving the type.
var (
	// ErrGrammar indicates the input matches neither accepted command shape
	ErrGrammar = New("command does not match grammar")

	// ErrValidation indicates a field failed coercion or enumeration checks
	ErrValidation = New("validation failed")

	// ErrCredentialMissing indicates no API key is stored
	ErrCredentialMissing = New("no API key stored")

	// ErrRemote indicates the remote scheduler rejected the request or could not be reached
	ErrRemote = New("remote scheduler failure")
)

// IsGrammarError checks if an error is or wraps ErrGrammar
func IsGrammarError(err error) bool {
	return err != nil && Is(err, ErrGrammar)
}

// IsValidationError checks if an error is or wraps ErrValidation
func IsValidationError(err error) bool {
	return err != nil && Is(err, ErrValidation)
}

// IsCredentialMissingError checks if an error is or wraps ErrCredentialMissing
func IsCredentialMissingError(err error) bool {
	return err != nil && Is(err, ErrCredentialMissing)
}

// IsRemoteError checks if an error is or wraps ErrRemote
func IsRemoteError(err error) bool {
	return err != nil && Is(err, ErrRemote)
}
