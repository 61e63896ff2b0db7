// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEntry indicates a uniqueness violation.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrNoTransactions indicates an analysis was requested over an empty batch.
	ErrNoTransactions = errors.New("no transactions to analyze")

	// ErrMissingConfig indicates required configuration is absent.
	ErrMissingConfig = errors.New("missing configuration")
	// ErrInvalidConfig indicates configuration that could not be understood.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// RuleLoadError reports a rule that failed to compile or parse. Rule loading
// is fail-fast: one bad rule aborts the whole load before any transaction is
// processed.
type RuleLoadError struct {
	Err     error
	Pattern string
	Line    int
}

func (e *RuleLoadError) Error() string {
	return fmt.Sprintf("rule at line %d (%q): %v", e.Line, e.Pattern, e.Err)
}

func (e *RuleLoadError) Unwrap() error {
	return e.Err
}

// NewRuleLoadError creates a load error identifying the offending rule.
func NewRuleLoadError(line int, pattern string, err error) error {
	return &RuleLoadError{Line: line, Pattern: pattern, Err: err}
}

// InvariantError reports an internal contract breach, such as a merchant
// aggregate with zero transactions. These are defects, never skipped.
type InvariantError struct {
	Invariant string
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated (%s): %s", e.Invariant, e.Detail)
}

// NewInvariantError creates an invariant violation error.
func NewInvariantError(invariant, detail string) error {
	return &InvariantError{Invariant: invariant, Detail: detail}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
