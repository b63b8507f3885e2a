// Package errors provides standardized error types and helpers for the tapeconv codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the validation and conversion failure classes
var (
	// ErrBadInputExtension indicates an input path without the recognized suffix
	ErrBadInputExtension = errors.New("bad input extension")
	// ErrUnknownModelTag indicates a header that names neither tape model
	ErrUnknownModelTag = errors.New("unknown model tag")
	// ErrMalformedTransition indicates a transition line that does not parse
	ErrMalformedTransition = errors.New("malformed transition")
	// ErrUnsupportedDirection indicates a direction outside {left, right}
	ErrUnsupportedDirection = errors.New("unsupported direction")
	// ErrNonDeterministic indicates two transitions for one (state, symbol) pair
	ErrNonDeterministic = errors.New("non-deterministic table")
	// ErrAlphabetOverflow indicates the pair-symbol pool cannot cover the alphabet
	ErrAlphabetOverflow = errors.New("alphabet overflow")
)

// ExtensionError represents an input path that lacks the recognized suffix
type ExtensionError struct {
	Path string // Path that failed the check
	Want string // Required suffix (e.g., ".in")
	Err  error  // Underlying error, if any
}

func (e *ExtensionError) Error() string {
	return fmt.Sprintf("input path %q must end in %q", e.Path, e.Want)
}

func (e *ExtensionError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrBadInputExtension
}

// ModelTagError represents a header line that names neither tape model
type ModelTagError struct {
	Header string // Header text as read from the file
	Err    error  // Underlying error, if any
}

func (e *ModelTagError) Error() string {
	if e.Header == "" {
		return "missing model tag header"
	}
	return fmt.Sprintf("unknown model tag %q (want \";I\" or \";S\")", e.Header)
}

func (e *ModelTagError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnknownModelTag
}

// TransitionError represents a transition line that fails to parse
type TransitionError struct {
	Line    int    // 1-based line number in the input, 0 if unknown
	Text    string // Offending line text
	Message string // What was wrong with it
	Err     error  // Underlying error, if any
}

func (e *TransitionError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed transition at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("malformed transition: %s", e.Message)
}

func (e *TransitionError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrMalformedTransition
}

// DirectionError represents a direction value outside the two-variant enum
type DirectionError struct {
	Token string // Token or value that was rejected
	Err   error  // Underlying error, if any
}

func (e *DirectionError) Error() string {
	return fmt.Sprintf("unsupported direction %q (want \"l\" or \"r\")", e.Token)
}

func (e *DirectionError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupportedDirection
}

// DeterminismError represents two transitions sharing a (state, symbol) pair
type DeterminismError struct {
	State  int    // State of the duplicated pair
	Symbol string // Symbol of the duplicated pair
	Err    error  // Underlying error, if any
}

func (e *DeterminismError) Error() string {
	return fmt.Sprintf("duplicate transition for state %d on symbol %q", e.State, e.Symbol)
}

func (e *DeterminismError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNonDeterministic
}

// AlphabetError represents a table whose alphabet exceeds the pair-symbol pool
type AlphabetError struct {
	Need int   // Pair codes required
	Have int   // Pool characters available
	Err  error // Underlying error, if any
}

func (e *AlphabetError) Error() string {
	return fmt.Sprintf("alphabet too large to encode symbol pairs: need %d codes, have %d", e.Need, e.Have)
}

func (e *AlphabetError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrAlphabetOverflow
}

// Helper functions for creating common errors

// NewExtension creates an ExtensionError
func NewExtension(path, want string) *ExtensionError {
	return &ExtensionError{
		Path: path,
		Want: want,
	}
}

// NewModelTag creates a ModelTagError
func NewModelTag(header string) *ModelTagError {
	return &ModelTagError{
		Header: header,
	}
}

// NewTransition creates a TransitionError
func NewTransition(line int, text, message string) *TransitionError {
	return &TransitionError{
		Line:    line,
		Text:    text,
		Message: message,
	}
}

// NewDirection creates a DirectionError
func NewDirection(token string) *DirectionError {
	return &DirectionError{
		Token: token,
	}
}

// NewDeterminism creates a DeterminismError
func NewDeterminism(state int, symbol string) *DeterminismError {
	return &DeterminismError{
		State:  state,
		Symbol: symbol,
	}
}

// NewAlphabet creates an AlphabetError
func NewAlphabet(need, have int) *AlphabetError {
	return &AlphabetError{
		Need: need,
		Have: have,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
