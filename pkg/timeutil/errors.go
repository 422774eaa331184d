package timeutil

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFormat is returned when the input lacks the required HH:MM:SS structure.
	ErrInvalidFormat = errors.New("invalid time format")
	// ErrUnsupportedFormat is returned when no flexible syntax matches the input.
	ErrUnsupportedFormat = errors.New("unsupported time format")
	// ErrOutOfRange is returned when a field parses but violates its bound.
	ErrOutOfRange = errors.New("time field out of range")
)

// Field names a component of a time of day.
type Field string

const (
	FieldHour   Field = "hour"
	FieldMinute Field = "minute"
	FieldSecond Field = "second"
)

// max returns the largest valid value for the field.
func (f Field) max() int {
	if f == FieldHour {
		return 23
	}
	return 59
}

// RangeError reports a field that is outside its valid range.
type RangeError struct {
	Field Field
	Value int
	Input string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between 0 and %d, got %d in '%s'", e.Field, e.Field.max(), e.Value, e.Input)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// FormatError reports input that matches none of the accepted syntaxes.
// Supported lists human readable descriptions of what would have been accepted.
type FormatError struct {
	Input     string
	Supported []string
	err       error
}

func (e *FormatError) Error() string {
	if len(e.Supported) == 0 {
		return fmt.Sprintf("%v: '%s' (expected HH:MM:SS)", e.err, e.Input)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%v: '%s'\nsupported formats:", e.err, e.Input)
	for _, s := range e.Supported {
		b.WriteString("\n  - ")
		b.WriteString(s)
	}
	return b.String()
}

func (e *FormatError) Unwrap() error {
	return e.err
}

// checkRange validates hour, minute and second (when hasSeconds) in that order.
func checkRange(input string, hour, minute, second int, hasSeconds bool) error {
	if hour < 0 || hour > 23 {
		return &RangeError{Field: FieldHour, Value: hour, Input: input}
	}
	if minute < 0 || minute > 59 {
		return &RangeError{Field: FieldMinute, Value: minute, Input: input}
	}
	if hasSeconds && (second < 0 || second > 59) {
		return &RangeError{Field: FieldSecond, Value: second, Input: input}
	}
	return nil
}
