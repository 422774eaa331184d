package timeutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrict_KnownValues(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"10:00:00", 36000},
		{"23:59:59", 86399},
		{"00:00:00", 0},
		{"01:30:45", 5445},
		{"1:30:45", 5445},
		{"  12:00:00  ", 43200},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStrict(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseStrict_Rejects(t *testing.T) {
	tests := []struct {
		input string
		want  error
		field Field
	}{
		{"25:00:00", ErrOutOfRange, FieldHour},
		{"12:60:00", ErrOutOfRange, FieldMinute},
		{"12:30:60", ErrOutOfRange, FieldSecond},
		{"12:30", ErrInvalidFormat, ""},
		{"invalid", ErrInvalidFormat, ""},
		{"12:30:45 extra", ErrInvalidFormat, ""},
		{"12:3:45", ErrInvalidFormat, ""},
		{"１２:30:45", ErrInvalidFormat, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseStrict(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			if tt.field != "" {
				var rangeErr *RangeError
				require.True(t, errors.As(err, &rangeErr))
				assert.Equal(t, tt.field, rangeErr.Field)
			}
		})
	}
}

func TestFormatParseStrictRoundTrip(t *testing.T) {
	for s := 0; s < SecondsPerDay; s++ {
		got, err := ParseStrict(Format(s))
		if err != nil || got != s {
			t.Fatalf("round trip of %d failed: got %d, err %v", s, got, err)
		}
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "00:00:00", Format(0))
	assert.Equal(t, "10:05:30", Format(36330))
	assert.Equal(t, "24:00:00", Format(86400))
	assert.Equal(t, "27:46:40", Format(100000))
	assert.Equal(t, "00:05:40", FormatDuration(340.9))
}

func TestParseFlexible_Syntaxes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"clock", "12:30:45", 45045},
		{"clock one digit hour", "9:05:01", 32701},
		{"clock short", "12:37", 12*3600 + 37*60 + 40},
		{"date", "2025-11-13 00:26:39", 26*60 + 39},
		{"date single digit month and day", "2025-1-3 7:26:39", 7*3600 + 26*60 + 39},
		{"date short", "2025-11-13 00:26", 26*60 + 40},
		{"cjk date", "2025年11月13日00:26:50", 26*60 + 50},
		{"cjk date with space", "2025年11月13日 00:26:50", 26*60 + 50},
		{"cjk date short", "2025年11月13日00:26", 26*60 + 40},
		{"units", "00点34分20秒", 34*60 + 20},
		{"units single digits", "9点5分7秒", 9*3600 + 5*60 + 7},
		{"units short", "00点34分", 34*60 + 40},
		{"full-width", "１２：３０：４５", 45045},
		{"full-width dash date", "2025－11—13 00:26:39", 26*60 + 39},
		{"surrounding whitespace", "  12:30:45\t", 45045},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlexible(tt.input, 40)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseFlexible_DefaultSecondsMatchesStrict(t *testing.T) {
	flexible, err := ParseFlexible("12:37", 40)
	require.NoError(t, err)
	strict, err := ParseStrict("12:37:40")
	require.NoError(t, err)
	assert.Equal(t, strict, flexible)
}

func TestParseFlexible_NormalizedMatchesASCII(t *testing.T) {
	ascii, err := ParseFlexible("12:30:45", 0)
	require.NoError(t, err)
	wide, err := ParseFlexible("１２：３０：４５", 0)
	require.NoError(t, err)
	assert.Equal(t, ascii, wide)
}

func TestParseFlexible_OutOfRange(t *testing.T) {
	tests := []struct {
		input string
		field Field
	}{
		{"24:00:00", FieldHour},
		{"12:61", FieldMinute},
		{"2025-11-13 10:10:99", FieldSecond},
		{"2025年11月13日25:00", FieldHour},
		{"10点70分", FieldMinute},
		{"10点10分60秒", FieldSecond},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseFlexible(tt.input, 40)
			require.ErrorIs(t, err, ErrOutOfRange)

			var rangeErr *RangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tt.field, rangeErr.Field)
			assert.Equal(t, tt.input, rangeErr.Input)
		})
	}
}

func TestParseFlexible_Unsupported(t *testing.T) {
	_, err := ParseFlexible("noon-ish", 40)
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "noon-ish", formatErr.Input)
	assert.Len(t, formatErr.Supported, len(Syntaxes)+1)
	assert.Contains(t, err.Error(), "HH:MM (e.g. 12:30, seconds default to 40)")
}

func TestParseFlexible_DateIsDiscarded(t *testing.T) {
	a, err := ParseFlexible("2025-11-13 08:00:00", 0)
	require.NoError(t, err)
	b, err := ParseFlexible("1999-01-01 08:00:00", 0)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSyntaxes_AtMostOneMatches(t *testing.T) {
	inputs := []string{
		"12:30:45", "12:30", "2025-11-13 00:26:39", "2025-11-13 00:26",
		"2025年11月13日00:26:50", "2025年11月13日00:26", "00点34分20秒", "00点34分",
	}

	for i, in := range inputs {
		var matched []string
		for _, s := range Syntaxes {
			if s.full.MatchString(in) {
				matched = append(matched, s.Name)
			}
		}
		require.Len(t, matched, 1, "input %q matched %v", in, matched)
		assert.Equal(t, Syntaxes[i].Name, matched[0])
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "2025-11-13 12:30:45", Normalize("２０２５－１１—１３ １２：３０：４５"))
	assert.Equal(t, "描述", Normalize("描述"))
	assert.Equal(t, len([]rune("１２：３０")), len([]rune(Normalize("１２：３０"))))
}
