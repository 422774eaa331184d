package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Syntax is one accepted surface form of a time expression.
type Syntax struct {
	// Name is a short description such as "YYYY-MM-DD HH:MM:SS".
	Name string
	// Example is a sample input in this syntax.
	Example string
	// HasSeconds is false when the seconds field is filled from a default.
	HasSeconds bool

	full   *regexp.Regexp
	prefix *regexp.Regexp
}

// Whitespace includes the ideographic space so CJK-typed files split like ASCII ones.
const ws = `[\s\x{3000}]`

const (
	clockHMS = `(?P<h>\d{1,2}):(?P<m>\d{2}):(?P<s>\d{2})`
	clockHM  = `(?P<h>\d{1,2}):(?P<m>\d{2})`
	dashDate = `(?P<y>\d{4})-(?P<mo>\d{1,2})-(?P<d>\d{1,2})` + ws + `+`
	cjkDate  = `(?P<y>\d{4})年(?P<mo>\d{1,2})月(?P<d>\d{1,2})日` + ws + `*`
	unitHMS  = `(?P<h>\d{1,2})点(?P<m>\d{1,2})分(?P<s>\d{1,2})秒`
	unitHM   = `(?P<h>\d{1,2})点(?P<m>\d{1,2})分`
)

func newSyntax(name, example string, hasSeconds bool, pattern string) *Syntax {
	return &Syntax{
		Name:       name,
		Example:    example,
		HasSeconds: hasSeconds,
		full:       regexp.MustCompile(`^` + pattern + `$`),
		prefix:     regexp.MustCompile(`^(?P<expr>` + pattern + `)` + ws + `*(?P<label>.*)$`),
	}
}

var (
	SyntaxClock        = newSyntax("HH:MM:SS", "12:30:45", true, clockHMS)
	SyntaxClockShort   = newSyntax("HH:MM", "12:30", false, clockHM)
	SyntaxDate         = newSyntax("YYYY-MM-DD HH:MM:SS", "2025-11-13 00:26:39", true, dashDate+clockHMS)
	SyntaxDateShort    = newSyntax("YYYY-MM-DD HH:MM", "2025-11-13 00:26", false, dashDate+clockHM)
	SyntaxCJKDate      = newSyntax("YYYY年MM月DD日HH:MM:SS", "2025年11月13日00:26:50", true, cjkDate+clockHMS)
	SyntaxCJKDateShort = newSyntax("YYYY年MM月DD日HH:MM", "2025年11月13日00:26", false, cjkDate+clockHM)
	SyntaxUnits        = newSyntax("HH点MM分SS秒", "00点34分20秒", true, unitHMS)
	SyntaxUnitsShort   = newSyntax("HH点MM分", "00点34分", false, unitHM)
)

// Syntaxes is the order ParseFlexible tries. The patterns are anchored at both
// ends so at most one of them matches any input.
var Syntaxes = []*Syntax{
	SyntaxClock,
	SyntaxClockShort,
	SyntaxDate,
	SyntaxDateShort,
	SyntaxCJKDate,
	SyntaxCJKDateShort,
	SyntaxUnits,
	SyntaxUnitsShort,
}

// PrefixSyntaxes is the order a line is matched against when the expression is
// followed by free text. Forms carrying seconds come before their short forms
// so "00点34分20秒" is not cut at "00点34分".
var PrefixSyntaxes = []*Syntax{
	SyntaxDate,
	SyntaxDateShort,
	SyntaxCJKDate,
	SyntaxCJKDateShort,
	SyntaxUnits,
	SyntaxUnitsShort,
	SyntaxClock,
	SyntaxClockShort,
}

// MatchPrefix matches normalized text against the syntax anchored at the
// start. It returns the expression and the remaining label with leading
// whitespace consumed.
func (s *Syntax) MatchPrefix(text string) (expr, label string, ok bool) {
	m := s.prefix.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[s.prefix.SubexpIndex("expr")], m[s.prefix.SubexpIndex("label")], true
}

// parse extracts the time of day from a normalized string that fully matches.
func (s *Syntax) parse(raw, text string, defaultSeconds int) (int, bool, error) {
	m := s.full.FindStringSubmatch(text)
	if m == nil {
		return 0, false, nil
	}

	group := func(name string) int {
		i := s.full.SubexpIndex(name)
		if i < 0 {
			return 0
		}
		v, _ := strconv.Atoi(m[i])
		return v
	}

	// Date tokens are matched as integers and intentionally unused.
	hour, minute := group("h"), group("m")
	second := defaultSeconds
	if s.HasSeconds {
		second = group("s")
	}
	if err := checkRange(raw, hour, minute, second, s.HasSeconds); err != nil {
		return 0, true, err
	}

	return hour*3600 + minute*60 + second, true, nil
}

func normalizeRune(r rune) rune {
	switch {
	case r >= '０' && r <= '９':
		return '0' + (r - '０')
	case r == '：':
		return ':'
	case r == '－', r == '—':
		return '-'
	}
	return r
}

// Normalize maps full-width digits, the full-width colon and the full-width
// hyphen and em dash to ASCII. The mapping is rune for rune.
func Normalize(text string) string {
	out, _, err := transform.String(runes.Map(normalizeRune), text)
	if err != nil {
		return text
	}
	return out
}

// ParseFlexible parses any of the Syntaxes into seconds since midnight.
// Forms without seconds use defaultSeconds as the seconds value.
func ParseFlexible(text string, defaultSeconds int) (int, error) {
	normalized := Normalize(strings.TrimSpace(text))

	for _, s := range Syntaxes {
		secs, matched, err := s.parse(text, normalized, defaultSeconds)
		if !matched {
			continue
		}
		if err != nil {
			return 0, err
		}
		return secs, nil
	}

	return 0, &FormatError{
		Input:     text,
		Supported: SupportedFormats(defaultSeconds),
		err:       ErrUnsupportedFormat,
	}
}

// SupportedFormats describes every flexible syntax for user feedback.
func SupportedFormats(defaultSeconds int) []string {
	out := make([]string, 0, len(Syntaxes)+1)
	for _, s := range Syntaxes {
		if s.HasSeconds {
			out = append(out, fmt.Sprintf("%s (e.g. %s)", s.Name, s.Example))
		} else {
			out = append(out, fmt.Sprintf("%s (e.g. %s, seconds default to %d)", s.Name, s.Example, defaultSeconds))
		}
	}
	out = append(out, "full-width digits and punctuation (：, －) are accepted")
	return out
}
