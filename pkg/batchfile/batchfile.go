// Package batchfile reads timestamp files: one time expression per line,
// optionally followed by a free-text label.
package batchfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/user/video-clipper-cli/pkg/timeutil"
)

// ErrUnrecognizedLine marks a non-comment line with no recognizable time prefix.
var ErrUnrecognizedLine = errors.New("line does not start with a recognized time")

// Entry is one timestamp line.
type Entry struct {
	Expression string
	Label      string
	Line       int
}

// Line is a physical line that produced no Entry.
type Line struct {
	Number int
	Text   string
}

// Err returns an error describing why the line was not used.
func (l Line) Err() error {
	return fmt.Errorf("line %d: %w: '%s'", l.Number, ErrUnrecognizedLine, l.Text)
}

// File is the parsed content of a timestamp file.
type File struct {
	Entries      []Entry
	Unrecognized []Line
}

// ParseLine splits a line into its time expression and label.
// ok is false for blank lines, comments and lines with no time prefix; the
// third case is distinguished by Skippable.
func ParseLine(line string) (expr, label string, ok bool) {
	line = strings.TrimSpace(line)
	if Skippable(line) {
		return "", "", false
	}

	raw := []rune(line)
	normalized := timeutil.Normalize(line)
	for _, s := range timeutil.PrefixSyntaxes {
		e, l, matched := s.MatchPrefix(normalized)
		if !matched {
			continue
		}
		// Normalization is rune for rune, so offsets carry over to the raw text.
		exprLen := len([]rune(e))
		labelLen := len([]rune(l))
		return string(raw[:exprLen]), string(raw[len(raw)-labelLen:]), true
	}
	return "", "", false
}

// Skippable reports whether a trimmed line is blank or a comment.
func Skippable(line string) bool {
	return line == "" || strings.HasPrefix(line, "#")
}

// Read parses every line of r. Lines are numbered from 1.
func Read(r io.Reader) (*File, error) {
	f := &File{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		n++
		text := scanner.Text()
		if n == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		trimmed := strings.TrimSpace(text)
		if Skippable(trimmed) {
			continue
		}

		expr, label, ok := ParseLine(trimmed)
		if !ok {
			f.Unrecognized = append(f.Unrecognized, Line{Number: n, Text: trimmed})
			continue
		}
		f.Entries = append(f.Entries, Entry{Expression: expr, Label: label, Line: n})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading timestamps: %w", err)
	}

	return f, nil
}
