// Package identity extracts a student's document number, full name
// and academic program from a free-form WhatsApp message.
//
// Parsing is deliberately lenient. Students answer the data request in
// every imaginable shape, so the parser prefers a best-effort split
// that the receiving department can correct over rejecting the
// message and asking again.
package identity

import (
	"strings"

	"github.com/dcamposl/uniwabot-go/internal/department"
)

// Confidence grades how the identity data was extracted.
type Confidence int

const (
	// ConfidenceNone means parsing failed.
	ConfidenceNone Confidence = iota

	// ConfidenceLow marks the last-resort word split.
	ConfidenceLow

	// ConfidenceMedium marks a word split guided by a program mention
	// or a delimiter split.
	ConfidenceMedium

	// ConfidenceHigh marks a clean line-per-field message.
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// Student is the parsed identity data.
type Student struct {
	Document   string
	FullName   string
	Program    string // normalized against the program catalog
	Confidence Confidence
}

// Parse extracts identity data from a message. The cascade tries, in
// order: one field per line, a delimiter split, a space split guided
// by program stems, and finally a blind word split. An explicit
// delimiter outranks the space heuristic because a comma between
// fields is a stronger signal than word count. ok is false only when
// the message has too little content to attempt any split.
func Parse(message string) (Student, bool) {
	text := strings.TrimSpace(message)

	if s, ok := parseLines(text); ok {
		return normalize(s), true
	}
	if s, ok := parseDelimited(text); ok {
		return normalize(s), true
	}
	if s, ok := parseWords(text); ok {
		return normalize(s), true
	}
	if s, ok := parseLastResort(text); ok {
		return normalize(s), true
	}
	return Student{}, false
}

// parseLines handles the suggested format: document, name and program
// on separate lines.
func parseLines(text string) (Student, bool) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) < 3 {
		return Student{}, false
	}
	return Student{
		Document:   lines[0],
		FullName:   lines[1],
		Program:    lines[2],
		Confidence: ConfidenceHigh,
	}, true
}

// parseWords splits a single line of at least four words, scanning for
// a program stem to decide where the name ends. Without a stem the
// last two words are assumed to be the program.
func parseWords(text string) (Student, bool) {
	words := strings.Fields(text)
	if len(words) < 4 {
		return Student{}, false
	}

	programStart := len(words) - 2
	confidence := ConfidenceLow
	for i := 1; i < len(words)-1; i++ {
		if department.MentionsProgram(words[i]) {
			programStart = i
			confidence = ConfidenceMedium
			break
		}
	}

	name := strings.Join(words[1:programStart], " ")
	program := strings.Join(words[programStart:], " ")
	if name == "" || program == "" {
		return Student{}, false
	}
	return Student{
		Document:   words[0],
		FullName:   name,
		Program:    program,
		Confidence: confidence,
	}, true
}

// parseDelimited splits on the first delimiter present that yields at
// least three fields.
func parseDelimited(text string) (Student, bool) {
	for _, sep := range []string{",", "|", ";"} {
		if !strings.Contains(text, sep) {
			continue
		}
		var parts []string
		for _, p := range strings.Split(text, sep) {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) >= 3 {
			return Student{
				Document:   parts[0],
				FullName:   parts[1],
				Program:    parts[2],
				Confidence: ConfidenceMedium,
			}, true
		}
	}
	return Student{}, false
}

// parseLastResort blindly splits three or more words: first is the
// document, last is the program, the middle is the name.
func parseLastResort(text string) (Student, bool) {
	words := strings.Fields(text)
	if len(words) < 3 {
		return Student{}, false
	}
	return Student{
		Document:   words[0],
		FullName:   strings.Join(words[1:len(words)-1], " "),
		Program:    words[len(words)-1],
		Confidence: ConfidenceLow,
	}, true
}

func normalize(s Student) Student {
	s.Program = department.NormalizeProgram(s.Program)
	return s
}
