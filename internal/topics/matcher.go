package topics

import (
	"regexp"
	"strings"
)

// match is the outcome of a recognizer accepting a line.
type match struct {
	Level int
	Text  string
	// Deferred marks a bare section header: the header itself carries
	// no topic text, the next plain line becomes the topic.
	Deferred bool
}

// matcher recognizes one syllabus line format. Matchers are tried in
// priority order; the first to accept a line decides its topic.
type matcher interface {
	Try(line string, prev *accepted) (match, bool)
}

var matchers = []matcher{
	moduleMatcher{},
	numberedMatcher{},
	romanMatcher{},
	bulletMatcher{},
	indentMatcher{},
}

var (
	moduleRe   = regexp.MustCompile(`^(?i)(module|unit|chapter|part|section)\s+([IVXLCDM]+|\d+)\b\s*[:.\-]?\s*(.*)$`)
	hoursRe    = regexp.MustCompile(`\[\d+\s*[Ll]\]`)
	numberedRe = regexp.MustCompile(`^(\d+(?:\.\d+)+\.?|\d+[.)])\s+(.*)$`)
	romanRe    = regexp.MustCompile(`^([IVXLCDM]+)[.)]\s*(.*)$`)
	bulletRe   = regexp.MustCompile(`^[-*•]\s+(.*)$`)
)

// moduleMatcher recognizes "Module I", "Unit 2: Basics" style headers.
type moduleMatcher struct{}

func (moduleMatcher) Try(line string, _ *accepted) (match, bool) {
	m := moduleRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return match{}, false
	}
	// Drop contact-hour tags like "[10L]" that syllabi attach to headers.
	title := strings.TrimSpace(hoursRe.ReplaceAllString(m[3], ""))
	title = strings.Trim(title, ":- ")
	if title == "" {
		return match{Deferred: true}, true
	}
	return match{Level: 0, Text: title}, true
}

// numberedMatcher recognizes "1. Arrays" and "1.2 Sorting" style lines.
// Nesting depth follows the number of dotted components.
type numberedMatcher struct{}

func (numberedMatcher) Try(line string, _ *accepted) (match, bool) {
	m := numberedRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return match{}, false
	}
	num := strings.TrimRight(m[1], ".)")
	level := strings.Count(num, ".")
	return match{Level: level, Text: strings.TrimSpace(m[2])}, true
}

// romanMatcher recognizes "IV. Trees" style items.
type romanMatcher struct{}

func (romanMatcher) Try(line string, _ *accepted) (match, bool) {
	m := romanRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return match{}, false
	}
	return match{Level: 0, Text: strings.TrimSpace(m[2])}, true
}

// bulletMatcher recognizes bullet lines; depth comes from the bullet's
// leading indentation.
type bulletMatcher struct{}

func (bulletMatcher) Try(line string, _ *accepted) (match, bool) {
	m := bulletRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return match{}, false
	}
	return match{Level: indentWidth(line) / indentUnit, Text: strings.TrimSpace(m[1])}, true
}

// indentMatcher treats an unmarked line indented past the previous
// topic as a subtopic of it.
type indentMatcher struct{}

func (indentMatcher) Try(line string, prev *accepted) (match, bool) {
	if prev == nil {
		return match{}, false
	}
	if indentWidth(line) <= prev.indent {
		return match{}, false
	}
	return match{Level: prev.level + 1, Text: strings.TrimSpace(line)}, true
}
