// Package topics extracts an ordered checklist of study topics from
// raw syllabus text.
package topics

import "strings"

// Topic is a single checklist-trackable unit of study content.
type Topic struct {
	Text       string
	Level      int
	OrderIndex int
}

// indentUnit is the number of leading columns that make up one
// nesting level for bullets and indented lines.
const indentUnit = 2

// Extract parses raw syllabus text into an ordered topic list.
// It is deterministic and never fails: text that matches no rule
// yields an empty list.
func Extract(raw string) []Topic {
	out := []Topic{}
	var prev *accepted
	pendingHeader := false

	// Form feeds arrive as page separators from the PDF source.
	raw = strings.ReplaceAll(raw, "\f", "\n")

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		matched := false
		for _, m := range matchers {
			res, ok := m.Try(line, prev)
			if !ok {
				continue
			}
			matched = true
			if res.Deferred {
				// Bare module header: the next plain line is the topic.
				pendingHeader = true
				break
			}
			pendingHeader = false
			if res.Text == "" {
				break
			}
			out = append(out, Topic{Text: res.Text, Level: res.Level, OrderIndex: len(out)})
			prev = &accepted{level: res.Level, indent: indentWidth(line)}
			break
		}
		if matched {
			continue
		}

		if pendingHeader {
			out = append(out, Topic{Text: trimmed, Level: 0, OrderIndex: len(out)})
			prev = &accepted{level: 0, indent: indentWidth(line)}
			pendingHeader = false
			continue
		}

		// Unmarked, unindented lines are prose.
	}

	return out
}

// accepted records the shape of the most recently emitted topic,
// used by the indented-continuation rule.
type accepted struct {
	level  int
	indent int
}

// indentWidth measures leading whitespace in columns.
func indentWidth(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ':
			w++
		case '\t':
			w += indentUnit
		default:
			return w
		}
	}
	return w
}
