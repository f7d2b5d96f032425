package transcript

import (
	"strings"
)

// Indent selects which body indentation marks a continuation line.
// Zoom writes a tab on some platforms and four spaces on others.
type Indent string

const (
	// IndentAuto accepts both a tab and four spaces.
	IndentAuto Indent = "auto"
	// IndentTab accepts only a leading tab.
	IndentTab Indent = "tab"
	// IndentSpaces accepts only four leading spaces.
	IndentSpaces Indent = "spaces"
)

const (
	tabIndent   = "\t"
	spaceIndent = "    "
)

// IsValid reports whether i is a known indent variant.
func (i Indent) IsValid() bool {
	switch i {
	case IndentAuto, IndentTab, IndentSpaces:
		return true
	default:
		return false
	}
}

// IsContinuation reports whether line is a message body line.
// Every other line, blank ones included, is a header.
func (i Indent) IsContinuation(line string) bool {
	switch i {
	case IndentTab:
		return strings.HasPrefix(line, tabIndent)
	case IndentSpaces:
		return strings.HasPrefix(line, spaceIndent)
	default:
		return strings.HasPrefix(line, tabIndent) || strings.HasPrefix(line, spaceIndent)
	}
}

// ExtractSpeaker returns the participant named by a header line, or "" when
// the header belongs to the moderator or names nobody.
//
// Characters are collected once the first 'm' (the end of "From") has been
// seen. As soon as the collected text ends with the moderator's name, that
// name and every "to" are cut out and the rest is the speaker, which is how
// "From Alice to John Smith:" becomes "Alice" and "From John Smith to
// Everyone:" becomes "". Headers that never reach the moderator's name are
// read structurally as "From <Name>[ to <Recipient>]:".
//
// An empty moderator matches at the first collected character, so a room
// whose moderator is unknown attributes nothing.
func ExtractSpeaker(line, moderator string) string {
	if name, ok := matchModerator(line, moderator); ok {
		return name
	}
	return senderOf(line)
}

// matchModerator runs the character scan described on ExtractSpeaker.
func matchModerator(line, moderator string) (string, bool) {
	var buf strings.Builder
	collecting := false

	for _, c := range line {
		if !collecting {
			collecting = c == 'm'
			continue
		}
		buf.WriteRune(c)
		if strings.HasSuffix(buf.String(), moderator) {
			name := strings.ReplaceAll(buf.String(), moderator, "")
			name = strings.ReplaceAll(name, "to", "")
			return strings.TrimSpace(name), true
		}
	}
	return "", false
}

// senderOf reads the sender out of "<time> From <Name>[ to <Recipient>]:".
func senderOf(line string) string {
	idx := strings.Index(line, "From ")
	if idx < 0 {
		return ""
	}
	rest := strings.TrimSpace(line[idx+len("From "):])
	rest = strings.TrimSuffix(rest, ":")
	if to := strings.LastIndex(rest, " to "); to >= 0 {
		rest = rest[:to]
	}
	return strings.TrimSpace(rest)
}

// HeaderTimestamp returns the leading token of a header line. ok is false
// when the line has fewer than two tokens, in which case the previous
// timestamp stays current.
func HeaderTimestamp(line string) (timestamp string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", false
	}
	return fields[0], true
}
