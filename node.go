package wiki2json

import (
	"regexp"
	"strings"
)

type frameKind uint8

const (
	// Opened, nothing seen yet.
	pendingFrame frameKind = iota
	// At least one child key has been written.
	objectFrame
	// Non-blank text has been appended.
	textFrame
)

// A frame is one open element: either a JSON object collecting child
// keys or a string collecting text across lines.
type frame struct {
	kind frameKind
	text strings.Builder
	// Matches the line closing this element.  Nil for the page root.
	end *regexp.Regexp
}

// addTag writes the key for a child element, preceded by the opening
// brace if this is the first one.
func (f *frame) addTag(out *output, name string) {
	if f.kind == objectFrame {
		out.writeByte(',')
	} else {
		out.writeByte('{')
		f.kind = objectFrame
		f.text.Reset()
	}
	out.writeQuoted(name)
	out.writeByte(':')
}

// The add methods write a complete child: key and value.  Values
// are checked before the key goes out so a bad one leaves nothing
// behind.

func (f *frame) addString(out *output, name, s string) {
	f.addTag(out, name)
	out.writeText(s)
}

func (f *frame) addInteger(out *output, name, s string) error {
	n, err := parseInteger(name, s)
	if err != nil {
		return err
	}
	f.addTag(out, name)
	out.writeInt(n)
	return nil
}

func (f *frame) addBool(out *output, name string, b bool) {
	f.addTag(out, name)
	out.writeBool(b)
}

func (f *frame) addTimestamp(out *output, name, iso string) error {
	ts, err := ParseTimestamp(iso)
	if err != nil {
		return err
	}
	f.addTag(out, name)
	out.writeInt(ts)
	return nil
}

// appendText keeps a fragment, line terminator included, until the
// element closes.  Objects and the page itself don't hold text, so
// it's dropped there.
func (f *frame) appendText(s string) {
	if f.kind == objectFrame || f.end == nil {
		return
	}
	f.text.WriteString(s)
	if f.kind == pendingFrame && strings.TrimSpace(s) != "" {
		f.kind = textFrame
	}
}

// close writes whatever finishes this element: the closing brace of
// an object, or the joined text of anything else.
func (f *frame) close(out *output) {
	if f.kind == objectFrame {
		out.writeByte('}')
		return
	}
	out.writeText(joinText(f.text.String()))
	f.text.Reset()
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ")

// joinText drops the terminator of the last line and turns the
// remaining line breaks into single spaces.
func joinText(s string) string {
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return lineBreaks.Replace(s)
}
