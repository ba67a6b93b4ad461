package wiki2json

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// A ValueKind is the JSON type an element's text is written as.
type ValueKind int

const (
	StringKind ValueKind = iota
	IntegerKind
	TimestampKind
	BooleanKind
)

func (k ValueKind) String() string {
	switch k {
	case StringKind:
		return "string"
	case IntegerKind:
		return "integer"
	case TimestampKind:
		return "timestamp"
	case BooleanKind:
		return "boolean"
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// KindOf reports how the text of a one-line element with the given
// name is written.  Empty elements are always BooleanKind and don't
// go through here.
func KindOf(tag string) ValueKind {
	switch {
	case tag == "ns", strings.HasSuffix(tag, "id"):
		return IntegerKind
	case tag == "timestamp":
		return TimestampKind
	}
	return StringKind
}

const timestampLayout = "2006-01-02T15:04:05Z"

var timestampRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)

// A TimestampFormatError is returned for timestamp text that isn't
// of the form YYYY-MM-DDTHH:MM:SSZ.
type TimestampFormatError struct {
	Value string
	Err   error
}

func (e *TimestampFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bad timestamp %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("bad timestamp %q", e.Value)
}

func (e *TimestampFormatError) Unwrap() error { return e.Err }

// ParseTimestamp converts a dump timestamp (always UTC) to seconds
// since the epoch.
func ParseTimestamp(s string) (int64, error) {
	if !timestampRE.MatchString(s) {
		return 0, &TimestampFormatError{Value: s}
	}
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return 0, &TimestampFormatError{Value: s, Err: err}
	}
	return t.Unix(), nil
}

// A ValueError is returned when an integer-typed element holds
// something that isn't an integer.
type ValueError struct {
	Tag   string
	Value string
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("bad <%s> value %q: %v", e.Tag, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }

func parseInteger(tag, s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, &ValueError{Tag: tag, Value: s, Err: err}
	}
	return n, nil
}
