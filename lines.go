package wiki2json

import (
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
)

var errLinesDone = errors.New("no more lines wanted")

// CheckLines copies every line of r that holds a valid JSON value to
// valid and every other line to invalid.
func CheckLines(r io.Reader, valid, invalid io.Writer) (n, bad int, err error) {
	err = ReadLines(r, func(line string) error {
		n++
		w := valid
		if !gjson.Valid(line) {
			bad++
			w = invalid
		}
		_, err := io.WriteString(w, line)
		return err
	})
	return n, bad, err
}

// A Part is one output of Split, filled until the total number of
// bytes read reaches Limit.
type Part struct {
	Limit int64
	Name  string
	W     io.Writer
}

// Split writes the lines of r to parts, smallest Limit first.  A
// line goes to the first part whose Limit is at least the number of
// bytes read so far, including the line itself.  Parts that are
// passed over entirely get nothing.  Splitting stops once the last
// part is full.
//
// done, if not nil, is called once for every part when nothing more
// will be written to it, with the number of bytes it received.
func Split(r io.Reader, parts []Part, done func(p Part, written int64)) error {
	parts = append([]Part(nil), parts...)
	sort.SliceStable(parts, func(i, j int) bool {
		return parts[i].Limit < parts[j].Limit
	})
	if done == nil {
		done = func(Part, int64) {}
	}

	var size, written int64
	current := 0
	err := ReadLines(r, func(line string) error {
		size += int64(len(line))
		for current < len(parts) && parts[current].Limit < size {
			done(parts[current], written)
			current++
			written = 0
		}
		if current == len(parts) {
			return errLinesDone
		}
		n, err := io.WriteString(parts[current].W, line)
		written += int64(n)
		return err
	})
	for ; current < len(parts); current++ {
		done(parts[current], written)
		written = 0
	}
	if errors.Is(err, errLinesDone) {
		err = nil
	}
	return err
}

// CopyHead copies whole lines from r to w as long as the total stays
// within max bytes.
func CopyHead(w io.Writer, r io.Reader, max int64) (int64, error) {
	var size int64
	err := ReadLines(r, func(line string) error {
		if size+int64(len(line)) > max {
			return errLinesDone
		}
		n, err := io.WriteString(w, line)
		size += int64(n)
		return err
	})
	if errors.Is(err, errLinesDone) {
		err = nil
	}
	return size, err
}

// ParseSize parses a byte count like "100M".  A bare K, M, G or T
// suffix counts in powers of 1024; spelled out units go through
// humanize.ParseBytes, so "1GB" is 10^9 and "1GiB" is 2^30.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n := len(s); n > 0 && strings.IndexByte("kKmMgGtT", s[n-1]) >= 0 {
		s += "iB"
	}
	v, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}
