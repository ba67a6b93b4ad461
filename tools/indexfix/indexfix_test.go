package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dustin/go-wiki2json"
)

const wrappedIndex = `2147418907:10:A
2147418907:11:B
65536:12:C
not a record
131072:13:D
`

func TestFixIndex(t *testing.T) {
	buf := &bytes.Buffer{}
	err := fixIndex(buf, strings.NewReader(wrappedIndex), false)
	if !errors.Is(err, wiki2json.ErrBadIndexRecord) {
		t.Fatalf("Expected a bad record error, got %v", err)
	}
	exp := "2147418907:10:A\n2147418907:11:B\n4295032832:12:C\n"
	if buf.String() != exp {
		t.Fatalf("Expected %q before the error, got %q", exp, buf.String())
	}
}

func TestFixIndexSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	good := strings.Join(strings.Split(wrappedIndex, "\n")[:3], "\n") + "\n"
	if err := fixIndex(buf, strings.NewReader(good), true); err != nil {
		t.Fatalf("Error summarizing: %v", err)
	}
	exp := "2147418907:2\n4295032832:1\n"
	if buf.String() != exp {
		t.Fatalf("Expected %q, got %q", exp, buf.String())
	}
}
