package wiki2json

import (
	"errors"
	"io"
	"strings"
	"testing"
)

const testIndex = `499:10:AccessibleComputing
499:12:Anarchism
499:13:AfghanistanHistory
499:14:AfghanistanGeography
499:15:AfghanistanPeople
499:18:AfghanistanCommunications
499:19:AfghanistanTransportations
499:20:AfghanistanMilitary
499:21:AfghanistanTransnationalIssues
499:23:AssistiveTechnology
2147418907:2638569:William Earl Brown
2147418907:2638570:Lebuhraya Persekutuan
2147418907:2638571:St Francis of Paola
2147418907:2638573:Francesco di Paula
2147418907:2638575:Arapahoe Community College
2147418907:2638583:Francesco Borgia
-2147469295:2638585:Philadelphia Bulletin
-2147469295:2638588:Zrínyi Miklós
-2147469295:2638602:Privatize
-2147469295:2638604:Island of Montréal: The City
`

const lastStream = 2147498001

func TestIndexReader(t *testing.T) {
	ir := NewIndexReader(strings.NewReader(testIndex))

	e, err := ir.Next()
	if err != nil {
		t.Fatalf("Error parsing first entry: %v", err)
	}
	if e.String() != "499:10:AccessibleComputing" {
		t.Errorf("Error stringing first entry, got %v", e)
	}

	n := 1
	for {
		var tmp IndexEntry
		tmp, err = ir.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Error reading stream:  %v", err)
		}
		e = tmp
		n++
	}
	if n != 20 {
		t.Fatalf("Expected 20 entries, got %v", n)
	}
	if e.StreamOffset != lastStream {
		t.Fatalf("Expected %v, got %v for the last stream offset",
			int64(lastStream), e.StreamOffset)
	}
	if e.PageID != 2638604 || e.Title != "Island of Montréal: The City" {
		t.Fatalf("Expected the title to keep its colons, got %#v", e)
	}
}

func TestIndexReaderBadRecord(t *testing.T) {
	for _, in := range []string{"499:AccessibleComputing\n", "x:10:A\n", "499:-1:A\n"} {
		_, err := NewIndexReader(strings.NewReader(in)).Next()
		if !errors.Is(err, ErrBadIndexRecord) {
			t.Errorf("Expected a bad record error for %q, got %v", in, err)
		}
	}
}

func TestIndexSummary(t *testing.T) {
	isr := NewIndexSummaryReader(strings.NewReader(testIndex))

	expected := []struct {
		chunk Chunk
		err   error
	}{
		{Chunk{499, 10}, nil},
		{Chunk{2147418907, 6}, nil},
		{Chunk{lastStream, 4}, nil},
		{Chunk{}, io.EOF},
		{Chunk{}, io.EOF},
	}

	for _, e := range expected {
		c, err := isr.Next()
		if c != e.chunk {
			t.Fatalf("Expected chunk %v, got %v", e.chunk, c)
		}
		if err != e.err {
			t.Fatalf("Expected err %v, got %v", e.err, err)
		}
	}
}

func TestIndexSummaryEmpty(t *testing.T) {
	c, err := NewIndexSummaryReader(strings.NewReader("")).Next()
	if err != io.EOF || c != (Chunk{}) {
		t.Fatalf("Expected nothing but EOF, got %v %v", c, err)
	}
}
