package wiki2json

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrBadIndexRecord is returned for an index line that isn't
// offset:pageid:title.
var ErrBadIndexRecord = errors.New("bad index record")

// An IndexEntry is one page listed in a multistream index.
type IndexEntry struct {
	// Byte offset of the bzip2 stream holding the page.
	StreamOffset int64
	PageID       uint64
	Title        string
}

func (e IndexEntry) String() string {
	return fmt.Sprintf("%d:%d:%s", e.StreamOffset, e.PageID, e.Title)
}

// An IndexReader reads the entries of a multistream index.
type IndexReader struct {
	lines *bufio.Scanner
	// Older indexes wrote offsets as signed 32 bit numbers.  Each
	// time an offset goes backwards another 2^32 is added.
	wrap int64
	prev int64
}

// NewIndexReader gets an IndexReader for the (decompressed) index
// lines in r.
func NewIndexReader(r io.Reader) *IndexReader {
	return &IndexReader{lines: bufio.NewScanner(r)}
}

// Next gets the next entry, or io.EOF after the last.
func (ir *IndexReader) Next() (IndexEntry, error) {
	if !ir.lines.Scan() {
		if err := ir.lines.Err(); err != nil {
			return IndexEntry{}, err
		}
		return IndexEntry{}, io.EOF
	}
	parts := strings.SplitN(ir.lines.Text(), ":", 3)
	if len(parts) != 3 {
		return IndexEntry{}, ErrBadIndexRecord
	}
	offset, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("%w: offset: %v", ErrBadIndexRecord, err)
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("%w: page id: %v", ErrBadIndexRecord, err)
	}
	if offset < ir.prev {
		ir.wrap += 1 << 32
	}
	ir.prev = offset

	return IndexEntry{
		StreamOffset: offset + ir.wrap,
		PageID:       id,
		Title:        parts[2],
	}, nil
}

// A Chunk is one bzip2 stream of a multistream dump.
type Chunk struct {
	Offset int64
	Pages  int
}

// IndexSummaryReader folds index entries into chunks, for when
// you only care where the streams are and how many pages each holds.
type IndexSummaryReader struct {
	index   *IndexReader
	pending Chunk
	err     error
}

// NewIndexSummaryReader gets an IndexSummaryReader for the index
// lines in r.
func NewIndexSummaryReader(r io.Reader) *IndexSummaryReader {
	return &IndexSummaryReader{index: NewIndexReader(r)}
}

// Next gets the next chunk, or io.EOF after the last.
func (isr *IndexSummaryReader) Next() (Chunk, error) {
	for isr.err == nil {
		e, err := isr.index.Next()
		if err != nil {
			isr.err = err
			break
		}
		switch {
		case isr.pending.Pages == 0:
			isr.pending = Chunk{Offset: e.StreamOffset, Pages: 1}
		case e.StreamOffset == isr.pending.Offset:
			isr.pending.Pages++
		default:
			c := isr.pending
			isr.pending = Chunk{Offset: e.StreamOffset, Pages: 1}
			return c, nil
		}
	}
	if isr.err == io.EOF && isr.pending.Pages > 0 {
		c := isr.pending
		isr.pending = Chunk{}
		return c, nil
	}
	return Chunk{}, isr.err
}
