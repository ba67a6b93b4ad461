package wiki2json

import (
	"bufio"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"strings"
)

type bz2File struct {
	io.Reader
	f *os.File
}

func (b bz2File) Close() error {
	return b.f.Close()
}

// Open gets a reader for a named input.  "-" is standard input, and
// anything ending in .bz2 is decompressed on the way through.
func Open(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(name, ".bz2") {
		return bz2File{bzip2.NewReader(f), f}, nil
	}
	return f, nil
}

// ReadLines calls fn with every line of r, including its terminator.
// There's no limit on line length.  Errors are annotated with the
// number of the line they happened on.
func ReadLines(r io.Reader, fn func(line string) error) error {
	br := bufio.NewReaderSize(r, 64*1024)
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if ferr := fn(line); ferr != nil {
				return fmt.Errorf("line %d: %w", n, ferr)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
}

// Parse feeds every line of r to the parser and finishes a page the
// input leaves open.
func (p *Parser) Parse(r io.Reader) error {
	if err := ReadLines(r, p.ParseLine); err != nil {
		return err
	}
	return p.Finish()
}

// Convert reads a dump from r and writes its pages to w as JSON
// lines, returning the number of pages written.
func Convert(r io.Reader, w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	p := NewParser(bw)
	err := p.Parse(r)
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	return p.Pages(), err
}
