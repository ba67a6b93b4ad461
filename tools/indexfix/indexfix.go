// Rewrite a multistream index with corrected stream offsets.
//
// With -summary, print one offset:pages line per stream instead.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-wiki2json"
)

var summary = flag.Bool("summary", false, "Print streams instead of pages")

// fixIndex writes the corrected index (or its summary) to out.
// Whatever was read before an error is still written.
func fixIndex(out io.Writer, r io.Reader, summary bool) error {
	w := bufio.NewWriter(out)
	err := writeIndex(w, r, summary)
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	return err
}

func writeIndex(w io.Writer, r io.Reader, summary bool) error {
	if summary {
		sr := wiki2json.NewIndexSummaryReader(r)
		for {
			c, err := sr.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%d:%d\n", c.Offset, c.Pages)
		}
	}

	ir := wiki2json.NewIndexReader(r)
	for {
		e, err := ir.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(w, e.String())
	}
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [-summary] index.txt.bz2\n", os.Args[0])
		os.Exit(1)
	}

	r, err := wiki2json.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error opening %v: %v", flag.Arg(0), err)
	}
	defer r.Close()

	if err := fixIndex(os.Stdout, r, *summary); err != nil {
		log.Fatalf("Error reading index:  %v", err)
	}
}
