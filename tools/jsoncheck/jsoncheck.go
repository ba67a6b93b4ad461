// Check that every line of the input is valid JSON.
//
// Valid lines go to stdout and invalid ones to stderr.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/dustin/go-wiki2json"
)

// colorWriter paints everything written through it red.
type colorWriter struct {
	w io.Writer
}

func (c colorWriter) Write(b []byte) (int, error) {
	if _, err := io.WriteString(c.w, "\x1b[31m"); err != nil {
		return 0, err
	}
	n, err := c.w.Write(b)
	if err != nil {
		return n, err
	}
	_, err = io.WriteString(c.w, "\x1b[0m")
	return n, err
}

func main() {
	flag.Parse()

	var invalid io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		invalid = colorWriter{colorable.NewColorableStderr()}
	}

	names := flag.Args()
	if len(names) == 0 {
		names = []string{"-"}
	}

	total := 0
	for _, name := range names {
		f, err := wiki2json.Open(name)
		if err != nil {
			log.Fatalf("Error opening %v: %v", name, err)
		}
		n, _, err := wiki2json.CheckLines(f, os.Stdout, invalid)
		f.Close()
		total += n
		if err != nil {
			log.Fatalf("Error checking %v: %v", name, err)
		}
	}
	fmt.Fprintf(os.Stderr, "%d json lines verified.\n", total)
}
