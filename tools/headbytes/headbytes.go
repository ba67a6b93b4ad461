// Copy whole lines from stdin to stdout up to a size (e.g. 100M).
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-wiki2json"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s size\n", os.Args[0])
		os.Exit(1)
	}
	max, err := wiki2json.ParseSize(os.Args[1])
	if err != nil {
		log.Fatalf("Error parsing size %q: %v", os.Args[1], err)
	}

	w := bufio.NewWriter(os.Stdout)
	_, err = wiki2json.CopyHead(w, os.Stdin, max)
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		log.Fatalf("Error copying: %v", err)
	}
}
