// Split a stream of lines from stdin into files of growing sizes.
//
// Each file gets lines until the total read reaches its size, so
//
//   bzcat enwiki.json.bz2 | jsonsplit 1G first.json 3G second.json
//
// puts the first gigabyte in first.json and the next two in
// second.json.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/dustin/go-wiki2json"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n  %s size file [size file...]\n", os.Args[0])
	os.Exit(1)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 || len(args)%2 != 0 {
		usage()
	}

	files := map[string]*os.File{}
	writers := map[string]*bufio.Writer{}
	var parts []wiki2json.Part
	for i := 0; i < len(args); i += 2 {
		size, err := wiki2json.ParseSize(args[i])
		if err != nil {
			log.Fatalf("Error parsing size %q: %v", args[i], err)
		}
		name := args[i+1]
		f, err := os.Create(name)
		if err != nil {
			log.Fatalf("Error creating %v: %v", name, err)
		}
		files[name] = f
		writers[name] = bufio.NewWriter(f)
		parts = append(parts, wiki2json.Part{
			Limit: int64(size),
			Name:  name,
			W:     writers[name],
		})
	}

	err := wiki2json.Split(os.Stdin, parts, func(p wiki2json.Part, written int64) {
		if written == 0 {
			log.Printf("Nothing written to %v", p.Name)
		} else {
			log.Printf("%v finished (%s).", p.Name, humanize.Bytes(uint64(written)))
		}
		if err := writers[p.Name].Flush(); err != nil {
			log.Fatalf("Error writing %v: %v", p.Name, err)
		}
		if err := files[p.Name].Close(); err != nil {
			log.Fatalf("Error closing %v: %v", p.Name, err)
		}
	})
	if err != nil {
		log.Fatalf("Error splitting: %v", err)
	}
}
