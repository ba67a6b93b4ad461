// Convert a wikipedia XML dump to one line of JSON per page.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/rcrowley/go-metrics"

	"github.com/dustin/go-wiki2json"
)

var (
	outfile    = flag.String("o", "-", "Output file (- for stdout)")
	indexfile  = flag.String("index", "", "Index of a multistream dump")
	numWorkers = flag.Int("workers", runtime.NumCPU(), "Number of multistream workers")
	suppress   = flag.String("suppress", strings.Join(wiki2json.DefaultSuppress, ","),
		"Comma separated empty elements to leave out")
	entities = flag.Bool("entities", false, "Decode character references in text")
	progress = flag.Bool("progress", isTerminal(os.Stderr),
		"Report progress on stderr")
	every = flag.Duration("every", 5*time.Second, "Progress report frequency")
)

var pagesMeter = metrics.NewRegisteredMeter("pages", metrics.DefaultRegistry)

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s [opts] [dump.xml[.bz2]...]\n  %s [opts] -index index.txt.bz2 multistream.xml.bz2\n",
		os.Args[0], os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func options() wiki2json.Options {
	opts := wiki2json.Options{Suppress: []string{}, DecodeEntities: *entities}
	for _, name := range strings.Split(*suppress, ",") {
		if name = strings.TrimSpace(name); name != "" {
			opts.Suppress = append(opts.Suppress, name)
		}
	}
	return opts
}

func report() {
	log.Printf("Processed %s pages total (%.2f/s)",
		humanize.Comma(pagesMeter.Count()), pagesMeter.RateMean())
}

func reporter(stop <-chan struct{}) {
	t := time.NewTicker(*every)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			report()
		case <-stop:
			return
		}
	}
}

func convertFiles(w io.Writer, names []string) error {
	if len(names) == 0 {
		names = []string{"-"}
	}
	p := wiki2json.NewParserOptions(w, options())
	p.OnPage = func() { pagesMeter.Mark(1) }
	for _, name := range names {
		f, err := wiki2json.Open(name)
		if err != nil {
			return err
		}
		err = wiki2json.ReadLines(f, p.ParseLine)
		f.Close()
		if err != nil {
			return fmt.Errorf("%v: %w", name, err)
		}
	}
	return p.Finish()
}

func convertMultiStream(w io.Writer, idx, data string) error {
	c, err := wiki2json.NewIndexedConverter(idx, data, *numWorkers, options())
	if err != nil {
		return err
	}
	defer c.Close()
	for {
		b, n, err := c.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
		pagesMeter.Mark(int64(n))
	}
}

func main() {
	flag.Parse()

	if *indexfile != "" && flag.NArg() != 1 {
		log.Fatalf("An index goes with exactly one multistream dump")
	}

	out := io.WriteCloser(os.Stdout)
	if *outfile != "-" {
		f, err := os.Create(*outfile)
		if err != nil {
			log.Fatalf("Error creating output: %v", err)
		}
		out = f
	}
	w := bufio.NewWriterSize(out, 256*1024)

	stop := make(chan struct{})
	if *progress {
		go reporter(stop)
	}

	start := time.Now()
	var err error
	if *indexfile != "" {
		err = convertMultiStream(w, *indexfile, flag.Arg(0))
	} else {
		err = convertFiles(w, flag.Args())
	}
	close(stop)
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatalf("Error converting after %s pages: %v",
			humanize.Comma(pagesMeter.Count()), err)
	}
	if *progress {
		log.Printf("Converted %s pages in %v",
			humanize.Comma(pagesMeter.Count()), time.Since(start))
	}
}
