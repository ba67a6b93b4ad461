// Load converted wikipedia pages into Couchbase
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/couchbase/go-couchbase"
	"github.com/dustin/go-humanize"

	"github.com/dustin/go-wiki2json"
)

var (
	numWorkers = flag.Int("numWorkers", 8, "Number of page workers")
	enrich     = flag.Bool("enrich", false, "Add links, files and geo data")
)

var wg sync.WaitGroup

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s [opts] [pages.json[.bz2]...]\n",
		os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func doPage(db *couchbase.Bucket, rec []byte) {
	key := wiki2json.RecordKey(rec)
	if *enrich {
		var err error
		if rec, err = wiki2json.Enrich(rec); err != nil {
			log.Printf("Error enriching %v: %v", key, err)
			return
		}
	}
	if err := db.Set(key, 0, json.RawMessage(rec)); err != nil {
		log.Printf("Error setting %v: %v", key, err)
	}
}

func pageHandler(db *couchbase.Bucket, ch <-chan []byte) {
	defer wg.Done()
	for rec := range ch {
		doPage(db, rec)
	}
}

func main() {
	couchbaseServer := flag.String("couchbase", "http://localhost:8091/",
		"Couchbase URL")
	couchbaseBucket := flag.String("bucket", "default", "Couchbase bucket")
	flag.Parse()

	db, err := couchbase.GetBucket(*couchbaseServer,
		"default", *couchbaseBucket)
	if err != nil {
		log.Fatalf("Error connecting to couchbase: %v", err)
	}
	defer db.Close()

	ch := make(chan []byte, 1000)

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go pageHandler(db, ch)
	}

	pages := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(1000)
	err = wiki2json.ReadRecords(flag.Args(), func(rec []byte) error {
		ch <- rec

		pages++
		if pages%reportfreq == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Printf("Processed %s pages total (%.2f/s)",
				humanize.Comma(pages), float64(reportfreq)/d.Seconds())
			prev = now
		}
		return nil
	})
	close(ch)
	wg.Wait()
	log.Printf("Ended with err after %v:  %v after %s pages",
		time.Since(start), err, humanize.Comma(pages))
}
