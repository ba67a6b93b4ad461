// Load converted wikipedia pages into CouchDB
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-couch"
	"github.com/dustin/go-humanize"
	"github.com/dustin/httputil"

	"github.com/dustin/go-wiki2json"
)

var (
	numWorkers = flag.Int("workers", 20, "Number of page workers")
	enrich     = flag.Bool("enrich", false, "Add links, files and geo data")
)

var wg sync.WaitGroup

// storedPage is the part of an existing document needed to resolve
// a conflict.
type storedPage struct {
	Rev      string `json:"_rev"`
	Revision struct {
		Timestamp int64 `json:"timestamp"`
	} `json:"revision"`
}

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n  %s [opts] http://host:5984/db [pages.json[.bz2]...]\n",
		os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func escapeTitle(in string) string {
	return strings.NewReplacer("/", "%2f", "+", "%2b").Replace(in)
}

func timestamp(doc map[string]interface{}) int64 {
	rev, _ := doc["revision"].(map[string]interface{})
	ts, _ := rev["timestamp"].(int64)
	return ts
}

func resolveConflict(db *couch.Database, id string, doc map[string]interface{}) {
	log.Printf("Resolving conflict on %s", id)
	var prev storedPage
	err := db.Retrieve(id, &prev)
	if err != nil {
		log.Printf("  Error retrieving existing %v: %v", id, err)
		return
	}
	if prev.Rev == "" {
		log.Printf("Got no rev from %v", id)
		return
	}
	if timestamp(doc) > prev.Revision.Timestamp {
		log.Printf("  This one is newer...replacing %s.", prev.Rev)
		_, err = db.EditWith(doc, id, prev.Rev)
		if err != nil {
			log.Printf("  Error updating %v: %v", id, err)
		}
	}
}

func doPage(db *couch.Database, key string, doc map[string]interface{}) {
	id := escapeTitle(key)
	doc["_id"] = id

	_, _, err := db.Insert(doc)
	switch {
	case err == nil:
		// yay
	case httputil.IsHTTPStatus(err, 409):
		resolveConflict(db, id, doc)
	default:
		log.Printf("Error inserting %v: %v", key, err)
	}
}

func pageHandler(db couch.Database, ch <-chan []byte) {
	defer wg.Done()
	for rec := range ch {
		key := wiki2json.RecordKey(rec)
		doc, err := wiki2json.DecodeRecord(rec)
		if err != nil {
			log.Printf("Error decoding %v: %v", key, err)
			continue
		}
		doPage(&db, key, doc)
	}
}

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}

	db, err := couch.Connect(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error connecting to couchdb: %v", err)
	}

	ch := make(chan []byte, 1000)
	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go pageHandler(db, ch)
	}

	pages := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(1000)
	err = wiki2json.ReadRecords(flag.Args()[1:], func(rec []byte) error {
		if *enrich {
			enriched, err := wiki2json.Enrich(rec)
			if err != nil {
				log.Printf("Error enriching %v: %v", wiki2json.RecordKey(rec), err)
				return nil
			}
			rec = enriched
		}
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
