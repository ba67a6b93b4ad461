package main

import (
	"flag"
	"log"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/mgo.v2"

	"github.com/dustin/go-wiki2json"
)

var proc = flag.Int("proc", 8, "How many processes to run.")
var dburl = flag.String("dburl", "localhost", "The dburl(s). I.e. localhost.")
var verbose = flag.Bool("v", false, "Verbose logging?")
var collection = flag.String("collection", "articles", "The collection to store pages in.")
var dbname = flag.String("dbname", "wp", "The database name to use.")
var enrich = flag.Bool("enrich", false, "Add links, files and geo data.")

var wg sync.WaitGroup

// Titles are unique, they're the URL path of the page.
var titleIndex = mgo.Index{
	Key:        []string{"title"},
	Unique:     true,
	DropDups:   true,
	Background: true,
	Sparse:     true,
}

func pageHandler(db *mgo.Database, ch <-chan []byte) {
	defer wg.Done()
	for rec := range ch {
		insertPage(db, rec)
	}
}

func insertPage(db *mgo.Database, rec []byte) {
	key := wiki2json.RecordKey(rec)
	if *enrich {
		var err error
		if rec, err = wiki2json.Enrich(rec); err != nil {
			log.Printf("Error enriching %s: %s", key, err)
			return
		}
	}
	doc, err := wiki2json.DecodeRecord(rec)
	if err != nil {
		log.Printf("Error decoding %s: %s", key, err)
		return
	}
	err = db.C(*collection).Insert(doc)
	if err != nil {
		if mgo.IsDup(err) {
			if *verbose {
				log.Printf("Duplicate Key Error inserting %s", key)
			}
		} else {
			log.Printf("Error inserting %s: %s", key, err)
		}
	}
}

func processRecords(names []string, db *mgo.Database) {
	ch := make(chan []byte, 1000)
	for i := 0; i < *proc; i++ {
		wg.Add(1)
		go pageHandler(db, ch)
	}

	pages := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(10000)
	err := wiki2json.ReadRecords(names, func(rec []byte) error {
		ch <- rec
		pages++
		if pages%reportfreq == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Printf("Processed %s pages total (%.2f/s)\n",
				humanize.Comma(pages), float64(reportfreq)/d.Seconds())
			prev = now
		}
		return nil
	})
	close(ch)
	wg.Wait()

	d := time.Since(start)
	log.Printf("Ended with err after %v:  %v after %s pages (%.2f p/s)",
		d, err, humanize.Comma(pages), float64(pages)/d.Seconds())
}

func main() {
	flag.Parse()
	session, err := mgo.Dial(*dburl)
	if err != nil {
		log.Fatalf("Error connecting to %v: %v", *dburl, err)
	}
	defer session.Close()

	err = session.DB(*dbname).C(*collection).EnsureIndex(titleIndex)
	if err != nil {
		log.Fatalf("Error creating title index: %v", err)
	}
	processRecords(flag.Args(), session.DB(*dbname))
}
