// Load converted wikipedia pages into ElasticSearch
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-elasticsearch"
	"github.com/dustin/go-humanize"

	"github.com/dustin/go-wiki2json"
)

var (
	esurl      = flag.String("es", "http://localhost:9200/", "ElasticSearch URL")
	index      = flag.String("index", "wikipedia", "Index to load into")
	doctype    = flag.String("type", "article", "Document type")
	numWorkers = flag.Int("workers", 4, "Number of bulk loaders")
	batchSize  = flag.Int("batch", 1000, "Documents per bulk request")
	enrich     = flag.Bool("enrich", false, "Add links, files and geo data")
)

var wg sync.WaitGroup

type page struct {
	key string
	doc map[string]interface{}
}

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n  %s [opts] [pages.json[.bz2]...]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func pageHandler(ch <-chan page) {
	defer wg.Done()
	counter := 0
	es := elasticsearch.ElasticSearch{URL: *esurl}
	bulkLoader := es.Bulk()

	for p := range ch {
		counter++
		if counter > *batchSize {
			bulkLoader.SendBatch()
			counter = 0
		}
		ui := elasticsearch.UpdateInstruction{
			Id:    p.key,
			Index: *index,
			Type:  *doctype,
			Body:  p.doc,
		}
		bulkLoader.Update(&ui)
	}
	bulkLoader.Quit()
}

func main() {
	flag.Parse()

	ch := make(chan page, 1000)
	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go pageHandler(ch)
	}

	pages := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(1000)
	err := wiki2json.ReadRecords(flag.Args(), func(rec []byte) error {
		key := wiki2json.RecordKey(rec)
		if *enrich {
			var err error
			if rec, err = wiki2json.Enrich(rec); err != nil {
				log.Printf("Error enriching %v: %v", key, err)
				return nil
			}
		}
		doc, err := wiki2json.DecodeRecord(rec)
		if err != nil {
			log.Printf("Error decoding %v: %v", key, err)
			return nil
		}
		ch <- page{key, doc}

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
