package wiki2json

import (
	"bytes"
	"compress/bzip2"
	"errors"
	"io"
	"os"
	"sync"
)

type chunkResult struct {
	data  []byte
	pages int
	err   error
}

var errChunkDone = errors.New("chunk done")

// An IndexedConverter converts a multistream dump, one bzip2 stream
// per worker at a time.  Each stream gets its own Parser.
//
// Chunks come out in whatever order the workers finish them.
type IndexedConverter struct {
	chunks  chan Chunk
	results chan chunkResult
	stop    chan struct{}
	once    sync.Once
}

// NewIndexedConverter starts converting the multistream dump datafn
// using its bzip2 compressed index indexfn.
func NewIndexedConverter(indexfn, datafn string, numWorkers int,
	opts Options) (*IndexedConverter, error) {

	idx, err := os.Open(indexfn)
	if err != nil {
		return nil, err
	}
	data, err := os.Open(datafn)
	if err != nil {
		idx.Close()
		return nil, err
	}
	data.Close()

	if numWorkers < 1 {
		numWorkers = 1
	}
	c := &IndexedConverter{
		chunks:  make(chan Chunk, 1000),
		results: make(chan chunkResult, numWorkers),
		stop:    make(chan struct{}),
	}

	wg := &sync.WaitGroup{}
	wg.Add(numWorkers + 1)
	go c.indexWorker(idx, wg)
	for i := 0; i < numWorkers; i++ {
		go c.streamWorker(datafn, opts, wg)
	}
	go func() {
		wg.Wait()
		close(c.results)
	}()

	return c, nil
}

func (c *IndexedConverter) send(r chunkResult) bool {
	select {
	case c.results <- r:
		return true
	case <-c.stop:
		return false
	}
}

func (c *IndexedConverter) indexWorker(idx *os.File, wg *sync.WaitGroup) {
	defer wg.Done()
	defer close(c.chunks)
	defer idx.Close()

	isr := NewIndexSummaryReader(bzip2.NewReader(idx))
	for {
		chunk, err := isr.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			c.send(chunkResult{err: err})
			return
		}
		select {
		case c.chunks <- chunk:
		case <-c.stop:
			return
		}
	}
}

func (c *IndexedConverter) streamWorker(datafn string, opts Options,
	wg *sync.WaitGroup) {
	defer wg.Done()

	f, err := os.Open(datafn)
	if err != nil {
		c.send(chunkResult{err: err})
		for range c.chunks {
		}
		return
	}
	defer f.Close()

	for chunk := range c.chunks {
		if !c.send(convertChunk(f, chunk, opts)) {
			return
		}
	}
}

// convertChunk converts the pages of the stream starting at
// chunk.Offset.  The bzip2 reader would carry on into the following
// streams, so reading stops once the chunk's pages are done.
func convertChunk(f io.ReadSeeker, chunk Chunk, opts Options) chunkResult {
	if _, err := f.Seek(chunk.Offset, io.SeekStart); err != nil {
		return chunkResult{err: err}
	}

	buf := &bytes.Buffer{}
	p := NewParserOptions(buf, opts)
	err := ReadLines(bzip2.NewReader(f), func(line string) error {
		if err := p.ParseLine(line); err != nil {
			return err
		}
		if p.Pages() >= int64(chunk.Pages) {
			return errChunkDone
		}
		return nil
	})
	switch {
	case errors.Is(err, errChunkDone):
		err = nil
	case err == nil:
		err = p.Finish()
	}
	return chunkResult{data: buf.Bytes(), pages: int(p.Pages()), err: err}
}

// Next gets the JSON lines of the next converted stream and the
// number of pages in them.  It returns io.EOF once every stream has
// been delivered.
func (c *IndexedConverter) Next() ([]byte, int, error) {
	r, ok := <-c.results
	if !ok {
		return nil, 0, io.EOF
	}
	return r.data, r.pages, r.err
}

// Close stops the workers.  Converted streams not yet returned by
// Next are dropped.
func (c *IndexedConverter) Close() error {
	c.once.Do(func() { close(c.stop) })
	return nil
}
