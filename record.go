package wiki2json

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/net/html"

	"github.com/dustin/go-wiki2json/wikitext"
)

// ErrBadRecord is returned for a line that isn't a JSON object.
var ErrBadRecord = errors.New("not a JSON object")

// Geo is the GeoJSON feature Enrich adds for pages with coordinates.
type Geo struct {
	Geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Type string `json:"type"`
}

// RecordKey gets the key a converted page is stored under: its
// title, or its id for pages without one.
func RecordKey(rec []byte) string {
	if title := gjson.GetBytes(rec, "title"); title.Exists() {
		return title.String()
	}
	if id := gjson.GetBytes(rec, "id"); id.Exists() {
		return id.Raw
	}
	return ""
}

// RecordText gets the article text of a converted page, with
// character references decoded.
func RecordText(rec []byte) string {
	return html.UnescapeString(gjson.GetBytes(rec, "revision.text").String())
}

// DecodeRecord decodes a converted page into maps and slices.
// Integral numbers come back as int64 rather than float64 so ids
// survive the trip into a database.
func DecodeRecord(rec []byte) (map[string]interface{}, error) {
	if !gjson.ValidBytes(rec) {
		return nil, ErrBadRecord
	}
	r := gjson.ParseBytes(rec)
	if !r.IsObject() {
		return nil, ErrBadRecord
	}
	return decodeValue(r).(map[string]interface{}), nil
}

func decodeValue(r gjson.Result) interface{} {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		if n, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
			return n
		}
		return r.Num
	case gjson.JSON:
		if r.IsArray() {
			rv := []interface{}{}
			r.ForEach(func(_, v gjson.Result) bool {
				rv = append(rv, decodeValue(v))
				return true
			})
			return rv
		}
		rv := map[string]interface{}{}
		r.ForEach(func(k, v gjson.Result) bool {
			rv[k.String()] = decodeValue(v)
			return true
		})
		return rv
	}
	return nil
}

// Enrich adds what can be learned from a page's text: "links",
// "files" and "file_urls" when there are any, and "geo" when the
// page has coordinates.
func Enrich(rec []byte) ([]byte, error) {
	if !gjson.ValidBytes(rec) {
		return nil, ErrBadRecord
	}
	text := RecordText(rec)

	var err error
	if links := wikitext.FindLinks(text); len(links) > 0 {
		if rec, err = sjson.SetBytes(rec, "links", links); err != nil {
			return nil, err
		}
	}
	if files := wikitext.FindFiles(text); len(files) > 0 {
		urls := make([]string, 0, len(files))
		for _, f := range files {
			urls = append(urls, wikitext.URLForFile(f))
		}
		if rec, err = sjson.SetBytes(rec, "files", files); err != nil {
			return nil, err
		}
		if rec, err = sjson.SetBytes(rec, "file_urls", urls); err != nil {
			return nil, err
		}
	}
	if c, cerr := wikitext.ParseCoords(text); cerr == nil {
		geo := Geo{Type: "Feature"}
		geo.Geometry.Type = "Point"
		geo.Geometry.Coordinates = []float64{c.Lon, c.Lat}
		if rec, err = sjson.SetBytes(rec, "geo", geo); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// ReadRecords calls fn with every record in the named files, as
// opened by Open.  No names means standard input.  Blank lines are
// skipped and the line terminator isn't passed on.
func ReadRecords(names []string, fn func(rec []byte) error) error {
	if len(names) == 0 {
		names = []string{"-"}
	}
	for _, name := range names {
		f, err := Open(name)
		if err != nil {
			return err
		}
		err = ReadLines(f, func(line string) error {
			line = strings.TrimRight(line, "\r\n")
			if strings.TrimSpace(line) == "" {
				return nil
			}
			return fn([]byte(line))
		})
		f.Close()
		if err != nil {
			return fmt.Errorf("%v: %w", name, err)
		}
	}
	return nil
}
