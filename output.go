package wiki2json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"golang.org/x/net/html"
)

// output collects the JSON produced for one input line and hands it
// to the underlying writer in one go.  The first write error sticks.
type output struct {
	w      io.Writer
	err    error
	buf    bytes.Buffer
	enc    *json.Encoder
	decode bool
}

func newOutput(w io.Writer, decode bool) *output {
	o := &output{w: w, decode: decode}
	o.enc = json.NewEncoder(&o.buf)
	o.enc.SetEscapeHTML(false)
	return o
}

func (o *output) writeByte(c byte) {
	o.buf.WriteByte(c)
}

func (o *output) writeRaw(s string) {
	o.buf.WriteString(s)
}

func (o *output) writeQuoted(s string) {
	if err := o.enc.Encode(s); err != nil {
		if o.err == nil {
			o.err = err
		}
		return
	}
	// Encode terminates every value with a newline.
	o.buf.Truncate(o.buf.Len() - 1)
}

// writeText writes element content as a JSON string.
func (o *output) writeText(s string) {
	if o.decode {
		s = html.UnescapeString(s)
	}
	o.writeQuoted(s)
}

func (o *output) writeInt(n int64) {
	var scratch [20]byte
	o.buf.Write(strconv.AppendInt(scratch[:0], n, 10))
}

func (o *output) writeBool(b bool) {
	o.buf.WriteString(strconv.FormatBool(b))
}

func (o *output) flush() error {
	if o.err == nil && o.buf.Len() > 0 {
		_, o.err = o.w.Write(o.buf.Bytes())
	}
	o.buf.Reset()
	return o.err
}
