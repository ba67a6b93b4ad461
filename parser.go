package wiki2json

import (
	"io"
	"regexp"
	"strings"
)

const tagName = `[A-Za-z_][\w.:-]*`

var pageOpenRE, pageCloseRE, emptyRE, openRE, preserveRE *regexp.Regexp

func init() {
	pageOpenRE = regexp.MustCompile(`^\s*<page>\s*$`)
	pageCloseRE = regexp.MustCompile(`^\s*</page>\s*$`)
	// <name attr="..." />
	emptyRE = regexp.MustCompile(`^\s*<(` + tagName + `)(?:\s[^>]*)?/>\s*$`)
	// <name attr="...">rest, where rest may hold the text and the close
	openRE = regexp.MustCompile(`(?s)^\s*<(` + tagName + `)(\s[^>]*)?>(.*)$`)
	// Whatever follows the open tag is content, even if it looks
	// like markup.
	preserveRE = regexp.MustCompile(`\sxml:space\s*=\s*["']preserve["']`)
}

// DefaultSuppress lists the empty elements dropped unless Options
// says otherwise.  A deleted contributor would otherwise show up as
// true where every other page has an object.
var DefaultSuppress = []string{"contributor"}

// Options tune a Parser.
type Options struct {
	// Suppress names the empty elements (<name ... />) left out of
	// the output.  Nil means DefaultSuppress.
	Suppress []string
	// DecodeEntities replaces XML character references in text
	// values (&lt; becomes <).
	DecodeEntities bool
}

// A Parser converts a dump fed to it line by line.  Each page is
// written as one line of JSON as soon as its </page> is seen.
//
// A Parser handles exactly one stream and isn't safe for concurrent
// use.
type Parser struct {
	// OnPage, if set, is called after each page has been written.
	OnPage func()

	out        *output
	frames     []*frame
	inPage     bool
	pages      int64
	suppressed map[string]bool
	ends       map[string]*regexp.Regexp
}

// NewParser gets a parser with default options writing to w.
func NewParser(w io.Writer) *Parser {
	return NewParserOptions(w, Options{})
}

// NewParserOptions gets a parser writing to w.
func NewParserOptions(w io.Writer, opts Options) *Parser {
	suppress := opts.Suppress
	if suppress == nil {
		suppress = DefaultSuppress
	}
	p := &Parser{
		out:        newOutput(w, opts.DecodeEntities),
		suppressed: make(map[string]bool, len(suppress)),
		ends:       map[string]*regexp.Regexp{},
	}
	for _, name := range suppress {
		p.suppressed[name] = true
	}
	p.reset()
	return p
}

// Pages is the number of pages written so far.
func (p *Parser) Pages() int64 {
	return p.pages
}

// InPage reports whether a <page> is open.
func (p *Parser) InPage() bool {
	return p.inPage
}

// Depth is the number of elements open inside the current page.
func (p *Parser) Depth() int {
	return len(p.frames) - 1
}

func (p *Parser) reset() {
	p.frames = append(p.frames[:0], &frame{})
	p.inPage = false
}

func (p *Parser) top() *frame {
	return p.frames[len(p.frames)-1]
}

// ParseLine consumes one line of the dump, line terminator included,
// and writes whatever JSON it completes.
//
// The only errors come from the writer and from values that can't
// be typed (see TimestampFormatError and ValueError).  Once the
// writer has failed, every call returns that error.
func (p *Parser) ParseLine(line string) error {
	if p.out.err != nil {
		return p.out.err
	}
	switch {
	case !p.inPage:
		p.inPage = pageOpenRE.MatchString(line)
		return nil
	case pageCloseRE.MatchString(line):
		return p.endPage()
	}
	err := p.parsePage(line)
	if ferr := p.out.flush(); err == nil {
		err = ferr
	}
	return err
}

// Finish closes a page left open at the end of the input as if its
// </page> had been seen.
func (p *Parser) Finish() error {
	if !p.inPage {
		return p.out.flush()
	}
	return p.endPage()
}

func (p *Parser) parsePage(line string) error {
	top := p.top()
	// Markup inside text is text.
	if top.kind != textFrame {
		if m := emptyRE.FindStringSubmatch(line); m != nil {
			if !p.suppressed[m[1]] {
				top.addBool(p.out, m[1], true)
			}
			return nil
		}
		if m := openRE.FindStringSubmatch(line); m != nil {
			name, attrs, rest := m[1], m[2], m[3]
			if i := strings.LastIndex(rest, "</"+name+">"); i >= 0 {
				return p.addValue(top, name, rest[:i])
			}
			p.open(name, preserveRE.MatchString(attrs), rest)
			return nil
		}
	}
	if top.end != nil {
		if m := top.end.FindStringSubmatch(line); m != nil {
			if strings.TrimSpace(m[1]) != "" {
				top.appendText(m[1])
			}
			p.closeTop()
			return nil
		}
	}
	top.appendText(line)
	return nil
}

// addValue writes the text of a one-line element typed by its name.
func (p *Parser) addValue(f *frame, name, text string) error {
	switch KindOf(name) {
	case IntegerKind:
		return f.addInteger(p.out, name, text)
	case TimestampKind:
		return f.addTimestamp(p.out, name, text)
	case BooleanKind:
		f.addBool(p.out, name, true)
	default:
		f.addString(p.out, name, text)
	}
	return nil
}

func (p *Parser) open(name string, preserve bool, rest string) {
	p.top().addTag(p.out, name)
	f := &frame{end: p.endMatcher(name)}
	if preserve {
		f.kind = textFrame
	}
	p.frames = append(p.frames, f)
	if strings.TrimSpace(rest) != "" {
		f.appendText(rest)
	}
}

func (p *Parser) closeTop() {
	p.top().close(p.out)
	p.frames[len(p.frames)-1] = nil
	p.frames = p.frames[:len(p.frames)-1]
}

// endMatcher gets the pattern for a line ending the named element,
// capturing any text before the close.
func (p *Parser) endMatcher(name string) *regexp.Regexp {
	re, ok := p.ends[name]
	if !ok {
		re = regexp.MustCompile(`^(.*)</` + regexp.QuoteMeta(name) + `>`)
		p.ends[name] = re
	}
	return re
}

func (p *Parser) endPage() error {
	for len(p.frames) > 1 {
		p.closeTop()
	}
	if p.frames[0].kind == objectFrame {
		p.out.writeByte('}')
	} else {
		p.out.writeRaw("{}")
	}
	p.out.writeByte('\n')
	p.pages++
	p.reset()
	if err := p.out.flush(); err != nil {
		return err
	}
	if p.OnPage != nil {
		p.OnPage()
	}
	return nil
}
