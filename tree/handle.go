package tree

import (
	"encoding/xml"
	"io"
	"log"

	"golang.org/x/net/html/charset"

	"github.com/GNOME/librsvg-sub001/bytesource"
	"github.com/GNOME/librsvg-sub001/style"
)

// State is a Handle's position in the Start -> Loading -> Closed{Ok,Error}
// lifecycle of spec.md §4.1.
type State uint8

const (
	StateStart State = iota
	StateLoading
	StateClosedOk
	StateClosedError
)

// maxCharData bounds the total character-data bytes processed per document
// unless Unlimited is set, a defense-in-depth cap against pathological
// inputs; encoding/xml itself never expands custom entities (it has no DTD
// entity-expansion support at all), so this is the one expansion vector
// actually reachable through the stdlib decoder.
const maxCharData = 64 << 20

// Option configures a Handle at construction time.
type Option func(*Handle)

// OptionDPI overrides the resolution used for absolute-length units.
func OptionDPI(x, y float64) Option {
	return func(h *Handle) { h.dpiX, h.dpiY = x, y }
}

// OptionBaseURI sets the location used to resolve relative references.
func OptionBaseURI(uri string) Option {
	return func(h *Handle) { h.baseURI = uri }
}

// OptionUnlimited disables the character-data cap, for trusted input.
func OptionUnlimited(v bool) Option {
	return func(h *Handle) { h.unlimited = v }
}

// OptionLogger overrides the default logger.
func OptionLogger(l *log.Logger) Option {
	return func(h *Handle) { h.logger = l }
}

// Handle is the parse-time facade of spec.md §4.1: bytes are fed in via
// Write, possibly across several calls, and the tree becomes available
// once Close returns without error.
type Handle struct {
	state State

	dpiX, dpiY float64
	baseURI    string
	unlimited  bool
	logger     *log.Logger

	pw   *io.PipeWriter
	done chan error

	charDataSeen int64

	Root  *Node
	Defs  *Defs
	Sheet style.Stylesheet

	Titles       []string
	Descriptions []string
}

// NewHandle constructs a Handle in StateStart.
func NewHandle(opts ...Option) *Handle {
	h := &Handle{
		state:  StateStart,
		dpiX:   96,
		dpiY:   96,
		logger: log.Default(),
		Defs:   newDefs(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// DPI returns the resolution in effect for this handle.
func (h *Handle) DPI() (x, y float64) { return h.dpiX, h.dpiY }

// BaseURI returns the location used to resolve relative references.
func (h *Handle) BaseURI() string { return h.baseURI }

// Write feeds document bytes to the parser. The first call determines
// whether the stream is gzip-wrapped (spec.md §4.1) and starts the
// background parse goroutine; subsequent calls simply append more bytes.
func (h *Handle) Write(p []byte) (int, error) {
	if h.state == StateStart {
		h.startLoading()
	}
	if h.state != StateLoading {
		return 0, ErrAlreadyClosed
	}
	return h.pw.Write(p)
}

func (h *Handle) startLoading() {
	h.state = StateLoading
	pr, pw := io.Pipe()
	h.pw = pw
	h.done = make(chan error, 1)
	go h.run(pr)
}

func (h *Handle) run(pr io.Reader) {
	reader, err := bytesource.DetectAndWrap(pr)
	if err != nil {
		h.done <- err
		return
	}
	h.done <- h.parse(reader)
}

// Close finishes feeding input and blocks until parsing completes,
// transitioning to StateClosedOk or StateClosedError.
func (h *Handle) Close() error {
	if h.state != StateLoading {
		if h.state == StateStart {
			return ErrEmptyDocument
		}
		return ErrAlreadyClosed
	}
	h.pw.Close()
	err := <-h.done
	if err != nil {
		h.state = StateClosedError
		return err
	}
	h.state = StateClosedOk
	return nil
}

// State reports the handle's current lifecycle state.
func (h *Handle) State() State { return h.state }

func (h *Handle) parse(r io.Reader) error {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	b := newBuilder(h.Defs)
	seenElement := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			seenElement = true
			b.startElement(t)
		case xml.EndElement:
			cur := b.current()
			if cur != nil {
				switch cur.Kind {
				case KindTitle:
					h.Titles = append(h.Titles, cur.Text)
				case KindDesc:
					h.Descriptions = append(h.Descriptions, cur.Text)
				}
			}
			b.endElement(t.Name.Local)
		case xml.CharData:
			if !h.unlimited {
				h.charDataSeen += int64(len(t))
				if h.charDataSeen > maxCharData {
					return ErrEntityExpansionLimit
				}
			}
			b.charData(t)
		}
	}
	if !seenElement {
		return ErrEmptyDocument
	}
	h.Root = b.root
	h.Sheet = b.sheet
	return nil
}
