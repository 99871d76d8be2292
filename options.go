package librsvg

import (
	"log"

	"github.com/GNOME/librsvg-sub001/tree"
)

// Option configures a Handle at construction time; each wraps a
// tree.Option so the facade doesn't duplicate the parser's option
// plumbing.
type Option func(*[]tree.Option)

func append1(opts *[]tree.Option, o tree.Option) { *opts = append(*opts, o) }

// OptionDPI overrides the resolution used for absolute-length units.
func OptionDPI(x, y float64) Option {
	return func(opts *[]tree.Option) { append1(opts, tree.OptionDPI(x, y)) }
}

// OptionBaseURI sets the location used to resolve relative references
// (spec.md §4.4).
func OptionBaseURI(uri string) Option {
	return func(opts *[]tree.Option) { append1(opts, tree.OptionBaseURI(uri)) }
}

// OptionUnlimited disables the character-data cap, for trusted input.
func OptionUnlimited(v bool) Option {
	return func(opts *[]tree.Option) { append1(opts, tree.OptionUnlimited(v)) }
}

// OptionLogger overrides the default logger.
func OptionLogger(l *log.Logger) Option {
	return func(opts *[]tree.Option) { append1(opts, tree.OptionLogger(l)) }
}
