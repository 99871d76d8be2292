package style

import (
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Declaration is one "property: value" pair, carrying whether it ended in
// "!important" (spec.md §9 Open Question: honored, not ignored).
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// SelectorKind orders the five selector forms the cascade matches
// (spec.md §4.2): "*", tag, ".class", "tag.class", "#id", lowest to
// highest precedence.
type SelectorKind uint8

const (
	SelAll SelectorKind = iota
	SelTag
	SelClass
	SelTagClass
	SelID
)

// Selector is a single parsed <style> selector.
type Selector struct {
	Kind SelectorKind
	Tag  string
	Class string
	ID   string
}

// Rule is one parsed CSS rule: a selector plus its declaration block.
type Rule struct {
	Selector Selector
	Decls    []Declaration
	order    int // source order, used for same-precedence tie-breaks
}

// Stylesheet holds every rule captured from <style> elements in the
// document (spec.md §4.1: "<style> ... CSS text accumulated and parsed on
// end").
type Stylesheet struct {
	Rules []Rule
}

// ParseStylesheet tokenizes CSS source with tdewolff/parse/v2/css (the
// same lexer pgavlin/svg2's internal/cssvalue package wraps) and groups
// tokens into selector{declarations} rules.
func ParseStylesheet(src string) (Stylesheet, error) {
	var sheet Stylesheet
	l := css.NewLexer(parse.NewInput(strings.NewReader(src)))
	var selectorBuf strings.Builder
	for {
		typ, value := l.Next()
		if typ == css.ErrorToken {
			if l.Err() == io.EOF {
				break
			}
			return sheet, l.Err()
		}
		switch typ {
		case css.CommentToken:
			// skip
		case css.LeftBraceToken:
			body, derr := readDeclBlock(l)
			if derr != nil {
				return sheet, derr
			}
			for _, sel := range splitSelectorGroup(selectorBuf.String()) {
				sheet.Rules = append(sheet.Rules, Rule{
					Selector: sel,
					Decls:    body,
					order:    len(sheet.Rules),
				})
			}
			selectorBuf.Reset()
		default:
			selectorBuf.Write(value)
		}
	}
	return sheet, nil
}

// readDeclBlock consumes tokens up to the matching RightBraceToken and
// returns the parsed declarations.
func readDeclBlock(l *css.Lexer) ([]Declaration, error) {
	var decls []Declaration
	var prop, val strings.Builder
	inValue := false
	flush := func() {
		p := strings.TrimSpace(prop.String())
		v := strings.TrimSpace(val.String())
		important := false
		if trimmed := strings.TrimSuffix(strings.TrimSpace(v), "!important"); trimmed != v {
			important = true
			v = strings.TrimSpace(trimmed)
		}
		if p != "" {
			decls = append(decls, Declaration{Property: p, Value: v, Important: important})
		}
		prop.Reset()
		val.Reset()
		inValue = false
	}
	for {
		typ, value := l.Next()
		if typ == css.ErrorToken {
			flush()
			return decls, nil
		}
		switch typ {
		case css.RightBraceToken:
			flush()
			return decls, nil
		case css.ColonToken:
			inValue = true
		case css.SemicolonToken:
			flush()
		case css.CommentToken, css.WhitespaceToken:
			if inValue {
				val.WriteByte(' ')
			}
		default:
			if inValue {
				val.Write(value)
			} else {
				prop.Write(value)
			}
		}
	}
}

// splitSelectorGroup splits a comma-separated selector list and parses
// each simple selector (spec.md §4.2 matches only simple selectors: *,
// tag, .class, tag.class, #id — no descendant/combinator selectors).
func splitSelectorGroup(s string) []Selector {
	var out []Selector
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, parseSimpleSelector(part))
	}
	return out
}

func parseSimpleSelector(s string) Selector {
	switch {
	case s == "*":
		return Selector{Kind: SelAll}
	case strings.HasPrefix(s, "#"):
		return Selector{Kind: SelID, ID: s[1:]}
	case strings.Contains(s, "."):
		tag, class, _ := strings.Cut(s, ".")
		if tag == "" {
			return Selector{Kind: SelClass, Class: class}
		}
		return Selector{Kind: SelTagClass, Tag: tag, Class: class}
	default:
		return Selector{Kind: SelTag, Tag: s}
	}
}

// matches reports whether sel applies to an element with the given tag,
// id, and class set.
func (sel Selector) matches(tag, id string, classes map[string]bool) bool {
	switch sel.Kind {
	case SelAll:
		return true
	case SelTag:
		return sel.Tag == tag
	case SelClass:
		return classes[sel.Class]
	case SelTagClass:
		return sel.Tag == tag && classes[sel.Class]
	case SelID:
		return sel.ID == id
	}
	return false
}
