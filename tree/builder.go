package tree

import (
	"encoding/xml"
	"strings"

	"github.com/GNOME/librsvg-sub001/style"
)

// maxUseDepth records the <use> recursion limit (spec.md §4.4 security
// note). The render package does not read it: it enforces the same limit
// with its own constant, maxUseRecursion in render/walk.go.
const maxUseDepth = 32

// builder is the SAX cursor that turns XML tokens into a Node tree,
// generalizing the teacher's iconCursor (svgicon/parse.go) from "build one
// shape per element" to "build one node per element, any kind."
type builder struct {
	root        *Node
	stack       []*Node
	defs        *Defs
	inStyleText bool
	styleText   strings.Builder
	sheet       style.Stylesheet
}

func newBuilder(defs *Defs) *builder {
	return &builder{defs: defs}
}

func (b *builder) current() *Node {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *builder) startElement(se xml.StartElement) {
	kind, known := elementKinds[se.Name.Local]
	if !known {
		kind = KindCharsBucket
	}
	n := &Node{Kind: kind, TagName: se.Name.Local, Attrs: make(map[string]string, len(se.Attr))}

	for _, a := range se.Attr {
		name := a.Name.Local
		switch name {
		case "id":
			n.ID = a.Value
		case "class":
			n.Classes = splitOnSpace(a.Value)
		case "transform", "gradientTransform", "patternTransform":
			n.TransformAttr = a.Value
		case "style":
			n.InlineStyle = append(n.InlineStyle, parseInlineStyle(a.Value)...)
		default:
			if style.IsPresentationProperty(name) {
				n.PresentationAttrs = append(n.PresentationAttrs, style.Declaration{Property: name, Value: a.Value})
			} else {
				n.Attrs[name] = a.Value
			}
		}
	}

	if parent := b.current(); parent != nil {
		n.Parent = parent
		parent.Children = append(parent.Children, n)
	} else {
		b.root = n
	}
	b.stack = append(b.stack, n)
	b.defs.Register(n)

	if se.Name.Local == "style" {
		b.inStyleText = true
		b.styleText.Reset()
	}
}

func (b *builder) endElement(name string) {
	if name == "style" {
		b.inStyleText = false
		if sheet, err := style.ParseStylesheet(b.styleText.String()); err == nil {
			b.sheet.Rules = append(b.sheet.Rules, sheet.Rules...)
		}
	}
	if len(b.stack) > 0 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

func (b *builder) charData(data []byte) {
	if b.inStyleText {
		b.styleText.Write(data)
		return
	}
	if cur := b.current(); cur != nil && (cur.Kind == KindTitle || cur.Kind == KindDesc || cur.Kind == KindCharsBucket || cur.Kind == KindTSpan || cur.Kind == KindText) {
		cur.Text += string(data)
	}
}

func splitOnSpace(s string) []string {
	return strings.Fields(s)
}

// parseInlineStyle splits a style="prop:val;prop:val" attribute into
// declarations, honoring a trailing "!important" the same way the CSS
// tokenizer does for <style> rules (spec.md §4.2).
func parseInlineStyle(v string) []style.Declaration {
	var out []style.Declaration
	for _, pair := range strings.Split(v, ";") {
		k, val, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		val = strings.TrimSpace(val)
		important := false
		if strings.HasSuffix(val, "!important") {
			important = true
			val = strings.TrimSpace(strings.TrimSuffix(val, "!important"))
		}
		if k == "" {
			continue
		}
		out = append(out, style.Declaration{Property: k, Value: val, Important: important})
	}
	return out
}
