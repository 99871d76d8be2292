package render

import (
	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/style"
	"github.com/GNOME/librsvg-sub001/tree"
)

// State is one frame of the walker's state stack: the teacher's
// svgicon/parse.go styleStack generalized from "a PathStyle" to "a fully
// resolved Properties plus the current transform and viewport context."
// Push clones the current frame and re-derives it from the child node;
// Pop simply discards the top frame (nothing it owns outlives the push).
type State struct {
	Props     style.Properties
	Transform geometry.Matrix2D
	Ctx       geometry.Context
	UseDepth  int
}

// Stack is a LIFO of States, rooted at the document default style.
type Stack struct {
	frames []State
}

// NewStack seeds a Stack with the initial viewport/DPI context.
func NewStack(ctx geometry.Context) *Stack {
	return &Stack{frames: []State{{Props: style.Default, Transform: geometry.Identity, Ctx: ctx}}}
}

// Top returns the active frame.
func (s *Stack) Top() State { return s.frames[len(s.frames)-1] }

// Push resolves n's style against the top frame and pushes the result,
// returning the new frame so callers can inspect it without a second Top
// call.
func (s *Stack) Push(n *tree.Node, sheet style.Stylesheet) State {
	top := s.Top()
	el := style.Element{
		Tag:     n.TagName,
		ID:      n.ID,
		Classes: n.Classes,
		Attrs:   n.PresentationAttrs,
		Inline:  n.InlineStyle,
	}
	next := top
	next.Props = style.Resolve(top.Props, el, sheet, top.Ctx)
	if n.TransformAttr != "" {
		if m, err := geometry.ParseTransformList(n.TransformAttr, top.Transform); err == nil {
			next.Transform = m
		}
	}
	s.frames = append(s.frames, next)
	return next
}

// Pop discards the active frame.
func (s *Stack) Pop() {
	s.frames = s.frames[:len(s.frames)-1]
}
