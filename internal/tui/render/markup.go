package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"infobubble/internal/bubble"
	"infobubble/pkg/logging"
)

var blockTags = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Ul: true, atom.Ol: true, atom.Li: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Table: true, atom.Tr: true, atom.Blockquote: true, atom.Pre: true,
	atom.Section: true, atom.Article: true, atom.Header: true, atom.Footer: true,
	atom.Hr: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
}

var inlineTags = map[atom.Atom]inline{
	atom.B: inlineBold, atom.Strong: inlineBold,
	atom.H1: inlineBold, atom.H2: inlineBold, atom.H3: inlineBold,
	atom.H4: inlineBold, atom.H5: inlineBold, atom.H6: inlineBold,
	atom.I: inlineItalic, atom.Em: inlineItalic, atom.Cite: inlineItalic,
	atom.U: inlineUnderline, atom.A: inlineUnderline,
	atom.Code: inlineFaint, atom.Kbd: inlineFaint, atom.Small: inlineFaint,
	atom.S: inlineStrike, atom.Del: inlineStrike, atom.Strike: inlineStrike,
	atom.Pre: inlinePre,
}

var fragmentContext = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}

// parseInto appends the parsed markup to parent. Markup that is not HTML
// at all still parses as a single text run.
func (r *Renderer) parseInto(parent *Node, markup string) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), fragmentContext)
	if err != nil {
		logging.Debug("Render", "markup fell back to text: %v", err)
		parent.Append(r.textNode(markup, 0))
		return
	}
	for _, hn := range nodes {
		r.convert(parent, hn, 0)
	}
}

func (r *Renderer) convert(parent *Node, hn *html.Node, style inline) {
	switch hn.Type {
	case html.TextNode:
		text := hn.Data
		if style&inlinePre == 0 {
			text = collapseSpace(text)
		}
		if text != "" {
			parent.Append(r.textNode(text, style))
		}
	case html.ElementNode:
		switch hn.DataAtom {
		case atom.Script, atom.Style, atom.Head, atom.Title:
			return
		case atom.Img:
			img := r.node(bubble.KindImage)
			img.tag = hn.Data
			img.style = style
			img.Set(bubble.PropSrc, attr(hn, "src"))
			img.Set(bubble.PropAlt, attr(hn, "alt"))
			parent.Append(img)
			return
		case atom.Br:
			br := r.node(bubble.KindBlock)
			br.tag = hn.Data
			parent.Append(br)
			return
		}

		kind := bubble.KindFragment
		if blockTags[hn.DataAtom] {
			kind = bubble.KindBlock
		}
		el := r.node(kind)
		el.tag = hn.Data
		el.style = style | inlineTags[hn.DataAtom]
		parent.Append(el)
		for c := hn.FirstChild; c != nil; c = c.NextSibling {
			r.convert(el, c, el.style)
		}
	}
}

func (r *Renderer) textNode(text string, style inline) *Node {
	n := r.node(bubble.KindText)
	n.text = text
	n.style = style
	return n
}

func attr(hn *html.Node, key string) string {
	for _, a := range hn.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// collapseSpace folds whitespace runs into single spaces.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				b.WriteByte(' ')
			}
			space = true
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return b.String()
}
