// Package view builds the HTML fragments of the directory page: option
// lists, post articles and their collapsed comment sections.
package view

import (
	"bytes"
	"strconv"

	"employeedir/app/models"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PostIDAttr tags a toggle button and its comments section with a post id.
const PostIDAttr = "data-post-id"

// CreateElement returns a tag element holding text. The text child is
// created even when text is empty. An empty className sets no class.
func CreateElement(tag, text, className string) *html.Node {
	n := NewElement(tag)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	if className != "" {
		SetAttr(n, "class", className)
	}
	return n
}

// NewElement returns an empty tag element.
func NewElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// CreateOptionList returns one option per user. A nil users slice yields nil
// so callers can tell "no data yet" from "zero users".
func CreateOptionList(users []models.User) []*html.Node {
	if users == nil {
		return nil
	}
	options := make([]*html.Node, 0, len(users))
	for _, user := range users {
		option := CreateElement("option", user.Name, "")
		SetAttr(option, "value", strconv.Itoa(user.ID))
		options = append(options, option)
	}
	return options
}

// DeleteChildElements removes every child of parent and returns it.
func DeleteChildElements(parent *html.Node) *html.Node {
	if parent == nil {
		return nil
	}
	for c := parent.LastChild; c != nil; c = parent.LastChild {
		parent.RemoveChild(c)
	}
	return parent
}

// Append adds children to parent in order.
func Append(parent *html.Node, children ...*html.Node) {
	for _, c := range children {
		parent.AppendChild(c)
	}
}

// Attr returns the value of attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets attribute key on n, replacing any previous value.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes attribute key from n.
func RemoveAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}

// SetPostID tags n with a post id.
func SetPostID(n *html.Node, postID int) {
	SetAttr(n, PostIDAttr, strconv.Itoa(postID))
}

// PostID reads the post id tag of n. It reports false for a missing or
// non-positive tag.
func PostID(n *html.Node) (int, bool) {
	val, ok := Attr(n, PostIDAttr)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(val)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Select wraps n in a goquery selection.
func Select(n *html.Node) *goquery.Selection {
	return goquery.NewDocumentFromNode(n).Selection
}

// Text returns the text content of n.
func Text(n *html.Node) string {
	return Select(n).Text()
}

// Render serialises n to HTML.
func Render(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}
