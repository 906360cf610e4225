// Package page owns the directory document: the employee dropdown, the main
// display area, the click listeners bound to toggle buttons and the refresh
// pipeline that rebuilds the display when the selection changes.
package page

import (
	"context"
	"io"
	"sync"

	"employeedir/app/models"
	"employeedir/app/view"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Placeholder is shown in the display area until posts are rendered.
const Placeholder = "Select an Employee to display their posts."

// Source is the API client surface the page reads from.
type Source interface {
	view.Fetcher
	FetchUsers(ctx context.Context) []models.User
	FetchUserPosts(ctx context.Context, userID int) []models.Post
}

// Event is a UI event delivered to the page. Target is the control or
// button it originated from.
type Event struct {
	Target  *html.Node
	Handled bool
}

// Listener handles a click on a bound button.
type Listener func(ev *Event)

// State is the result of the last completed selection.
type State struct {
	UserID int
	Posts  []models.Post
}

// toggle pairs a comments section with its button. visible mirrors the
// section's class and the button's label.
type toggle struct {
	section *html.Node
	button  *html.Node
	visible bool
}

// Page is the in-memory directory document. All mutations are serialised
// by mu; network fetches happen outside it.
type Page struct {
	mu         sync.Mutex
	doc        *html.Node
	selectMenu *html.Node
	main       *html.Node

	source   Source
	renderer *view.Renderer
	log      *zap.Logger

	listeners map[*html.Node]Listener
	toggles   map[int]*toggle

	generation uint64
	cancel     context.CancelFunc
	state      State
}

// New builds an empty directory document.
func New(source Source, renderer *view.Renderer, log *zap.Logger) *Page {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Page{
		source:    source,
		renderer:  renderer,
		log:       log,
		listeners: make(map[*html.Node]Listener),
		toggles:   make(map[int]*toggle),
	}
	p.buildDocument()
	return p
}

func (p *Page) buildDocument() {
	p.doc = &html.Node{Type: html.DocumentNode}
	p.doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := view.NewElement("html")
	head := view.NewElement("head")
	head.AppendChild(view.CreateElement("title", "Employee Directory", ""))

	body := view.NewElement("body")
	header := view.NewElement("header")
	form := view.NewElement("form")
	view.SetAttr(form, "method", "POST")
	view.SetAttr(form, "action", "/select")

	p.selectMenu = view.NewElement("select")
	view.SetAttr(p.selectMenu, "id", "selectMenu")
	view.SetAttr(p.selectMenu, "name", "userId")
	first := view.CreateElement("option", "Select an Employee", "")
	view.SetAttr(first, "value", "")
	p.selectMenu.AppendChild(first)

	submit := view.CreateElement("button", "Show Posts", "")
	view.SetAttr(submit, "type", "submit")
	view.Append(form, p.selectMenu, submit)
	view.Append(header, view.CreateElement("h1", "Employee Directory", ""), form)

	p.main = view.NewElement("main")

	// toggle buttons in main submit this form through their form attribute
	toggleForm := view.NewElement("form")
	view.SetAttr(toggleForm, "id", "toggle")
	view.SetAttr(toggleForm, "method", "POST")
	view.SetAttr(toggleForm, "action", "/toggle")

	view.Append(body, header, p.main, toggleForm)
	view.Append(root, head, body)
	p.doc.AppendChild(root)
}

// Main returns the display area.
func (p *Page) Main() *html.Node {
	return p.main
}

// SelectMenu returns the employee dropdown.
func (p *Page) SelectMenu() *html.Node {
	return p.selectMenu
}

// Render writes the whole document as HTML.
func (p *Page) Render(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return html.Render(w, p.doc)
}

// State returns the last completed selection.
func (p *Page) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Visibility reports, per bound post id, whether its comments are shown.
func (p *Page) Visibility() map[int]bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[int]bool, len(p.toggles))
	for id, t := range p.toggles {
		out[id] = t.visible
	}
	return out
}
