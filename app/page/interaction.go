package page

import (
	"fmt"
	"strconv"

	"employeedir/app/view"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// AttachListeners binds a click listener to every button in the display
// area that carries a post id and records its section/button pair. It
// returns the scanned buttons.
func (p *Page) AttachListeners() []*html.Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attachListeners()
}

// DetachListeners removes the listeners bound by AttachListeners and
// discards the recorded pairs. It returns the scanned buttons.
func (p *Page) DetachListeners() []*html.Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.detachListeners()
}

// ToggleComments flips the comments of postID between hidden and shown and
// marks ev as handled. A missing section or button skips that half.
func (p *Page) ToggleComments(ev *Event, postID int) (section, button *html.Node) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.toggleComments(ev, postID)
}

// Click delivers a click to button. Buttons without a listener ignore it.
func (p *Page) Click(button *html.Node) *Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	ev := &Event{Target: button}
	if listener, ok := p.listeners[button]; ok {
		listener(ev)
	}
	return ev
}

// Button returns the display-area button tagged with postID, bound or not.
func (p *Page) Button(postID int) *html.Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.find("button", postID)
}

func (p *Page) buttons() *goquery.Selection {
	return goquery.NewDocumentFromNode(p.doc).Find("main button")
}

func (p *Page) find(tag string, postID int) *html.Node {
	sel := goquery.NewDocumentFromNode(p.doc).Find(fmt.Sprintf(`main %s[%s="%d"]`, tag, view.PostIDAttr, postID))
	if sel.Length() == 0 {
		return nil
	}
	return sel.Get(0)
}

func (p *Page) attachListeners() []*html.Node {
	buttons := p.buttons()
	buttons.Each(func(_ int, s *goquery.Selection) {
		button := s.Get(0)
		postID, ok := view.PostID(button)
		if !ok {
			return
		}
		p.listeners[button] = func(ev *Event) {
			p.toggleComments(ev, postID)
		}
		p.toggles[postID] = p.locate(postID)

		view.SetAttr(button, "type", "submit")
		view.SetAttr(button, "form", "toggle")
		view.SetAttr(button, "name", "postId")
		view.SetAttr(button, "value", strconv.Itoa(postID))
	})
	return buttons.Nodes
}

func (p *Page) detachListeners() []*html.Node {
	buttons := p.buttons()
	buttons.Each(func(_ int, s *goquery.Selection) {
		button := s.Get(0)
		if _, ok := view.PostID(button); !ok {
			return
		}
		delete(p.listeners, button)
		for _, key := range []string{"type", "form", "name", "value"} {
			view.RemoveAttr(button, key)
		}
	})
	p.toggles = make(map[int]*toggle)
	return buttons.Nodes
}

// locate finds the pair for postID in the document. The visible flag is
// read from the section class, or from the button label without a section.
func (p *Page) locate(postID int) *toggle {
	t := &toggle{
		section: p.find("section", postID),
		button:  p.find("button", postID),
	}
	switch {
	case t.section != nil:
		t.visible = !view.Select(t.section).HasClass("hide")
	case t.button != nil:
		t.visible = view.Text(t.button) == view.HideComments
	}
	return t
}

func (p *Page) toggleComments(ev *Event, postID int) (*html.Node, *html.Node) {
	if ev == nil && postID == 0 {
		return nil, nil
	}
	if ev != nil {
		ev.Handled = true
	}

	t, ok := p.toggles[postID]
	if !ok {
		t = p.locate(postID)
	}
	t.visible = !t.visible

	if t.section != nil {
		if t.visible {
			view.Select(t.section).RemoveClass("hide")
		} else {
			view.Select(t.section).AddClass("hide")
		}
	}
	if t.button != nil {
		label := view.ShowComments
		if t.visible {
			label = view.HideComments
		}
		view.Select(t.button).SetText(label)
	}
	return t.section, t.button
}
