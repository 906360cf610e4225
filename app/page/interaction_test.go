package page

import (
	"context"
	"testing"

	"employeedir/app/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func selectedPage(t *testing.T) *Page {
	p := newTestPage(newFakeSource())
	_, err := p.OnSelectionChange(context.Background(), p.Select(1))
	require.NoError(t, err)
	return p
}

func sectionFor(p *Page, postID int) *html.Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.find("section", postID)
}

func assertHidden(t *testing.T, p *Page, postID int, hidden bool) {
	t.Helper()
	section := sectionFor(p, postID)
	require.NotNil(t, section)
	assert.Equal(t, hidden, view.Select(section).HasClass("hide"))
	want := view.HideComments
	if hidden {
		want = view.ShowComments
	}
	assert.Equal(t, want, view.Text(p.Button(postID)))
}

func TestClickTogglesComments(t *testing.T) {
	p := selectedPage(t)
	button := p.Button(7)
	require.NotNil(t, button)
	assertHidden(t, p, 7, true)

	ev := p.Click(button)
	assert.True(t, ev.Handled)
	assertHidden(t, p, 7, false)
	assert.True(t, p.Visibility()[7])

	p.Click(button)
	assertHidden(t, p, 7, true)
	assert.False(t, p.Visibility()[7])

	// the other post is untouched
	assertHidden(t, p, 1, true)
}

func TestToggleCommentsRoundTrip(t *testing.T) {
	p := selectedPage(t)
	before := view.Render(p.Main())

	section, button := p.ToggleComments(&Event{}, 1)
	assert.Same(t, sectionFor(p, 1), section)
	assert.Same(t, p.Button(1), button)
	assert.NotEqual(t, before, view.Render(p.Main()))

	p.ToggleComments(&Event{}, 1)
	assert.Equal(t, before, view.Render(p.Main()))
}

func TestToggleCommentsWithoutInput(t *testing.T) {
	p := selectedPage(t)
	section, button := p.ToggleComments(nil, 0)
	assert.Nil(t, section)
	assert.Nil(t, button)
}

func TestToggleCommentsUnknownPost(t *testing.T) {
	p := selectedPage(t)
	ev := &Event{}
	section, button := p.ToggleComments(ev, 404)
	assert.True(t, ev.Handled)
	assert.Nil(t, section)
	assert.Nil(t, button)
}

func TestToggleCommentsMissingSection(t *testing.T) {
	p := selectedPage(t)
	p.DetachListeners()
	section := sectionFor(p, 7)
	section.Parent.RemoveChild(section)
	p.AttachListeners()

	gotSection, gotButton := p.ToggleComments(&Event{}, 7)
	assert.Nil(t, gotSection)
	require.NotNil(t, gotButton)
	assert.Equal(t, view.HideComments, view.Text(gotButton))
}

func TestDetachListeners(t *testing.T) {
	p := selectedPage(t)
	button := p.Button(7)

	detached := p.DetachListeners()
	assert.Len(t, detached, 2)
	assert.Empty(t, p.Visibility())
	_, bound := view.Attr(button, "form")
	assert.False(t, bound)

	before := view.Render(p.Main())
	ev := p.Click(button)
	assert.False(t, ev.Handled)
	assert.Equal(t, before, view.Render(p.Main()))
}

func TestAttachListeners(t *testing.T) {
	p := newTestPage(newFakeSource())
	assert.Empty(t, p.AttachListeners())

	// a button without a post id is scanned but never bound
	stray := view.CreateElement("button", "stray", "")
	p.Main().AppendChild(stray)
	buttons := p.AttachListeners()
	assert.Len(t, buttons, 1)
	assert.False(t, p.Click(stray).Handled)

	form, _ := view.Attr(stray, "form")
	assert.Empty(t, form)
}
