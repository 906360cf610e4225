package page

import (
	"context"
	"errors"
	"strconv"

	"employeedir/app/models"
	"employeedir/app/view"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// ErrSuperseded is returned by a refresh that finished after a newer
// selection had started. Its render is discarded.
var ErrSuperseded = errors.New("refresh superseded by a newer selection")

// RefreshResult holds the four steps of a refresh.
type RefreshResult struct {
	Detached []*html.Node
	Main     *html.Node
	Rendered []*html.Node
	Attached []*html.Node
}

// SelectionResult is returned by OnSelectionChange.
type SelectionResult struct {
	UserID  int
	Posts   []models.Post
	Refresh *RefreshResult
}

// DisplayPosts appends rendered posts to the display area. nil posts show
// the placeholder instead; an empty slice appends nothing.
func (p *Page) DisplayPosts(ctx context.Context, posts []models.Post) ([]*html.Node, error) {
	nodes, err := p.render(ctx, posts)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	view.Append(p.main, nodes...)
	return nodes, nil
}

// Refresh replaces the display area with posts: detach listeners, clear,
// render, attach listeners. nil posts return nil without touching the page.
func (p *Page) Refresh(ctx context.Context, posts []models.Post) (*RefreshResult, error) {
	if posts == nil {
		return nil, nil
	}
	ctx, gen := p.begin(ctx)
	defer p.end(gen)
	return p.refresh(ctx, gen, posts)
}

// OnSelectionChange loads the posts of the user selected in ev's control
// and refreshes the display. The control is disabled while it runs. A nil
// event or control leaves the page untouched and reports user 1.
func (p *Page) OnSelectionChange(ctx context.Context, ev *Event) (*SelectionResult, error) {
	if ev == nil || ev.Target == nil {
		return &SelectionResult{UserID: 1, Posts: []models.Post{}}, nil
	}
	control := ev.Target

	p.mu.Lock()
	ctx, gen, userID := p.startSelection(ctx, control)
	p.mu.Unlock()

	return p.loadSelection(ctx, control, gen, userID)
}

// ChangeSelection selects userID in the dropdown and handles the resulting
// change event. The option is marked and read back under one lock, so
// concurrent changes never load each other's user.
func (p *Page) ChangeSelection(ctx context.Context, userID int) (*SelectionResult, error) {
	p.mu.Lock()
	p.selectOption(userID)
	ctx, gen, selected := p.startSelection(ctx, p.selectMenu)
	p.mu.Unlock()

	return p.loadSelection(ctx, p.selectMenu, gen, selected)
}

// Select marks the option with value userID as selected and returns the
// change event the dropdown would fire.
func (p *Page) Select(userID int) *Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.selectOption(userID)
	return &Event{Target: p.selectMenu}
}

// startSelection disables control, reads its value and opens a generation.
// Callers hold p.mu.
func (p *Page) startSelection(ctx context.Context, control *html.Node) (context.Context, uint64, int) {
	view.SetAttr(control, "disabled", "")
	userID := selectedUserID(control)
	ctx, gen := p.nextGeneration(ctx)
	return ctx, gen, userID
}

func (p *Page) loadSelection(ctx context.Context, control *html.Node, gen uint64, userID int) (*SelectionResult, error) {
	defer func() {
		p.mu.Lock()
		if gen == p.generation {
			view.RemoveAttr(control, "disabled")
		}
		p.mu.Unlock()
		p.end(gen)
	}()

	posts := p.source.FetchUserPosts(ctx, userID)

	// a fetch cut short by cancellation did not complete and must not be
	// shown as an empty result
	p.mu.Lock()
	err := p.abandoned(ctx, gen)
	p.mu.Unlock()
	if err != nil {
		p.log.Debug("selection abandoned", zap.Int("user_id", userID), zap.Error(err))
		return &SelectionResult{UserID: userID, Posts: posts}, err
	}
	if posts == nil {
		posts = []models.Post{}
	}

	result, err := p.refresh(ctx, gen, posts)
	if err != nil {
		p.log.Warn("refresh failed", zap.Int("user_id", userID), zap.Error(err))
	}

	p.mu.Lock()
	if gen == p.generation && err == nil {
		p.state = State{UserID: userID, Posts: posts}
	}
	p.mu.Unlock()

	return &SelectionResult{UserID: userID, Posts: posts, Refresh: result}, err
}

func (p *Page) selectOption(userID int) {
	value := strconv.Itoa(userID)
	view.Select(p.selectMenu).Find("option").Each(func(_ int, s *goquery.Selection) {
		if v, _ := s.Attr("value"); v == value {
			s.SetAttr("selected", "")
		} else {
			s.RemoveAttr("selected")
		}
	})
}

// abandoned reports why work for gen must not reach the page: ErrSuperseded
// when a newer generation exists, ctx's error when the caller gave up.
// Callers hold p.mu.
func (p *Page) abandoned(ctx context.Context, gen uint64) error {
	if gen != p.generation {
		return ErrSuperseded
	}
	return ctx.Err()
}

// begin starts a new generation and cancels the previous one.
func (p *Page) begin(ctx context.Context) (context.Context, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nextGeneration(ctx)
}

// nextGeneration is begin for callers holding p.mu.
func (p *Page) nextGeneration(ctx context.Context) (context.Context, uint64) {
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	p.generation++
	p.cancel = cancel
	return ctx, p.generation
}

func (p *Page) end(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen == p.generation && p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Page) refresh(ctx context.Context, gen uint64, posts []models.Post) (*RefreshResult, error) {
	p.mu.Lock()
	err := p.abandoned(ctx, gen)
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}

	// render before touching main so that a superseded or cancelled render
	// leaves the previous display in place
	nodes, err := p.render(ctx, posts)

	p.mu.Lock()
	defer p.mu.Unlock()
	if abandon := p.abandoned(ctx, gen); abandon != nil {
		p.log.Debug("discarding render", zap.Uint64("generation", gen), zap.Error(abandon))
		return nil, abandon
	}

	result := &RefreshResult{}
	result.Detached = p.detachListeners()
	result.Main = view.DeleteChildElements(p.main)
	if err != nil {
		return result, err
	}
	view.Append(p.main, nodes...)
	result.Rendered = nodes
	result.Attached = p.attachListeners()
	return result, nil
}

func (p *Page) render(ctx context.Context, posts []models.Post) ([]*html.Node, error) {
	if posts == nil {
		return []*html.Node{view.CreateElement("p", Placeholder, "default-text")}, nil
	}
	return p.renderer.BuildPosts(ctx, posts)
}

// selectedUserID reads the dropdown value, defaulting to 1.
func selectedUserID(control *html.Node) int {
	sel := view.Select(control).Find("option[selected]")
	if sel.Length() == 0 {
		sel = view.Select(control).Find("option").First()
	}
	value, _ := sel.Attr("value")
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 1
	}
	return id
}
