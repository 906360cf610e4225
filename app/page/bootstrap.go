package page

import (
	"context"

	"employeedir/app/models"
	"employeedir/app/view"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Init fetches the users, fills the dropdown and shows the placeholder.
func (p *Page) Init(ctx context.Context) ([]models.User, *html.Node) {
	users := p.source.FetchUsers(ctx)
	selectMenu := p.PopulateSelectMenu(users)
	if _, err := p.DisplayPosts(ctx, nil); err != nil {
		p.log.Error("failed to show placeholder", zap.Error(err))
	}
	p.log.Info("page initialised", zap.Int("users", len(users)))
	return users, selectMenu
}

// PopulateSelectMenu appends one option per user to the dropdown. nil users
// return nil.
func (p *Page) PopulateSelectMenu(users []models.User) *html.Node {
	if users == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	view.Append(p.selectMenu, view.CreateOptionList(users)...)
	return p.selectMenu
}
