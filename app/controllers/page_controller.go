package controllers

import (
	"net/http"
	"strconv"

	"employeedir/app/models"
	"employeedir/app/page"

	"go.uber.org/zap"
)

// PageController serves the directory page and turns form posts into page
// events
type PageController struct {
	page *page.Page
	log  *zap.Logger
}

// NewPageController creates a new PageController
func NewPageController(p *page.Page, log *zap.Logger) *PageController {
	if log == nil {
		log = zap.NewNop()
	}
	return &PageController{page: p, log: log}
}

// Show renders the current document
func (pc *PageController) Show(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pc.page.Render(w); err != nil {
		pc.log.Error("render failed", zap.Error(err))
	}
}

// Select handles a dropdown change
func (pc *PageController) Select(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	// an empty or invalid value falls through to the default user
	userID, _ := strconv.Atoi(r.FormValue("userId"))

	if _, err := pc.page.ChangeSelection(r.Context(), userID); err != nil {
		pc.log.Warn("selection change incomplete", zap.Int("user_id", userID), zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Toggle handles a click on a post's comments button
func (pc *PageController) Toggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	postID, err := strconv.Atoi(r.FormValue("postId"))
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	button := pc.page.Button(postID)
	if button == nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	pc.page.Click(button)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// State reports the last selection and the comment visibility per post
func (pc *PageController) State(w http.ResponseWriter, r *http.Request) {
	state := pc.page.State()
	posts := state.Posts
	if posts == nil {
		posts = []models.Post{}
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"userId":  state.UserID,
		"posts":   posts,
		"visible": pc.page.Visibility(),
	})
}
