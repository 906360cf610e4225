package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"employeedir/app/repositories"
	"employeedir/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// MirrorController serves the read-only directory API from the mirror store
type MirrorController struct {
	service *services.MirrorService
	log     *zap.Logger
}

// NewMirrorController creates a new MirrorController
func NewMirrorController(service *services.MirrorService, log *zap.Logger) *MirrorController {
	if log == nil {
		log = zap.NewNop()
	}
	return &MirrorController{service: service, log: log}
}

// Users handles GET /users
func (mc *MirrorController) Users(w http.ResponseWriter, r *http.Request) {
	users, err := mc.service.ListUsers()
	if err != nil {
		mc.sendError(w, "Failed to fetch users", err)
		return
	}
	sendJSON(w, http.StatusOK, users)
}

// User handles GET /users/{id}
func (mc *MirrorController) User(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
		return
	}

	user, err := mc.service.GetUser(id)
	if err != nil {
		mc.sendError(w, "Failed to fetch user", err)
		return
	}
	sendJSON(w, http.StatusOK, user)
}

// Posts handles GET /posts?userId={id}
func (mc *MirrorController) Posts(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.URL.Query().Get("userId"))
	if err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": "userId query parameter is required"})
		return
	}

	posts, err := mc.service.ListPosts(userID)
	if err != nil {
		mc.sendError(w, "Failed to fetch posts", err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Comments handles GET /comments?postId={id}
func (mc *MirrorController) Comments(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(r.URL.Query().Get("postId"))
	if err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": "postId query parameter is required"})
		return
	}

	comments, err := mc.service.ListComments(postID)
	if err != nil {
		mc.sendError(w, "Failed to fetch comments", err)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

func (mc *MirrorController) sendError(w http.ResponseWriter, message string, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		// jsonplaceholder answers unknown ids with an empty object
		sendJSON(w, http.StatusNotFound, map[string]string{})
		return
	}
	mc.log.Error(message, zap.Error(err))
	sendJSON(w, http.StatusInternalServerError, map[string]string{"error": message})
}
