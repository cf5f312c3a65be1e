package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kkiihun/global-board/internal/db"
	"github.com/kkiihun/global-board/internal/logger"
	"github.com/kkiihun/global-board/internal/middleware"
)

// PostsHandler implements the owner-gated post mutations. All three
// endpoints sit behind middleware.Session, so the current user is always
// present in the request context.
type PostsHandler struct {
	store *db.Store
	log   *logger.Logger
}

func NewPostsHandler(store *db.Store, log *logger.Logger) *PostsHandler {
	return &PostsHandler{store: store, log: log}
}

type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func decodePostRequest(w http.ResponseWriter, r *http.Request) (PostRequest, bool) {
	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return req, false
	}
	if req.Title == "" || req.Content == "" {
		respondError(w, http.StatusBadRequest, "title and content required")
		return req, false
	}
	return req, true
}

func postID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return 0, false
	}
	return id, true
}

func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "login required")
		return
	}
	req, ok := decodePostRequest(w, r)
	if !ok {
		return
	}

	created, err := h.store.CreatePost(r.Context(), req.Title, req.Content, user.ID)
	if err != nil {
		h.log.Error("create post failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create post")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "login required")
		return
	}
	id, ok := postID(w, r)
	if !ok {
		return
	}
	req, ok := decodePostRequest(w, r)
	if !ok {
		return
	}

	post, err := h.store.GetPostByID(r.Context(), id)
	if err != nil {
		h.log.Error("load post failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load post")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}
	if post.OwnerID != user.ID {
		respondError(w, http.StatusForbidden, "not the owner")
		return
	}

	updated, err := h.store.UpdatePost(r.Context(), id, req.Title, req.Content)
	if err != nil {
		h.log.Error("update post failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update post")
		return
	}
	if updated == nil {
		// Deleted between the ownership check and the update.
		respondError(w, http.StatusNotFound, "post not found")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "login required")
		return
	}
	id, ok := postID(w, r)
	if !ok {
		return
	}

	post, err := h.store.GetPostByID(r.Context(), id)
	if err != nil {
		h.log.Error("load post failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load post")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}
	if post.OwnerID != user.ID {
		respondError(w, http.StatusForbidden, "not the owner")
		return
	}

	if err := h.store.DeletePost(r.Context(), id); err != nil {
		h.log.Error("delete post failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete post")
		return
	}
	respondMsg(w, http.StatusOK, "post deleted")
}
