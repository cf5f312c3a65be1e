package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/kkiihun/global-board/internal/auth"
	"github.com/kkiihun/global-board/internal/db"
	"github.com/kkiihun/global-board/internal/logger"
	"github.com/kkiihun/global-board/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PagesHandler serves the server-rendered pages. The home page resolves the
// session cookie optimistically: a missing or invalid session renders the
// logged-out view instead of failing.
type PagesHandler struct {
	store  *db.Store
	tokens *auth.Tokens
	log    *logger.Logger
}

func NewPagesHandler(store *db.Store, tokens *auth.Tokens, log *logger.Logger) *PagesHandler {
	return &PagesHandler{store: store, tokens: tokens, log: log}
}

type homePageData struct {
	User  *models.User
	Posts []models.Post
}

func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	var cookie string
	if c, err := r.Cookie(auth.SessionCookie); err == nil {
		cookie = c.Value
	}
	user := auth.CurrentUserOptional(r.Context(), h.store, h.tokens, cookie)

	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		h.log.Error("list posts failed", "error", err)
		http.Error(w, "failed to load posts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, "index.html", homePageData{User: user, Posts: posts}); err != nil {
		h.log.Error("render home failed", "error", err)
	}
}

func (h *PagesHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, "login.html", nil); err != nil {
		h.log.Error("render login page failed", "error", err)
	}
}
