package handlers

import (
	"anonforum/internal/disclosure"
	"anonforum/internal/middleware"
	"anonforum/internal/models"
	"net/http"
	"strconv"
	"time"
)

// Every author field below goes through disclosure.ResolveDisplayName; the
// account display name is never copied into a response directly.

type ThreadResponse struct {
	ThreadID  string    `json:"threadId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Slug      string    `json:"slug"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PostResponse struct {
	PostID          string         `json:"postId"`
	ThreadID        string         `json:"threadId"`
	ThreadTitle     *string        `json:"threadTitle,omitempty"`
	Content         string         `json:"content"`
	IsSensitive     bool           `json:"isSensitive"`
	ContentWarnings []string       `json:"contentWarnings"`
	Author          string         `json:"author"`
	Images          []models.Image `json:"images"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

type CommentResponse struct {
	CommentID   string    `json:"commentId"`
	PostID      string    `json:"postId"`
	ParentID    *string   `json:"parentId"`
	Content     string    `json:"content"`
	IsAnonymous bool      `json:"isAnonymous"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"createdAt"`
}

type PaginationResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func newThreadResponse(t models.ThreadView) ThreadResponse {
	return ThreadResponse{
		ThreadID:  t.ThreadID,
		Title:     t.Title,
		Body:      t.Body,
		Slug:      t.Slug,
		Category:  t.Category,
		Author:    disclosure.ResolveDisplayName(false, t.Category, t.AliasName, t.DisplayUsername),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func newPostResponse(p models.PostView) PostResponse {
	warnings := []string(p.ContentWarnings)
	if warnings == nil {
		warnings = []string{}
	}
	images := p.Images
	if images == nil {
		images = []models.Image{}
	}

	return PostResponse{
		PostID:          p.PostID,
		ThreadID:        p.ThreadID,
		ThreadTitle:     p.ThreadTitle,
		Content:         p.Content,
		IsSensitive:     p.IsSensitive,
		ContentWarnings: warnings,
		Author:          disclosure.ResolveDisplayName(p.IsSensitive, deref(p.ThreadCategory), p.AliasName, p.DisplayUsername),
		Images:          images,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func newCommentResponse(c models.CommentView) CommentResponse {
	return CommentResponse{
		CommentID:   c.CommentID,
		PostID:      c.PostID,
		ParentID:    c.ParentID,
		Content:     c.Content,
		IsAnonymous: c.IsAnonymous,
		Author:      disclosure.ResolveDisplayName(c.IsAnonymous || c.PostIsSensitive, deref(c.ThreadCategory), c.AliasName, c.DisplayUsername),
		CreatedAt:   c.CreatedAt,
	}
}

// requireUser answers 401 when the request carries no signed-in identity.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := middleware.IdentityFrom(r.Context())
	if !id.IsAuthenticated || id.UserID == "" {
		WriteError(w, "Authentification requise", http.StatusUnauthorized)
		return "", false
	}
	return id.UserID, true
}

func pagination(r *http.Request) (page, limit, offset int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}
