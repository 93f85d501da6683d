package handlers

import (
	"anonforum/internal/models"
	"anonforum/internal/service"
	"net/http"

	"github.com/gorilla/mux"
)

type CreateCommentRequest struct {
	service.CreateCommentRequest
	AliasID *string `json:"aliasId"`
}

func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.CommentService.ListCommentsByPost(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		resp = append(resp, newCommentResponse(c))
	}

	writeSuccess(w, resp, http.StatusOK)
}

// CreateComment handles top-level comments and replies. A parentId in the
// body makes it a reply.
func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	req.PostID = mux.Vars(r)["id"]
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	var (
		comment *models.Comment
		err     error
	)
	switch {
	case req.AliasID != nil && *req.AliasID != "":
		comment, err = h.CommentService.CreateCommentWithAlias(r.Context(), userID, *req.AliasID, req.CreateCommentRequest)
	case req.ParentID != nil:
		comment, err = h.CommentService.CreateReply(r.Context(), userID, req.CreateCommentRequest)
	default:
		comment, err = h.CommentService.CreateComment(r.Context(), userID, req.CreateCommentRequest)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, comment, http.StatusCreated)
}
