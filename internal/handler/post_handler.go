package handlers

import (
	"anonforum/internal/models"
	"anonforum/internal/service"
	"net/http"

	"github.com/gorilla/mux"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type CreatePostRequest struct {
	service.CreatePostRequest
	AliasID *string `json:"aliasId"`
}

type PostListResponse struct {
	Posts      []PostResponse     `json:"posts"`
	Pagination PaginationResponse `json:"pagination"`
}

func newPostList(posts []models.PostView) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPostResponse(p))
	}
	return out
}

func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pagination(r)

	posts, err := h.PostService.ListPosts(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, PostListResponse{
		Posts:      newPostList(posts),
		Pagination: PaginationResponse{Page: page, Limit: limit},
	}, http.StatusOK)
}

func (h *Handlers) ListThreadPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.ListPostsByThread(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, newPostList(posts), http.StatusOK)
}

func (h *Handlers) CreateThreadPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreatePostRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	// the path wins over whatever the body says
	req.ThreadID = mux.Vars(r)["id"]

	var (
		post *models.Post
		err  error
	)
	if req.AliasID != nil && *req.AliasID != "" {
		post, err = h.PostService.CreatePostWithAlias(r.Context(), userID, *req.AliasID, req.CreatePostRequest)
	} else {
		post, err = h.PostService.CreatePost(r.Context(), userID, req.CreatePostRequest)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) AddPostImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Fichier trop volumineux ou formulaire invalide", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeFieldError(w, "Image manquante", "image", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !allowedImageTypes[header.Header.Get("Content-Type")] {
		writeFieldError(w, "Type de fichier non autorisé", "image", http.StatusBadRequest)
		return
	}

	image, err := h.PostService.AddImage(r.Context(), userID, mux.Vars(r)["id"], header.Filename, file, header.Size)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, image, http.StatusCreated)
}

func (h *Handlers) DeletePostImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	if err := h.PostService.DeleteImage(r.Context(), userID, vars["id"], vars["imageId"]); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
