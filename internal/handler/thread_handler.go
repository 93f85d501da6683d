package handlers

import (
	"anonforum/internal/models"
	"anonforum/internal/service"
	"net/http"

	"github.com/gorilla/mux"
)

type CreateThreadRequest struct {
	service.CreateThreadRequest
	AliasID *string `json:"aliasId"`
}

type ThreadListResponse struct {
	Threads    []ThreadResponse   `json:"threads"`
	Pagination PaginationResponse `json:"pagination"`
}

func (h *Handlers) ListThreads(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pagination(r)
	category := r.URL.Query().Get("category")

	threads, err := h.ThreadService.ListThreads(r.Context(), category, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := ThreadListResponse{
		Threads:    make([]ThreadResponse, 0, len(threads)),
		Pagination: PaginationResponse{Page: page, Limit: limit},
	}
	for _, t := range threads {
		resp.Threads = append(resp.Threads, newThreadResponse(t))
	}

	writeSuccess(w, resp, http.StatusOK)
}

func (h *Handlers) CreateThread(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateThreadRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	var (
		thread *models.Thread
		err    error
	)
	if req.AliasID != nil && *req.AliasID != "" {
		thread, err = h.ThreadService.CreateThreadWithAlias(r.Context(), userID, *req.AliasID, req.CreateThreadRequest)
	} else {
		thread, err = h.ThreadService.CreateThread(r.Context(), userID, req.CreateThreadRequest)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, thread, http.StatusCreated)
}

func (h *Handlers) GetThread(w http.ResponseWriter, r *http.Request) {
	thread, err := h.ThreadService.GetThread(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, newThreadResponse(*thread), http.StatusOK)
}
