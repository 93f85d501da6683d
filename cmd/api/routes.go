package main

import (
	handlers "anonforum/internal/handler"
	"net/http"

	"github.com/gorilla/mux"
)

func newRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/stats", h.Stats).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/refresh-token", h.RefreshToken).Methods(http.MethodPost)

	r.HandleFunc("/api/me", h.GetMe).Methods(http.MethodGet)
	r.HandleFunc("/api/me", h.UpdateMe).Methods(http.MethodPut)
	r.HandleFunc("/api/me", h.DeleteMe).Methods(http.MethodDelete)

	r.HandleFunc("/api/aliases", h.ListAliases).Methods(http.MethodGet)
	r.HandleFunc("/api/aliases", h.CreateAlias).Methods(http.MethodPost)
	r.HandleFunc("/api/aliases/available", h.CheckAliasAvailability).Methods(http.MethodGet)

	r.HandleFunc("/api/threads", h.ListThreads).Methods(http.MethodGet)
	r.HandleFunc("/api/threads", h.CreateThread).Methods(http.MethodPost)
	r.HandleFunc("/api/threads/{id}", h.GetThread).Methods(http.MethodGet)
	r.HandleFunc("/api/threads/{id}/posts", h.ListThreadPosts).Methods(http.MethodGet)
	r.HandleFunc("/api/threads/{id}/posts", h.CreateThreadPost).Methods(http.MethodPost)

	r.HandleFunc("/api/posts", h.ListPosts).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/{id}/comments", h.ListComments).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/{id}/comments", h.CreateComment).Methods(http.MethodPost)
	r.HandleFunc("/api/posts/{id}/images", h.AddPostImage).Methods(http.MethodPost)
	r.HandleFunc("/api/posts/{id}/images/{imageId}", h.DeletePostImage).Methods(http.MethodDelete)

	return r
}
