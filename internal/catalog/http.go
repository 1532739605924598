// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/velora/velora/internal/platform/request"
	"github.com/velora/velora/internal/platform/respond"
)

// # HTTP Handler

// Handler exposes the catalog over HTTP. Browsing is public; no session
// is required.
type Handler struct {
	provider Provider
	genres   []string
}

// NewHandler creates the catalog HTTP handler.
func NewHandler(provider Provider, genres []string) *Handler {
	return &Handler{provider: provider, genres: genres}
}

// Routes returns the router for the /catalog subtree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/featured", handler.featured)
	router.Get("/genres", handler.listGenres)
	router.Get("/genres/{genre}", handler.byGenre)
	router.Get("/search", handler.search)

	return router
}

func (handler *Handler) featured(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.provider.GetFeatured(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.genres)
}

func (handler *Handler) byGenre(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.provider.GetByGenre(request.Context(), requestutil.Param(request, "genre"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, items)
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.provider.Search(request.Context(), request.URL.Query().Get("q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, items)
}
