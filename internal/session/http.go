// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/velora/velora/internal/platform/request"
	"github.com/velora/velora/internal/platform/respond"
)

// # HTTP Handler

// Handler exposes the session state and its operations over HTTP. All
// routes require an authenticated request.
type Handler struct {
	hub *Hub
}

// NewHandler creates the session HTTP handler.
func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// Routes returns the router for the /me subtree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.state)
	router.Patch("/preferences", handler.updatePreferences)
	router.Get("/subscription", handler.subscription)

	router.Post("/profiles", handler.createProfile)
	router.Patch("/profiles/{profileID}", handler.updateProfile)
	router.Delete("/profiles/{profileID}", handler.deleteProfile)
	router.Post("/profiles/{profileID}/activate", handler.switchProfile)

	router.Post("/interactions", handler.trackInteraction)
	router.Put("/watchlist/{movieID}", handler.addToWatchlist)
	router.Delete("/watchlist/{movieID}", handler.removeFromWatchlist)

	return router
}

// manager resolves the caller's session manager, loading the account
// document on first sight.
func (handler *Handler) manager(request *http.Request) (*Manager, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return nil, err
	}
	return handler.hub.Ensure(request.Context(), claims.UserID, claims.Email, claims.DisplayName), nil
}

// # State

func (handler *Handler) state(writer http.ResponseWriter, request *http.Request) {
	manager, err := handler.manager(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, manager.Snapshot())
}

func (handler *Handler) subscription(writer http.ResponseWriter, request *http.Request) {
	manager, err := handler.manager(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, manager.SubscriptionInfo())
}

// # Preferences

func (handler *Handler) updatePreferences(writer http.ResponseWriter, request *http.Request) {
	manager, err := handler.manager(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var update PreferencesUpdate
	if err := requestutil.DecodeJSON(request, &update); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := manager.UpdatePreferences(request.Context(), update); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, manager.Snapshot().Preferences)
}

// # Profiles

func (handler *Handler) createProfile(writer http.ResponseWriter, request *http.Request) {
	manager, err := handler.manager(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateProfileInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := manager.CreateProfile(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, profile)
}

func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	manager, err := handler.manager(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var update ProfileUpdate
	if err := requestutil.DecodeJSON(request, &update); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := manager.UpdateProfile(request.Context(), requestutil.Param(request, "profileID"), update); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteProfile(writer http.ResponseWriter, request *http.Request) {
	manager, err := handler.manager(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := manager.DeleteProfile(request.Context(), requestutil.Param(request, "profileID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) switchProfile(writer http.ResponseWriter, request *http.Request) {
	manager, err := handler.manager(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := manager.SwitchProfile(request.Context(), requestutil.Param(request, "profileID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

// # Interactions

func (handler *Handler) trackInteraction(writer http.ResponseWriter, request *http.Request) {
	manager, err := handler.manager(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		MovieID string `json:"movieId"`
		Action  string `json:"action"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	kind, err := ParseInteraction(input.Action)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := manager.TrackInteraction(request.Context(), input.MovieID, kind); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) addToWatchlist(writer http.ResponseWriter, request *http.Request) {
	manager, err := handler.manager(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := manager.AddToWatchlist(request.Context(), requestutil.Param(request, "movieID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) removeFromWatchlist(writer http.ResponseWriter, request *http.Request) {
	manager, err := handler.manager(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := manager.RemoveFromWatchlist(request.Context(), requestutil.Param(request, "movieID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
