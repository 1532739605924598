// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package identity

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/velora/velora/internal/platform/apperr"
	"github.com/velora/velora/internal/platform/constants"
	"github.com/velora/velora/internal/platform/middleware"
	requestutil "github.com/velora/velora/internal/platform/request"
	"github.com/velora/velora/internal/platform/respond"
	"github.com/velora/velora/internal/platform/sec"
)

const federatedStateTTL = 10 * time.Minute

// # HTTP Handler

// Handler exposes the identity service over HTTP.
type Handler struct {
	service       *Service
	federated     *Federated
	secureCookies bool
	devMode       bool
}

// NewHandler creates the identity HTTP handler.
func NewHandler(service *Service, federated *Federated, secureCookies, devMode bool) *Handler {
	return &Handler{
		service:       service,
		federated:     federated,
		secureCookies: secureCookies,
		devMode:       devMode,
	}
}

// Routes returns the router for the /auth subtree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/logout", handler.logout)
	})

	if handler.federated.Enabled() {
		router.Get("/federated/login", handler.federatedLogin)
		router.Get("/federated/callback", handler.federatedCallback)
	}

	return router
}

// # Password Flow

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input SignUpInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.SignUp(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, MapError(err))
		return
	}
	respond.Created(writer, session)
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.SignInWithPassword(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, MapError(err))
		return
	}
	respond.OK(writer, session)
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.service.SignOut(request.Context(), userID)
	respond.NoContent(writer)
}

func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.service.SendPasswordReset(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, MapError(err))
		return
	}

	payload := map[string]string{
		"message": "If the email is registered, a reset link has been sent.",
	}
	// No mailer is wired in development; hand the token back so the flow
	// stays testable end to end.
	if handler.devMode && token != "" {
		payload["reset_token"] = token
	}
	respond.OK(writer, payload)
}

func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ResetPassword(request.Context(), input.Token, input.Password); err != nil {
		respond.Error(writer, request, MapError(err))
		return
	}
	respond.OK(writer, map[string]string{"message": "Password has been reset. Please sign in."})
}

// # Federated Flow

func (handler *Handler) federatedLogin(writer http.ResponseWriter, request *http.Request) {
	state, err := sec.GenerateSecureToken(16)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.FederatedStateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(federatedStateTTL.Seconds()),
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(writer, request, handler.federated.AuthCodeURL(state), http.StatusFound)
}

func (handler *Handler) federatedCallback(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.FederatedStateCookieName)
	if err != nil || cookie.Value == "" || cookie.Value != request.URL.Query().Get("state") {
		respond.Error(writer, request, apperr.Unauthorized("Sign-in state mismatch. Please try again."))
		return
	}

	// The state cookie is single use.
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.FederatedStateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	federatedIdentity, err := handler.federated.Exchange(request.Context(), request.URL.Query().Get("code"))
	if err != nil {
		respond.Error(writer, request, MapError(err))
		return
	}

	session, err := handler.service.SignInFederated(request.Context(), *federatedIdentity)
	if err != nil {
		respond.Error(writer, request, MapError(err))
		return
	}
	respond.OK(writer, session)
}
