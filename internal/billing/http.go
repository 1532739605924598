// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package billing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/velora/velora/internal/platform/middleware"
	requestutil "github.com/velora/velora/internal/platform/request"
	"github.com/velora/velora/internal/platform/respond"
)

// # HTTP Handler

// Handler exposes the billing adapter over HTTP. Plan listing is public;
// everything touching an account requires authentication.
type Handler struct {
	service    *Service
	successURL string
	cancelURL  string
}

// NewHandler creates the billing HTTP handler with the configured redirect
// targets.
func NewHandler(service *Service, successURL, cancelURL string) *Handler {
	return &Handler{service: service, successURL: successURL, cancelURL: cancelURL}
}

// Routes returns the router for the /billing subtree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/plans", handler.listPlans)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/checkout", handler.createCheckout)
		protected.Post("/cancel", handler.cancelSubscription)
		protected.Post("/payment-method", handler.updatePaymentMethod)
	})

	return router
}

func (handler *Handler) listPlans(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.ListPlans())
}

func (handler *Handler) createCheckout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		PlanID string `json:"plan_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.CreateCheckoutSession(request.Context(), CheckoutInput{
		PlanID:     input.PlanID,
		AccountID:  claims.UserID,
		Email:      claims.Email,
		SuccessURL: handler.successURL,
		CancelURL:  handler.cancelURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, session)
}

func (handler *Handler) cancelSubscription(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		SubscriptionID string `json:"subscription_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CancelSubscription(request.Context(), input.SubscriptionID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"success": true})
}

func (handler *Handler) updatePaymentMethod(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		PaymentMethodID string `json:"payment_method_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdatePaymentMethod(request.Context(), input.PaymentMethodID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"success": true})
}
