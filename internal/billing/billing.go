// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

/*
Package billing is the storefront's mock payment adapter.

It mimics a hosted-checkout provider: plans, checkout session creation,
cancellation, and payment-method updates. No real charges happen; session
ids carry the provider's test prefix and calls simulate upstream latency
(injectable, zero in tests).

Subscription state itself lives on the account document and is owned by
the session layer; this package only brokers the checkout hand-off.
*/
package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/velora/velora/internal/platform/apperr"
	"github.com/velora/velora/internal/platform/sec"
)

// CheckoutDelay is the simulated upstream latency per call.
const CheckoutDelay = 1 * time.Second

const checkoutSessionPrefix = "cs_test_"

// # Plans

// Plan is one subscription offering.
type Plan struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Interval    string  `json:"interval"` // 'monthly' or 'yearly'
	Description string  `json:"description,omitempty"`
}

var plans = []Plan{
	{ID: "basic_monthly", Name: "Basic", Price: 9.99, Interval: "monthly"},
	{ID: "standard_monthly", Name: "Standard", Price: 15.99, Interval: "monthly"},
	{ID: "premium_monthly", Name: "Premium", Price: 19.99, Interval: "monthly"},
	{ID: "basic_yearly", Name: "Basic", Price: 99.99, Interval: "yearly", Description: "2 months free"},
	{ID: "standard_yearly", Name: "Standard", Price: 159.99, Interval: "yearly", Description: "2 months free"},
	{ID: "premium_yearly", Name: "Premium", Price: 199.99, Interval: "yearly", Description: "2 months free"},
}

// # Service

// Service is the mock billing adapter.
type Service struct {
	// delayScale scales the simulated latency; 0 disables it.
	delayScale float64
}

// NewService creates the adapter. delayScale of 1 gives production-like
// latency, 0 disables delays (tests).
func NewService(delayScale float64) *Service {
	return &Service{delayScale: delayScale}
}

// ListPlans returns the available subscription plans.
func (service *Service) ListPlans() []Plan {
	return append([]Plan(nil), plans...)
}

// FindPlan returns the plan with the given id, or nil.
func (service *Service) FindPlan(id string) *Plan {
	for _, plan := range plans {
		if plan.ID == id {
			copied := plan
			return &copied
		}
	}
	return nil
}

// CheckoutInput carries the fields for a new checkout session.
type CheckoutInput struct {
	PlanID     string
	AccountID  string
	Email      string
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is the hand-off returned to the client.
type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

/*
CreateCheckoutSession opens a mock hosted-checkout session for a plan.

Parameters:
  - context: Request context.
  - input: Plan, account, and redirect targets.

Returns:
  - *CheckoutSession: A test session id and checkout URL.
  - error: Validation failure for an unknown plan, or cancellation.
*/
func (service *Service) CreateCheckoutSession(context context.Context, input CheckoutInput) (*CheckoutSession, error) {
	if service.FindPlan(input.PlanID) == nil {
		return nil, apperr.ValidationError("Unknown subscription plan")
	}
	if err := service.wait(context); err != nil {
		return nil, err
	}

	token, err := sec.GenerateSecureToken(9)
	if err != nil {
		return nil, fmt.Errorf("billing_session_id_failed: %w", err)
	}

	return &CheckoutSession{
		SessionID: checkoutSessionPrefix + token,
		URL:       "https://checkout.stripe.com/pay/" + token,
	}, nil
}

// CancelSubscription pretends to cancel a provider-side subscription.
func (service *Service) CancelSubscription(context context.Context, subscriptionID string) error {
	if subscriptionID == "" {
		return apperr.ValidationError("Subscription id is required")
	}
	return service.wait(context)
}

// UpdatePaymentMethod pretends to swap the payment method on file.
func (service *Service) UpdatePaymentMethod(context context.Context, paymentMethodID string) error {
	if paymentMethodID == "" {
		return apperr.ValidationError("Payment method id is required")
	}
	return service.wait(context)
}

func (service *Service) wait(ctx context.Context) error {
	scaled := time.Duration(float64(CheckoutDelay) * service.delayScale)
	if scaled <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(scaled)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
