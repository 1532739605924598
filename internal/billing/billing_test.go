// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package billing

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ListPlans(t *testing.T) {
	service := NewService(0)

	listed := service.ListPlans()

	require.Len(t, listed, 6)
	byID := map[string]Plan{}
	for _, plan := range listed {
		byID[plan.ID] = plan
	}
	assert.Equal(t, 9.99, byID["basic_monthly"].Price)
	assert.Equal(t, 15.99, byID["standard_monthly"].Price)
	assert.Equal(t, 19.99, byID["premium_monthly"].Price)
	assert.Equal(t, "2 months free", byID["premium_yearly"].Description)
}

func TestService_CreateCheckoutSession(t *testing.T) {
	service := NewService(0)

	t.Run("success", func(t *testing.T) {
		session, err := service.CreateCheckoutSession(context.Background(), CheckoutInput{
			PlanID:    "standard_monthly",
			AccountID: "acc-1",
			Email:     "viewer@example.com",
		})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(session.SessionID, "cs_test_"))
		assert.True(t, strings.HasPrefix(session.URL, "https://checkout.stripe.com/pay/"))
	})

	t.Run("session_ids_are_unique", func(t *testing.T) {
		first, err := service.CreateCheckoutSession(context.Background(), CheckoutInput{PlanID: "basic_monthly"})
		require.NoError(t, err)
		second, err := service.CreateCheckoutSession(context.Background(), CheckoutInput{PlanID: "basic_monthly"})
		require.NoError(t, err)

		assert.NotEqual(t, first.SessionID, second.SessionID)
	})

	t.Run("unknown_plan", func(t *testing.T) {
		_, err := service.CreateCheckoutSession(context.Background(), CheckoutInput{PlanID: "gold_weekly"})

		require.Error(t, err)
	})
}

func TestService_CancelSubscription(t *testing.T) {
	service := NewService(0)

	assert.NoError(t, service.CancelSubscription(context.Background(), "sub_123"))
	assert.Error(t, service.CancelSubscription(context.Background(), ""))
}

func TestService_UpdatePaymentMethod(t *testing.T) {
	service := NewService(0)

	assert.NoError(t, service.UpdatePaymentMethod(context.Background(), "pm_123"))
	assert.Error(t, service.UpdatePaymentMethod(context.Background(), ""))
}
