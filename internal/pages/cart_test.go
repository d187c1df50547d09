package pages

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-bff/internal/models"
)

func TestCartPage_SubmitBasket_NavigatesToCreatedOrder(t *testing.T) {
	api := newFakeAPI().onPost("/api/orders/", `{"orderId": 42}`)
	page := &CartPage{Basket: models.Basket{
		"7": json.RawMessage(`{"id":7,"count":2,"price":"10.00","color":"red"}`),
	}}

	eff := page.SubmitBasket(context.Background(), api)

	assert.Equal(t, OutcomeSucceeded, eff.Outcome)
	assert.Equal(t, "/orders/42/", eff.Navigate)
	assert.Empty(t, eff.Alert)

	posts := api.posted()
	require.Len(t, posts, 1)
	assert.JSONEq(t, `[{"id":7,"count":2,"price":"10.00","color":"red"}]`, bodyJSON(posts[0]),
		"basket lines are posted as received")
}

func TestCartPage_SubmitBasket_ForbiddenGoesToSignIn(t *testing.T) {
	api := newFakeAPI().failPost("/api/orders/", http.StatusForbidden, `{"detail":"Authentication credentials were not provided."}`)
	page := &CartPage{Basket: models.Basket{"1": json.RawMessage(`{"id":1}`)}}

	eff := page.SubmitBasket(context.Background(), api)

	assert.Equal(t, OutcomeFailed, eff.Outcome)
	assert.Equal(t, SignInPath, eff.Navigate)
	assert.Empty(t, eff.Alert, "403 must not show the raw payload")
}

func TestCartPage_SubmitBasket_OtherErrorAlertsPayload(t *testing.T) {
	payload := `[{"count":["Ensure this value is greater than or equal to 1."]}]`
	api := newFakeAPI().failPost("/api/orders/", http.StatusBadRequest, payload)
	page := &CartPage{Basket: models.Basket{"1": json.RawMessage(`{"id":1}`)}}

	eff := page.SubmitBasket(context.Background(), api)

	assert.Equal(t, OutcomeFailed, eff.Outcome)
	assert.Empty(t, eff.Navigate)
	assert.Equal(t, payload, eff.Alert)
	assert.Equal(t, []string{payload}, eff.Warnings)
}

func TestCartPage_SubmitBasket_CallableAgainAfterFailure(t *testing.T) {
	api := newFakeAPI().failPost("/api/orders/", http.StatusInternalServerError, `"boom"`)
	page := &CartPage{}

	first := page.SubmitBasket(context.Background(), api)
	api.onPost("/api/orders/", `{"orderId": 5}`)
	second := page.SubmitBasket(context.Background(), api)

	assert.Equal(t, OutcomeFailed, first.Outcome)
	assert.Equal(t, "/orders/5/", second.Navigate)
	assert.Len(t, api.posted(), 2)
}

func TestCartPage_IsBasketEmpty(t *testing.T) {
	assert.True(t, (&CartPage{}).IsBasketEmpty())
	assert.True(t, (&CartPage{Basket: models.Basket{}}).IsBasketEmpty())
	assert.False(t, (&CartPage{Basket: models.Basket{"1": json.RawMessage(`{"id":1}`)}}).IsBasketEmpty())
}

func TestCartPage_GoLogin(t *testing.T) {
	eff := (&CartPage{}).GoLogin()
	assert.Equal(t, SignInPath, eff.Navigate)
}
