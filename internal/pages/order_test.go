package pages

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-bff/internal/models"
)

const orderJSON = `{
	"id": 5,
	"createdAt": "2023-05-05 12:12",
	"fullName": "Annoying Orange",
	"phone": "+79991234567",
	"email": "no-reply@mail.ru",
	"deliveryType": "free",
	"city": "Moscow",
	"address": "red square 1",
	"comment": "",
	"paymentType": "online",
	"status": "accepted",
	"deliveryCost": "0.00",
	"totalCost": 567.8,
	"paid": false,
	"products": [{"id": 123, "price": "500.67", "count": 2, "title": "video card"}]
}`

func TestOrderPage_Mount_LoadsOrder(t *testing.T) {
	api := newFakeAPI().onGet("/api/orders/5/", orderJSON)
	page := NewOrderPage()

	eff := page.Mount(context.Background(), api, "/order-detail/5/")

	assert.Equal(t, OutcomeSucceeded, eff.Outcome)
	require.NotNil(t, page.OrderID)
	assert.Equal(t, 5, *page.OrderID)
	assert.Equal(t, "Moscow", *page.City)
	assert.Equal(t, models.Decimal("567.8"), page.TotalCost)
	require.Len(t, page.Products, 1)
	assert.Equal(t, 123, page.Products[0].ID)
	assert.Nil(t, page.PaymentError)
}

func TestOrderPage_Mount_WithoutIDIssuesNoCall(t *testing.T) {
	for _, path := range []string{"/orders/", "/orders/abc/", "/cart/", "/payment/5/"} {
		t.Run(path, func(t *testing.T) {
			api := newFakeAPI()
			page := NewOrderPage()

			eff := page.Mount(context.Background(), api, path)

			assert.Equal(t, OutcomeSkipped, eff.Outcome)
			assert.Zero(t, api.callCount())
			assert.Nil(t, page.OrderID)
		})
	}
}

func TestOrderPage_GetOrder_KeepsPaymentErrorWhenAbsent(t *testing.T) {
	api := newFakeAPI().onGet("/api/orders/5/", orderJSON)
	page := NewOrderPage()
	page.PaymentError = strPtr("card declined")

	page.GetOrder(context.Background(), api, intPtr(5))

	require.NotNil(t, page.PaymentError)
	assert.Equal(t, "card declined", *page.PaymentError)
}

func TestOrderPage_GetOrder_Forbidden(t *testing.T) {
	api := newFakeAPI().failGet("/api/orders/5/", http.StatusForbidden, `{"detail":"nope"}`)
	page := NewOrderPage()

	eff := page.GetOrder(context.Background(), api, intPtr(5))

	assert.Equal(t, SignInPath, eff.Navigate)
	assert.Empty(t, eff.Alert)
}

func TestOrderPage_GetOrder_NotFoundAlertsPayload(t *testing.T) {
	api := newFakeAPI()
	page := NewOrderPage()

	eff := page.GetOrder(context.Background(), api, intPtr(9))

	assert.Equal(t, OutcomeFailed, eff.Outcome)
	assert.Equal(t, `{"detail":"Not found."}`, eff.Alert)
}

func TestOrderPage_ConfirmOrder(t *testing.T) {
	api := newFakeAPI().
		onGet("/api/orders/5/", orderJSON).
		onPost("/api/orders/5/", orderJSON)
	page := NewOrderPage()
	page.Mount(context.Background(), api, "/orders/5/")
	page.Comment = strPtr("ring twice")

	eff := page.ConfirmOrder(context.Background(), api)

	assert.Equal(t, OutcomeSucceeded, eff.Outcome)
	assert.Equal(t, "/order-detail/5/", eff.Navigate)
	assert.True(t, eff.Replace)
	assert.Equal(t, "The order is confirmed", eff.Alert)

	posts := api.posted()
	require.Len(t, posts, 1)
	assert.Contains(t, bodyJSON(posts[0]), `"comment":"ring twice"`)
	assert.NotContains(t, bodyJSON(posts[0]), "password")
}

func TestOrderPage_ConfirmOrder_WithoutIDIsNoop(t *testing.T) {
	api := newFakeAPI()

	eff := NewOrderPage().ConfirmOrder(context.Background(), api)

	assert.Equal(t, OutcomeSkipped, eff.Outcome)
	assert.Zero(t, api.callCount())
}

func TestOrderPage_Auth(t *testing.T) {
	api := newFakeAPI().onPost("/api/sign-in/", "")
	page := NewOrderPage()
	page.OrderID = intPtr(5)
	page.Username, page.Password = "bob", "secret"

	eff := page.Auth(context.Background(), api)

	assert.Equal(t, "/orders/5/", eff.Navigate)
	assert.Empty(t, page.Password)
	assert.JSONEq(t, `{"username":"bob","password":"secret"}`, bodyJSON(api.posted()[0]))
}

func TestOrderPage_Auth_WrongCredentialsShowPayload(t *testing.T) {
	payload := `{"username":["Wrong username or password"]}`
	api := newFakeAPI().failPost("/api/sign-in/", http.StatusForbidden, payload)
	page := NewOrderPage()
	page.OrderID = intPtr(5)

	eff := page.Auth(context.Background(), api)

	assert.Empty(t, eff.Navigate)
	assert.Equal(t, payload, eff.Alert)
}
