package pages

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountPage_Mount(t *testing.T) {
	api := newFakeAPI().
		onGet("/api/profile/", profileJSON).
		onGet("/api/orders/", "["+orderJSON+"]")
	page := &AccountPage{}

	eff := page.Mount(context.Background(), api)

	assert.Equal(t, OutcomeSucceeded, eff.Outcome)
	assert.Equal(t, "A", page.FullName)
	require.NotNil(t, page.Order.ID)
	assert.Equal(t, 5, *page.Order.ID)
}

func TestAccountPage_Mount_EmptyHistoryKeepsEmptyOrder(t *testing.T) {
	api := newFakeAPI().
		onGet("/api/profile/", profileJSON).
		onGet("/api/orders/", `[]`)
	page := &AccountPage{}

	page.Mount(context.Background(), api)

	assert.Nil(t, page.Order.ID)
}

func TestAccountPage_Mount_ForbiddenProfileRedirects(t *testing.T) {
	api := newFakeAPI().
		failGet("/api/profile/", http.StatusForbidden, `{"detail":"x"}`).
		failGet("/api/orders/", http.StatusForbidden, `{"detail":"x"}`)
	page := &AccountPage{}

	eff := page.Mount(context.Background(), api)

	assert.Equal(t, OutcomeFailed, eff.Outcome)
	assert.Equal(t, SignInPath, eff.Navigate)
	assert.Empty(t, eff.Alert)
}

func TestAccountPage_GetLastOrder_FailureOnlyWarns(t *testing.T) {
	api := newFakeAPI().failGet("/api/orders/", http.StatusInternalServerError, `"boom"`)

	eff := (&AccountPage{}).GetLastOrder(context.Background(), api)

	assert.Empty(t, eff.Alert)
	assert.Equal(t, []string{"Error when receiving the last order"}, eff.Warnings)
}

func TestAccountPage_SignOut(t *testing.T) {
	api := newFakeAPI().onPost("/api/sign-out/", "")

	eff := (&AccountPage{}).SignOut(context.Background(), api)

	assert.Equal(t, HomePath, eff.Navigate)
	assert.Len(t, api.posted(), 1)
}
