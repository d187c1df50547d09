package pages

import (
	"context"
	"sync"

	"storefront-bff/internal/models"
)

// AccountPage is the personal account overview: the profile summary and
// the most recent order.
type AccountPage struct {
	FullName string        `json:"fullName"`
	Email    string        `json:"email"`
	Phone    string        `json:"phone"`
	Avatar   *models.Image `json:"avatar"`
	Order    models.Order  `json:"order"`
}

func (p *AccountPage) Mount(ctx context.Context, api ShopAPI) Effect {
	var (
		wg              sync.WaitGroup
		profile, orders Effect
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		profile = p.GetUserAccount(ctx, api)
	}()
	go func() {
		defer wg.Done()
		orders = p.GetLastOrder(ctx, api)
	}()
	wg.Wait()

	return merge(profile, orders)
}

func (p *AccountPage) GetUserAccount(ctx context.Context, api ShopAPI) Effect {
	var profile models.Profile
	if err := api.GetData(ctx, "/api/profile/", &profile); err != nil {
		return record("account.profile", failure{}.effect(ctx, "account.profile", err))
	}
	p.FullName = profile.FullName
	p.Avatar = profile.Avatar
	p.Email = profile.Email
	p.Phone = profile.Phone
	return record("account.profile", succeeded())
}

func (p *AccountPage) GetLastOrder(ctx context.Context, api ShopAPI) Effect {
	var orders []models.Order
	if err := api.GetData(ctx, "/api/orders/", &orders); err != nil {
		p.Order = models.Order{}
		f := failure{warn: "Error when receiving the last order", quiet: true}
		return record("account.last_order", f.effect(ctx, "account.last_order", err))
	}
	if len(orders) > 0 {
		p.Order = orders[0]
	}
	return record("account.last_order", succeeded())
}

var signOut = Submission[AccountPage, Ignored]{
	Name:     "account.sign_out",
	Endpoint: fixedPath[AccountPage]("/api/sign-out/"),
	Body:     func(*AccountPage) any { return struct{}{} },
	OnSuccess: func(*AccountPage, Ignored) Effect {
		return navigate(HomePath)
	},
	Failure: failure{public: true},
}

func (p *AccountPage) SignOut(ctx context.Context, api ShopAPI) Effect {
	return signOut.Run(ctx, api, p)
}
