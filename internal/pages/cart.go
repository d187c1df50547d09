package pages

import (
	"context"

	"storefront-bff/internal/models"
)

type CartPage struct {
	Basket models.Basket `json:"basket"`
}

var submitBasket = Submission[CartPage, models.CreatedOrder]{
	Name:     "cart.submit",
	Endpoint: fixedPath[CartPage]("/api/orders/"),
	Body: func(p *CartPage) any {
		return p.Basket.Items()
	},
	OnSuccess: func(_ *CartPage, created models.CreatedOrder) Effect {
		return navigate(orderPath(created.OrderID))
	},
}

// SubmitBasket turns the basket into an order and opens it.
func (p *CartPage) SubmitBasket(ctx context.Context, api ShopAPI) Effect {
	return submitBasket.Run(ctx, api, p)
}

func (p *CartPage) GoLogin() Effect {
	return navigate(SignInPath)
}

func (p *CartPage) IsBasketEmpty() bool {
	return p.Basket.IsEmpty()
}
