package pages

import (
	"context"

	"storefront-bff/internal/models"
)

type HistoryPage struct {
	Orders []models.Order `json:"orders"`
}

func NewHistoryPage() *HistoryPage {
	return &HistoryPage{Orders: []models.Order{}}
}

func (p *HistoryPage) Mount(ctx context.Context, api ShopAPI) Effect {
	return p.GetHistoryOrder(ctx, api)
}

func (p *HistoryPage) GetHistoryOrder(ctx context.Context, api ShopAPI) Effect {
	const msg = "Error when receiving the list of orders"

	var orders []models.Order
	if err := api.GetData(ctx, "/api/orders/", &orders); err != nil {
		p.Orders = []models.Order{}
		return record("history.orders", failure{warn: msg, alert: msg}.effect(ctx, "history.orders", err))
	}
	if orders == nil {
		orders = []models.Order{}
	}
	p.Orders = orders
	return record("history.orders", succeeded())
}
