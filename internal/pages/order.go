package pages

import (
	"context"
	"fmt"

	"storefront-bff/internal/models"
)

// OrderPage shows one order and lets the user confirm it. Username and
// Password back the inline sign-in form shown to anonymous visitors.
type OrderPage struct {
	models.Order
	OrderID  *int   `json:"orderId"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

func NewOrderPage() *OrderPage {
	return &OrderPage{Order: models.Order{Products: []models.OrderedProduct{}}}
}

// Mount resolves the order id from the page path and loads the order.
func (p *OrderPage) Mount(ctx context.Context, api ShopAPI, path string) Effect {
	p.OrderID = IDFromPath(path, OrderPrefixes...)
	p.ID = p.OrderID
	return p.GetOrder(ctx, api, p.OrderID)
}

func (p *OrderPage) GetOrder(ctx context.Context, api ShopAPI, orderID *int) Effect {
	if orderID == nil {
		return record("order.get", Effect{Outcome: OutcomeSkipped})
	}

	var order models.Order
	if err := api.GetData(ctx, fmt.Sprintf("/api/orders/%d/", *orderID), &order); err != nil {
		return record("order.get", failure{}.effect(ctx, "order.get", err))
	}

	paymentError := p.PaymentError
	if order.Products == nil {
		order.Products = []models.OrderedProduct{}
	}
	p.Order = order
	p.OrderID = order.ID
	if order.PaymentError == nil {
		p.PaymentError = paymentError
	}
	return record("order.get", succeeded())
}

var confirmOrder = Submission[OrderPage, Ignored]{
	Name: "order.confirm",
	Endpoint: func(p *OrderPage) (string, bool) {
		if p.OrderID == nil {
			return "", false
		}
		return fmt.Sprintf("/api/orders/%d/", *p.OrderID), true
	},
	Body: func(p *OrderPage) any {
		order := p.Order
		order.ID = p.OrderID
		return order
	},
	OnSuccess: func(p *OrderPage, _ Ignored) Effect {
		eff := navigate(orderDetailPath(*p.OrderID))
		eff.Replace = true
		eff.Alert = "The order is confirmed"
		return eff
	},
}

func (p *OrderPage) ConfirmOrder(ctx context.Context, api ShopAPI) Effect {
	return confirmOrder.Run(ctx, api, p)
}

var orderAuth = Submission[OrderPage, Ignored]{
	Name:     "order.auth",
	Endpoint: fixedPath[OrderPage]("/api/sign-in/"),
	Body: func(p *OrderPage) any {
		return models.Credentials{Username: p.Username, Password: p.Password}
	},
	OnSuccess: func(p *OrderPage, _ Ignored) Effect {
		if p.OrderID == nil {
			return navigate(HomePath)
		}
		return navigate(orderPath(*p.OrderID))
	},
	Failure: failure{public: true},
}

// Auth signs the visitor in and reopens the current order.
func (p *OrderPage) Auth(ctx context.Context, api ShopAPI) Effect {
	eff := orderAuth.Run(ctx, api, p)
	p.Password = ""
	return eff
}
