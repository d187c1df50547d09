package pages

import (
	"context"
	"fmt"
	"strings"

	"storefront-bff/internal/models"
)

type PaymentPage struct {
	Number string `json:"number"`
	Month  string `json:"month"`
	Year   string `json:"year"`
	Name   string `json:"name"`
	Code   string `json:"code"`

	// Path is the page location the order id is read from.
	Path string `json:"path"`
}

var submitPayment = Submission[PaymentPage, Ignored]{
	Name: "payment.submit",
	Endpoint: func(p *PaymentPage) (string, bool) {
		id := IDFromPath(p.Path, PaymentPrefixes...)
		if id == nil {
			return "", false
		}
		return fmt.Sprintf("/api/payment/%d/", *id), true
	},
	Body: func(p *PaymentPage) any {
		return models.Payment{
			Name:   p.Name,
			Number: strings.ReplaceAll(p.Number, " ", ""),
			Year:   p.Year,
			Month:  p.Month,
			Code:   p.Code,
		}
	},
	OnSuccess: func(p *PaymentPage, _ Ignored) Effect {
		id := IDFromPath(p.Path, PaymentPrefixes...)
		p.Number, p.Name, p.Year, p.Month, p.Code = "", "", "", "", ""

		eff := navigate(orderDetailPath(*id))
		eff.Alert = "We are waiting for payment confirmation from the payment system"
		return eff
	},
}

func (p *PaymentPage) SubmitPayment(ctx context.Context, api ShopAPI) Effect {
	return submitPayment.Run(ctx, api, p)
}
