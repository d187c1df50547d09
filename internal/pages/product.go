package pages

import (
	"context"
	"fmt"

	"storefront-bff/internal/models"
)

type ReviewForm struct {
	Author string `json:"author"`
	Email  string `json:"email"`
	Text   string `json:"text"`
	Rate   *int   `json:"rate"`
}

type ProductPage struct {
	Product     models.Product `json:"product"`
	ActivePhoto int            `json:"activePhoto"`
	Count       int            `json:"count"`
	Review      ReviewForm     `json:"review"`
}

func NewProductPage() *ProductPage {
	return &ProductPage{Count: 1}
}

func (p *ProductPage) Mount(ctx context.Context, api ShopAPI, path string) Effect {
	return p.GetProduct(ctx, api, path)
}

// GetProduct loads the product named by the page path and merges it over
// the current product: fields absent from the response keep their value.
func (p *ProductPage) GetProduct(ctx context.Context, api ShopAPI, path string) Effect {
	id := IDFromPath(path, ProductPrefixes...)
	if id == nil {
		return record("product.get", Effect{Outcome: OutcomeSkipped})
	}

	merged := p.Product
	if err := api.GetData(ctx, fmt.Sprintf("/api/product/%d/", *id), &merged); err != nil {
		p.Product = models.Product{}
		const msg = "Error when receiving the goods"
		return record("product.get", failure{warn: msg, alert: msg}.effect(ctx, "product.get", err))
	}

	p.Product = merged
	if len(merged.Images) > 0 {
		p.ActivePhoto = 0
	}
	return record("product.get", succeeded())
}

// Tags never returns nil.
func (p *ProductPage) Tags() []models.Tag {
	if p.Product.Tags == nil {
		return []models.Tag{}
	}
	return p.Product.Tags
}

// ChangeCount adds delta to the quantity, keeping it at one or more.
func (p *ProductPage) ChangeCount(delta int) {
	p.Count += delta
	if p.Count < 1 {
		p.Count = 1
	}
}

func (p *ProductPage) SetActivePhoto(index int) {
	p.ActivePhoto = index
}

var submitReview = Submission[ProductPage, []models.Review]{
	Name: "product.review",
	Endpoint: func(p *ProductPage) (string, bool) {
		if p.Product.ID == 0 {
			return "", false
		}
		return fmt.Sprintf("/api/product/%d/review/", p.Product.ID), true
	},
	Body: func(p *ProductPage) any {
		return p.Review
	},
	OnSuccess: func(p *ProductPage, reviews []models.Review) Effect {
		if reviews == nil {
			reviews = []models.Review{}
		}
		p.Product.Reviews = reviews
		p.Review.Author = ""
		p.Review.Email = ""
		p.Review.Text = ""
		return Effect{Alert: "Review published"}
	},
}

func (p *ProductPage) SubmitReview(ctx context.Context, api ShopAPI) Effect {
	return submitReview.Run(ctx, api, p)
}
