package pages

import (
	"context"
	"sync"

	"storefront-bff/internal/models"
)

type IndexPage struct {
	Banners      []models.Banner      `json:"banners"`
	PopularCards []models.ProductCard `json:"popularCards"`
	LimitedCards []models.ProductCard `json:"limitedCards"`
}

func NewIndexPage() *IndexPage {
	return &IndexPage{
		Banners:      []models.Banner{},
		PopularCards: []models.ProductCard{},
		LimitedCards: []models.ProductCard{},
	}
}

// Mount loads the three catalog strips concurrently. A failed strip falls
// back to an empty list without affecting the others.
func (p *IndexPage) Mount(ctx context.Context, api ShopAPI) Effect {
	var (
		wg                        sync.WaitGroup
		banners, popular, limited Effect
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		banners = p.GetBanners(ctx, api)
	}()

	go func() {
		defer wg.Done()
		popular = p.GetPopularProducts(ctx, api)
	}()

	go func() {
		defer wg.Done()
		limited = p.GetLimitedProducts(ctx, api)
	}()

	wg.Wait()

	return merge(banners, popular, limited)
}

func (p *IndexPage) GetBanners(ctx context.Context, api ShopAPI) Effect {
	var eff Effect
	p.Banners, eff = fetchCards(ctx, api, "index.banners", "/api/banners", "Error when receiving banners")
	return eff
}

func (p *IndexPage) GetPopularProducts(ctx context.Context, api ShopAPI) Effect {
	var eff Effect
	p.PopularCards, eff = fetchCards(ctx, api, "index.popular", "/api/products/popular/",
		"Error when getting a list of popular products")
	return eff
}

func (p *IndexPage) GetLimitedProducts(ctx context.Context, api ShopAPI) Effect {
	var eff Effect
	p.LimitedCards, eff = fetchCards(ctx, api, "index.limited", "/api/products/limited/",
		"Error when receiving a list of limited goods")
	return eff
}

// fetchCards never fails the page: errors only warn and yield an empty list.
func fetchCards(ctx context.Context, api ShopAPI, action, path, warn string) ([]models.ProductCard, Effect) {
	var cards []models.ProductCard
	if err := api.GetData(ctx, path, &cards); err != nil {
		f := failure{warn: warn, quiet: true, public: true}
		return []models.ProductCard{}, record(action, f.effect(ctx, action, err))
	}
	if cards == nil {
		cards = []models.ProductCard{}
	}
	return cards, record(action, succeeded())
}
