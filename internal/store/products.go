package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Lamecke/frontend-ecommerce/internal/domain"
)

type ProductGateway interface {
	ListProducts(ctx context.Context, keyword, pageNumber string) (domain.ProductPage, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	TopProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, update domain.ProductUpdate) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	CreateReview(ctx context.Context, id string, review domain.ReviewDraft) error
}

// Products tracks catalog state: the search page, the open product detail, the
// featured list and the admin mutation in flight. Identical concurrent catalog
// reads are collapsed with singleflight; writes are never coalesced.
type Products struct {
	gw     ProductGateway
	logger *zap.Logger
	sfg    singleflight.Group

	List     Slot[domain.ProductPage]
	Detail   Slot[domain.Product]
	Top      Slot[[]domain.Product]
	Mutation Slot[domain.Product]
	Review   Slot[struct{}]
}

func NewProducts(gw ProductGateway, logger *zap.Logger) *Products {
	return &Products{gw: gw, logger: logger}
}

// Search loads one catalog page into the List slot.
func (p *Products) Search(ctx context.Context, keyword, pageNumber string) (domain.ProductPage, error) {
	gen := p.List.Begin()

	key := fmt.Sprintf("list:%s:%s", keyword, pageNumber)
	v, err, _ := p.sfg.Do(key, func() (interface{}, error) {
		return p.gw.ListProducts(ctx, keyword, pageNumber)
	})
	if err != nil {
		p.List.Fail(gen, err)
		return domain.ProductPage{}, err
	}

	page := v.(domain.ProductPage)
	p.List.Resolve(gen, page)
	return page, nil
}

// Get loads one product with reviews into the Detail slot. A review outcome
// is scoped to the product it was posted on, so opening a different product
// drops the stale flags.
func (p *Products) Get(ctx context.Context, id string) (domain.Product, error) {
	prev := p.Detail.View().Value.ID
	gen := p.Detail.Begin()
	product, err := p.gw.GetProduct(ctx, id)
	if err != nil {
		p.Detail.Fail(gen, err)
		return domain.Product{}, err
	}
	p.Detail.Resolve(gen, product)
	if product.ID != prev {
		p.Review.ClearSuccess()
		p.Review.ClearError()
	}
	return product, nil
}

// Featured loads the top-rated list into the Top slot.
func (p *Products) Featured(ctx context.Context) ([]domain.Product, error) {
	gen := p.Top.Begin()

	v, err, _ := p.sfg.Do("top", func() (interface{}, error) {
		return p.gw.TopProducts(ctx)
	})
	if err != nil {
		p.Top.Fail(gen, err)
		return nil, err
	}

	products := v.([]domain.Product)
	p.Top.Resolve(gen, products)
	return products, nil
}

// Create asks the server for a fresh placeholder product (admin).
func (p *Products) Create(ctx context.Context) (domain.Product, error) {
	gen := p.Mutation.Begin()
	product, err := p.gw.CreateProduct(ctx)
	if err != nil {
		p.Mutation.Fail(gen, err)
		return domain.Product{}, err
	}
	p.Mutation.Resolve(gen, product)
	return product, nil
}

// Update edits a product (admin). The detail slot is refreshed with the
// server's version so an open edit view shows the committed state.
func (p *Products) Update(ctx context.Context, id string, update domain.ProductUpdate) (domain.Product, error) {
	gen := p.Mutation.Begin()
	product, err := p.gw.UpdateProduct(ctx, id, update)
	if err != nil {
		p.Mutation.Fail(gen, err)
		return domain.Product{}, err
	}
	p.Mutation.Resolve(gen, product)
	p.Detail.Resolve(p.Detail.Begin(), product)
	return product, nil
}

// Delete removes a product (admin).
func (p *Products) Delete(ctx context.Context, id string) error {
	gen := p.Mutation.Begin()
	if err := p.gw.DeleteProduct(ctx, id); err != nil {
		p.Mutation.Fail(gen, err)
		return err
	}
	p.Mutation.Resolve(gen, domain.Product{})
	return nil
}

// AddReview posts a review for the product.
func (p *Products) AddReview(ctx context.Context, id string, review domain.ReviewDraft) error {
	gen := p.Review.Begin()
	if err := p.gw.CreateReview(ctx, id, review); err != nil {
		p.Review.Fail(gen, err)
		return err
	}
	p.Review.Resolve(gen, struct{}{})
	return nil
}
