package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Lamecke/frontend-ecommerce/internal/domain"
)

// ListProducts searches the catalog. keyword and pageNumber may be empty; the
// server then returns the first page of everything.
func (c *Client) ListProducts(ctx context.Context, keyword, pageNumber string) (domain.ProductPage, error) {
	q := url.Values{}
	q.Set("keyword", keyword)
	q.Set("pageNumber", pageNumber)

	var page domain.ProductPage
	err := c.do(ctx, http.MethodGet, "/products?"+q.Encode(), nil, &page, "failed to load products")
	return page, err
}

// GetProduct fetches one product with its reviews.
func (c *Client) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	var product domain.Product
	err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &product, "failed to load product")
	return product, err
}

// TopProducts fetches the featured carousel list.
func (c *Client) TopProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := c.do(ctx, http.MethodGet, "/products/top", nil, &products, "failed to load top products")
	return products, err
}

// CreateProduct asks the server for a new placeholder product the admin then
// edits. Admin only.
func (c *Client) CreateProduct(ctx context.Context) (domain.Product, error) {
	var product domain.Product
	err := c.do(ctx, http.MethodPost, "/products", struct{}{}, &product, "failed to create product")
	return product, err
}

// UpdateProduct replaces a product's editable fields. Admin only.
func (c *Client) UpdateProduct(ctx context.Context, id string, update domain.ProductUpdate) (domain.Product, error) {
	var product domain.Product
	err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), update, &product, "failed to update product")
	return product, err
}

// DeleteProduct removes a product. Admin only.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil, "failed to delete product")
}

// CreateReview posts an authenticated review on a product.
func (c *Client) CreateReview(ctx context.Context, id string, review domain.ReviewDraft) error {
	return c.do(ctx, http.MethodPost, "/products/"+url.PathEscape(id)+"/reviews", review, nil, "failed to create review")
}
