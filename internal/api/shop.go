package api

import (
	"context"
	"strings"

	"github.com/weblarek/larek/internal/shop"
)

// Endpoint paths relative to the API root.
const (
	PathProducts = "/product/"
	PathOrder    = "/order"
)

// Shop is the storefront's view of the backend.
type Shop interface {
	ProductList(ctx context.Context) (shop.ProductList, error)
	CreateOrder(ctx context.Context, req shop.OrderRequest) (shop.OrderResponse, error)
}

// ShopAPI implements Shop over a Client.
type ShopAPI struct {
	client *Client
	cdnURL string
}

// NewShopAPI creates a Shop that prefixes product images with cdnURL.
func NewShopAPI(client *Client, cdnURL string) *ShopAPI {
	return &ShopAPI{client: client, cdnURL: strings.TrimSuffix(cdnURL, "/")}
}

// ProductList fetches the catalog.
func (a *ShopAPI) ProductList(ctx context.Context) (shop.ProductList, error) {
	var list shop.ProductList
	if err := a.client.GetJSON(ctx, PathProducts, &list); err != nil {
		return shop.ProductList{}, err
	}
	for i := range list.Items {
		list.Items[i].Image = a.imageURL(list.Items[i].Image)
	}
	return list, nil
}

// CreateOrder places an order.
func (a *ShopAPI) CreateOrder(ctx context.Context, req shop.OrderRequest) (shop.OrderResponse, error) {
	var resp shop.OrderResponse
	if err := a.client.PostJSON(ctx, PathOrder, req, &resp); err != nil {
		return shop.OrderResponse{}, err
	}
	return resp, nil
}

func (a *ShopAPI) imageURL(path string) string {
	if path == "" || a.cdnURL == "" || strings.Contains(path, "://") {
		return path
	}
	return a.cdnURL + "/" + strings.TrimPrefix(path, "/")
}

var _ Shop = (*ShopAPI)(nil)
