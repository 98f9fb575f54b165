package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"GoldSync/internal/model"
)

// apiProduct is the product shape returned by the catalog; ids come as _id or id.
type apiProduct struct {
	MongoID    string `json:"_id"`
	ID         string `json:"id"`
	Name       string `json:"name"`
	SKU        string `json:"sku"`
	Identifier string `json:"identifier"`
	PriceID    string `json:"priceId"`
}

type apiPrice struct {
	MongoID    string  `json:"_id"`
	ID         string  `json:"id"`
	Product    string  `json:"product"`
	Name       string  `json:"name"`
	SKU        string  `json:"sku"`
	Identifier string  `json:"identifier"`
	Currency   string  `json:"currency"`
	Type       string  `json:"type"`
	Amount     float64 `json:"amount"`
}

// PriceUpdate is the body of a price write.
type PriceUpdate struct {
	Name       string  `json:"name,omitempty"`
	Type       string  `json:"type"`
	Currency   string  `json:"currency"`
	Amount     float64 `json:"amount"`
	LocationID string  `json:"locationId,omitempty"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// ListProducts returns the products of the configured location.
// A response without a products array yields an empty list.
func (c *Client) ListProducts(ctx context.Context) ([]model.CatalogItem, error) {
	var resp struct {
		Products []apiProduct `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/products/", c.locationQuery(), nil, &resp); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	items := make([]model.CatalogItem, 0, len(resp.Products))
	for _, p := range resp.Products {
		items = append(items, model.CatalogItem{
			ID:                   firstNonEmpty(p.MongoID, p.ID),
			Name:                 p.Name,
			Identifier:           firstNonEmpty(p.SKU, p.Identifier),
			CurrentPriceRecordID: p.PriceID,
		})
	}
	return items, nil
}

// ListPrices returns the price records of one product.
func (c *Client) ListPrices(ctx context.Context, productID string) ([]model.PriceRecord, error) {
	var resp struct {
		Prices []apiPrice `json:"prices"`
	}
	path := "/products/" + url.PathEscape(productID) + "/price"
	if err := c.do(ctx, http.MethodGet, path, c.locationQuery(), nil, &resp); err != nil {
		return nil, fmt.Errorf("list prices of %s: %w", productID, err)
	}
	records := make([]model.PriceRecord, 0, len(resp.Prices))
	for _, p := range resp.Prices {
		records = append(records, model.PriceRecord{
			ID:         firstNonEmpty(p.MongoID, p.ID),
			ProductID:  firstNonEmpty(p.Product, productID),
			Name:       p.Name,
			Identifier: firstNonEmpty(p.SKU, p.Identifier),
			Currency:   p.Currency,
			Type:       p.Type,
			Amount:     p.Amount,
		})
	}
	return records, nil
}

// UpdatePrice overwrites the amount of one price record.
func (c *Client) UpdatePrice(ctx context.Context, productID, priceID string, upd PriceUpdate) error {
	if upd.Currency == "" {
		upd.Currency = DefaultCurrency
	}
	if upd.Type == "" {
		upd.Type = DefaultPriceType
	}
	if upd.LocationID == "" {
		upd.LocationID = c.LocationID
	}
	path := "/products/" + url.PathEscape(productID) + "/price/" + url.PathEscape(priceID)
	if err := c.do(ctx, http.MethodPut, path, nil, upd, nil); err != nil {
		return fmt.Errorf("update price %s of %s: %w", priceID, productID, err)
	}
	return nil
}
