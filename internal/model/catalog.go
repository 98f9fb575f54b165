package model

// CatalogItem is a product as listed by the catalog service.
type CatalogItem struct {
	ID                   string
	Name                 string
	Identifier           string // SKU-like token, e.g. "GOLD-22K-10G"
	CurrentPriceRecordID string
}

// PriceRecord is one price attached to a catalog product.
type PriceRecord struct {
	ID         string
	ProductID  string
	Name       string
	Identifier string
	Currency   string
	Type       string
	Amount     float64
}
