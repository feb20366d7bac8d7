// Package entity contains the core business objects of the project.
package entity

// ProductCategory is the closed set of catalog categories.
type ProductCategory string

const (
	CategorySolar     ProductCategory = "solar"
	CategoryStarlink  ProductCategory = "starlink"
	CategoryCCTV      ProductCategory = "cctv"
	CategoryBundles   ProductCategory = "Bundles"
	CategoryBatteries ProductCategory = "Batteries"
	CategoryPanels    ProductCategory = "Panels"
	CategoryInverters ProductCategory = "Inverters"
)

// String returns the string representation of the ProductCategory.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid checks if the ProductCategory is a valid value.
func (c ProductCategory) IsValid() bool {
	switch c {
	case CategorySolar, CategoryStarlink, CategoryCCTV,
		CategoryBundles, CategoryBatteries, CategoryPanels, CategoryInverters:
		return true
	default:
		return false
	}
}

// Product is a catalog entry. Prices are integer amounts in the smallest
// practical unit (whole naira), never floats.
type Product struct {
	ID                 string          `json:"id"` // Human-readable slug, e.g. "5kva-inverter-system".
	Title              string          `json:"title"`
	Price              int64           `json:"price"`
	PriceWithoutPanels int64           `json:"priceWithoutPanels,omitempty"`
	Category           ProductCategory `json:"category"`
	Description        string          `json:"description"`
	Usage              string          `json:"usage,omitempty"`
	Components         []string        `json:"components"` // Ordered component list.
	IsFeatured         bool            `json:"isFeatured,omitempty"`
	LoadCapacity       string          `json:"loadCapacity,omitempty"`
	Badge              string          `json:"badge,omitempty"`
	ImageURL           string          `json:"imageUrl,omitempty"`
	Stock              int             `json:"stock,omitempty"`
}
