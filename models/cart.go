package models

import "time"

// Line item kinds. A catalog item references a product by id; a custom
// item carries the frozen bar built in the customizer.
const (
	LineItemCatalog = "catalog"
	LineItemCustom  = "custom"
)

// LineItem is one entry in a cart: a product or a custom bar plus its
// quantity. Name, description and unit price are snapshots taken at add
// time, independent of later catalog or option-table changes.
type LineItem struct {
	Kind          string     `json:"kind" bson:"kind"`
	ItemID        string     `json:"itemId" bson:"itemId"`
	ProductID     int        `json:"productId,omitempty" bson:"productId,omitempty"`
	Name          string     `json:"name" bson:"name"`
	Description   string     `json:"description" bson:"description"`
	Emotion       string     `json:"emotion,omitempty" bson:"emotion,omitempty"`
	UnitPrice     float64    `json:"unitPrice" bson:"unitPrice"`
	Customization *Selection `json:"customization,omitempty" bson:"customization,omitempty"`
	Quantity      int        `json:"quantity" bson:"quantity"`
	AddedAt       time.Time  `json:"addedAt" bson:"addedAt"`
}

// CartView is the derived state returned to the caller after every cart
// operation.
type CartView struct {
	Items       []LineItem `json:"items"`
	PromoCode   string     `json:"promoCode,omitempty"`
	PromoDetail string     `json:"promoDetail,omitempty"`
	Subtotal    float64    `json:"subtotal"`
	Discount    float64    `json:"discount"`
	Total       float64    `json:"total"`
	ItemCount   int        `json:"itemCount"`
}
