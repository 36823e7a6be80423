package models

import "time"

// Order is an immutable snapshot taken at checkout. It is appended to the
// order history and never edited afterwards.
type Order struct {
	OrderID string `json:"orderId" bson:"orderId"`
	OwnerID string `json:"ownerId,omitempty" bson:"ownerId,omitempty"`
	// SessionKey is the cart session that placed the order: the user id
	// for logged-in checkouts, the guest token otherwise. It gates order
	// reads and never appears in responses.
	SessionKey string     `json:"-" bson:"sessionKey,omitempty"`
	Items      []LineItem `json:"items" bson:"items"`
	Subtotal   float64    `json:"subtotal" bson:"subtotal"`
	Discount   float64    `json:"discount" bson:"discount"`
	Total      float64    `json:"total" bson:"total"`
	PromoCode  string     `json:"promoCode,omitempty" bson:"promoCode,omitempty"`
	Status     string     `json:"status" bson:"status"`
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
}

const OrderStatusConfirmed = "confirmed"
