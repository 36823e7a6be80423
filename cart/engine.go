// Package cart implements the cart engine: ordered line items, a single
// active promo code, derived totals, and checkout snapshots. The engine is
// pure in-memory state; Store layers persistence on top.
package cart

import (
	"errors"
	"strconv"
	"time"

	"fleur/models"
	"fleur/promo"
)

var ErrEmptyCart = errors.New("cart is empty")

// Cart is one session's cart. Items keep insertion order; later edits
// never reorder them.
type Cart struct {
	Items     []models.LineItem
	PromoCode string
}

// AddItem appends a line item, or merges quantities when an item with the
// same id is already present. Quantities below one are treated as one.
func (c *Cart) AddItem(item models.LineItem, quantity int, now time.Time) {
	if quantity < 1 {
		quantity = 1
	}

	for i := range c.Items {
		if c.Items[i].ItemID == item.ItemID {
			c.Items[i].Quantity += quantity
			return
		}
	}

	item.Quantity = quantity
	item.AddedAt = now
	c.Items = append(c.Items, item)
}

// RemoveItem drops the line item with the given id; absent ids are a no-op.
func (c *Cart) RemoveItem(id string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ItemID != id {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// UpdateQuantity sets an item's quantity directly. Zero or negative
// removes the item, keeping the quantity-at-least-one invariant.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(id)
		return
	}
	for i := range c.Items {
		if c.Items[i].ItemID == id {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart and drops any active promo.
func (c *Cart) Clear() {
	c.Items = nil
	c.PromoCode = ""
}

// ApplyPromo validates and activates a code, replacing any previous one.
func (c *Cart) ApplyPromo(code string) (promo.Code, error) {
	p, err := promo.Lookup(code)
	if err != nil {
		return promo.Code{}, err
	}
	c.PromoCode = p.Code
	return p, nil
}

// RemovePromo clears the active promo code if set.
func (c *Cart) RemovePromo() {
	c.PromoCode = ""
}

// Subtotal is the sum of unit price times quantity across all items.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, item := range c.Items {
		sum += item.UnitPrice * float64(item.Quantity)
	}
	return sum
}

// Discount is the active promo's value against the current subtotal.
func (c *Cart) Discount() float64 {
	if c.PromoCode == "" {
		return 0
	}
	p, err := promo.Lookup(c.PromoCode)
	if err != nil {
		return 0
	}
	return p.Amount(c.Subtotal())
}

// Total is subtotal minus discount, floored at zero.
func (c *Cart) Total() float64 {
	total := c.Subtotal() - c.Discount()
	if total < 0 {
		return 0
	}
	return total
}

// ItemCount sums quantities across line items, not distinct lines.
func (c *Cart) ItemCount() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Checkout snapshots the cart into a confirmed order and empties it. The
// order id is a time-based token; items are copied so later cart edits
// cannot reach into the recorded order.
func (c *Cart) Checkout(ownerID string, now time.Time) (models.Order, error) {
	if len(c.Items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	items := make([]models.LineItem, len(c.Items))
	copy(items, c.Items)

	order := models.Order{
		OrderID:   "order-" + strconv.FormatInt(now.UnixNano(), 10),
		OwnerID:   ownerID,
		Items:     items,
		Subtotal:  c.Subtotal(),
		Discount:  c.Discount(),
		Total:     c.Total(),
		PromoCode: c.PromoCode,
		Status:    models.OrderStatusConfirmed,
		CreatedAt: now,
	}

	c.Clear()
	return order, nil
}

// View derives the renderer-facing state.
func (c *Cart) View() models.CartView {
	items := make([]models.LineItem, len(c.Items))
	copy(items, c.Items)

	view := models.CartView{
		Items:     items,
		PromoCode: c.PromoCode,
		Subtotal:  c.Subtotal(),
		Discount:  c.Discount(),
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
	if c.PromoCode != "" {
		if p, err := promo.Lookup(c.PromoCode); err == nil {
			view.PromoDetail = p.Description
		}
	}
	return view
}
