package cart

import (
	"strings"
	"testing"
	"time"

	"fleur/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogItem(id string, price float64) models.LineItem {
	return models.LineItem{
		Kind:      models.LineItemCatalog,
		ItemID:    id,
		Name:      "Bar " + id,
		UnitPrice: price,
	}
}

func TestAddItemMergesQuantities(t *testing.T) {
	var c Cart
	now := time.Now()

	c.AddItem(catalogItem("1", 14.99), 1, now)
	c.AddItem(catalogItem("1", 14.99), 2, now)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 3, c.ItemCount())
}

func TestAddItemKeepsInsertionOrder(t *testing.T) {
	var c Cart
	now := time.Now()

	c.AddItem(catalogItem("2", 13.99), 1, now)
	c.AddItem(catalogItem("5", 12.99), 1, now)
	c.AddItem(catalogItem("2", 13.99), 4, now)
	c.UpdateQuantity("5", 9)

	require.Len(t, c.Items, 2)
	assert.Equal(t, "2", c.Items[0].ItemID)
	assert.Equal(t, "5", c.Items[1].ItemID)
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	var a, b Cart
	now := time.Now()

	a.AddItem(catalogItem("1", 14.99), 2, now)
	b.AddItem(catalogItem("1", 14.99), 2, now)

	a.UpdateQuantity("1", 0)
	b.RemoveItem("1")

	assert.Equal(t, b.Items, a.Items, "updateQuantity(id, 0) is equivalent to removeItem(id)")
	assert.Empty(t, a.Items)
}

func TestRemoveAbsentItemIsNoOp(t *testing.T) {
	var c Cart
	c.AddItem(catalogItem("1", 14.99), 1, time.Now())
	c.RemoveItem("999")
	assert.Len(t, c.Items, 1)
}

func TestTotalsWithPercentagePromo(t *testing.T) {
	var c Cart
	c.AddItem(catalogItem("1", 25.00), 2, time.Now()) // subtotal 50

	_, err := c.ApplyPromo("love10")
	require.NoError(t, err)

	assert.InDelta(t, 50.00, c.Subtotal(), 1e-9)
	assert.InDelta(t, 5.00, c.Discount(), 1e-9)
	assert.InDelta(t, 45.00, c.Total(), 1e-9)
}

func TestFixedPromoNeverGoesNegative(t *testing.T) {
	var c Cart
	c.AddItem(catalogItem("1", 3.00), 1, time.Now())

	_, err := c.ApplyPromo("SWEET5")
	require.NoError(t, err)

	assert.InDelta(t, 3.00, c.Discount(), 1e-9)
	assert.InDelta(t, 0.00, c.Total(), 1e-9)
}

func TestInvalidPromoLeavesStateUnchanged(t *testing.T) {
	var c Cart
	c.AddItem(catalogItem("1", 10.00), 1, time.Now())
	_, err := c.ApplyPromo("LOVE10")
	require.NoError(t, err)

	_, err = c.ApplyPromo("NOPE")
	assert.Error(t, err)
	assert.Equal(t, "LOVE10", c.PromoCode, "failed apply keeps the previous code")
}

func TestTotalNeverNegativeUnderRandomOps(t *testing.T) {
	var c Cart
	now := time.Now()

	ops := []func(){
		func() { c.AddItem(catalogItem("1", 14.99), 3, now) },
		func() { c.AddItem(catalogItem("2", 0.50), 1, now) },
		func() { c.UpdateQuantity("1", 1) },
		func() { c.RemoveItem("2") },
		func() { c.ApplyPromo("SWEET5") },
		func() { c.UpdateQuantity("1", 0) },
		func() { c.AddItem(catalogItem("3", 1.00), 2, now) },
		func() { c.RemoveItem("3") },
	}
	for i, op := range ops {
		op()
		assert.GreaterOrEqual(t, c.Total(), 0.0, "total went negative after op %d", i)
	}
}

func TestClearDropsItemsAndPromo(t *testing.T) {
	var c Cart
	c.AddItem(catalogItem("1", 10.00), 1, time.Now())
	_, err := c.ApplyPromo("FIRST15")
	require.NoError(t, err)

	c.Clear()
	assert.Empty(t, c.Items)
	assert.Empty(t, c.PromoCode)
	assert.Zero(t, c.ItemCount())
}

func TestCheckoutEmptyCart(t *testing.T) {
	var c Cart
	_, err := c.Checkout("user-1", time.Now())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutSnapshotsAndClears(t *testing.T) {
	var c Cart
	now := time.Now()
	c.AddItem(catalogItem("1", 14.99), 2, now)
	_, err := c.ApplyPromo("LOVE10")
	require.NoError(t, err)

	wantTotal := c.Total()

	order, err := c.Checkout("user-1", now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderID, "order-"))
	assert.Equal(t, "user-1", order.OwnerID)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.InDelta(t, wantTotal, order.Total, 1e-9)
	assert.Equal(t, "LOVE10", order.PromoCode)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, now, order.CreatedAt)

	// cart emptied with no active promo
	assert.Empty(t, c.Items)
	assert.Empty(t, c.PromoCode)

	// the snapshot is decoupled from later cart mutation
	c.AddItem(catalogItem("9", 1.00), 5, now)
	assert.Equal(t, "1", order.Items[0].ItemID)
	assert.Len(t, order.Items, 1)
}

func TestViewDerivations(t *testing.T) {
	var c Cart
	now := time.Now()
	c.AddItem(catalogItem("1", 14.99), 2, now)
	c.AddItem(catalogItem("2", 13.99), 1, now)

	view := c.View()
	assert.Equal(t, 3, view.ItemCount)
	assert.InDelta(t, 43.97, view.Subtotal, 1e-9)
	assert.Zero(t, view.Discount)
	assert.InDelta(t, view.Subtotal, view.Total, 1e-9)

	_, err := c.ApplyPromo("sweet5")
	require.NoError(t, err)
	view = c.View()
	assert.Equal(t, "SWEET5", view.PromoCode)
	assert.Equal(t, "$5 off your order", view.PromoDetail)
	assert.InDelta(t, 38.97, view.Total, 1e-9)
}
