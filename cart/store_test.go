package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fleur/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePersister struct {
	data map[string][]byte
}

func newFakePersister() *fakePersister {
	return &fakePersister{data: map[string][]byte{}}
}

func (f *fakePersister) Save(_ context.Context, key string, data []byte, _ time.Duration) error {
	f.data[key] = data
	return nil
}

func (f *fakePersister) Load(_ context.Context, key string) ([]byte, error) {
	data, ok := f.data[key]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (f *fakePersister) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

type fakeRecorder struct {
	orders []models.Order
	fail   bool
}

func (f *fakeRecorder) Record(_ context.Context, order models.Order) error {
	if f.fail {
		return errors.New("recorder down")
	}
	f.orders = append(f.orders, order)
	return nil
}

func newTestStore() (*Store, *fakePersister, *fakeRecorder) {
	p := newFakePersister()
	rec := &fakeRecorder{}
	return NewStore(p, rec), p, rec
}

func TestStoreRoundTrip(t *testing.T) {
	s, _, _ := newTestStore()
	ctx := context.Background()

	view, err := s.AddItem(ctx, "sess-1", catalogItem("1", 14.99), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, view.ItemCount)

	view, err = s.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "1", view.Items[0].ItemID)
	assert.InDelta(t, 29.98, view.Total, 1e-9)
}

func TestStoreIsolatesSessionKeys(t *testing.T) {
	s, _, _ := newTestStore()
	ctx := context.Background()

	_, err := s.AddItem(ctx, "sess-a", catalogItem("1", 14.99), 1)
	require.NoError(t, err)

	view, err := s.Get(ctx, "sess-b")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestStoreExpiresStaleSnapshots(t *testing.T) {
	s, _, _ := newTestStore()
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }

	_, err := s.AddItem(ctx, "sess-1", catalogItem("1", 14.99), 1)
	require.NoError(t, err)

	// just inside the window the cart survives
	s.now = func() time.Time { return base.Add(MaxAge - time.Minute) }
	view, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "1", view.Items[0].ItemID)

	// past it the snapshot is discarded
	s.now = func() time.Time { return base.Add(MaxAge + time.Minute) }
	view, err = s.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Empty(t, view.PromoCode)
}

func TestStoreIgnoresCorruptSnapshot(t *testing.T) {
	s, p, _ := newTestStore()
	ctx := context.Background()

	p.data[cartKey("sess-1")] = []byte("{not json")

	view, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestStoreApplyPromoInvalidLeavesPersistedCart(t *testing.T) {
	s, p, _ := newTestStore()
	ctx := context.Background()

	_, err := s.AddItem(ctx, "sess-1", catalogItem("1", 10.00), 1)
	require.NoError(t, err)
	before := string(p.data[cartKey("sess-1")])

	_, _, err = s.ApplyPromo(ctx, "sess-1", "BOGUS")
	assert.Error(t, err)
	assert.Equal(t, before, string(p.data[cartKey("sess-1")]))

	view, _, err := s.ApplyPromo(ctx, "sess-1", "first15")
	require.NoError(t, err)
	assert.Equal(t, "FIRST15", view.PromoCode)
	assert.InDelta(t, 8.50, view.Total, 1e-9)
}

func TestStoreCheckoutRecordsThenClears(t *testing.T) {
	s, _, rec := newTestStore()
	ctx := context.Background()

	_, err := s.AddItem(ctx, "sess-1", catalogItem("1", 14.99), 2)
	require.NoError(t, err)
	_, _, err = s.ApplyPromo(ctx, "sess-1", "LOVE10")
	require.NoError(t, err)

	order, err := s.Checkout(ctx, "sess-1", "user-1")
	require.NoError(t, err)
	require.Len(t, rec.orders, 1)
	assert.Equal(t, order.OrderID, rec.orders[0].OrderID)
	assert.Equal(t, "user-1", order.OwnerID)
	assert.Equal(t, "sess-1", rec.orders[0].SessionKey)
	assert.InDelta(t, 26.982, order.Total, 1e-6)

	view, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Empty(t, view.PromoCode)
}

func TestStoreGuestCheckoutStampsSessionKey(t *testing.T) {
	s, _, rec := newTestStore()
	ctx := context.Background()

	_, err := s.AddItem(ctx, "guest-abc", catalogItem("1", 14.99), 1)
	require.NoError(t, err)

	order, err := s.Checkout(ctx, "guest-abc", "")
	require.NoError(t, err)
	assert.Empty(t, order.OwnerID, "guest orders carry no owner")
	require.Len(t, rec.orders, 1)
	assert.Equal(t, "guest-abc", rec.orders[0].SessionKey)
}

func TestStoreCheckoutEmptyCart(t *testing.T) {
	s, _, rec := newTestStore()

	_, err := s.Checkout(context.Background(), "sess-1", "user-1")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, rec.orders)
}

func TestStoreCheckoutRecorderFailureKeepsCart(t *testing.T) {
	s, _, rec := newTestStore()
	ctx := context.Background()

	_, err := s.AddItem(ctx, "sess-1", catalogItem("1", 14.99), 1)
	require.NoError(t, err)

	rec.fail = true
	_, err = s.Checkout(ctx, "sess-1", "user-1")
	assert.Error(t, err)

	view, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1, "a failed checkout must not lose the cart")
}

func TestSnapshotWireFormat(t *testing.T) {
	s, p, _ := newTestStore()
	ctx := context.Background()

	_, err := s.AddItem(ctx, "sess-1", catalogItem("1", 14.99), 1)
	require.NoError(t, err)
	_, _, err = s.ApplyPromo(ctx, "sess-1", "LOVE10")
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(p.data[cartKey("sess-1")], &raw))
	assert.Contains(t, raw, "items")
	assert.Contains(t, raw, "activePromoCode")
	assert.Contains(t, raw, "savedAt")
}
