package cart

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"fleur/models"
	"fleur/promo"
)

// MaxAge is how long a persisted cart stays valid. Older snapshots are
// discarded on load and the cart starts empty.
const MaxAge = 24 * time.Hour

// Persister is the durable key-value backing for cart snapshots. Load
// returns (nil, nil) when no snapshot exists.
type Persister interface {
	Save(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// OrderRecorder receives the order snapshot produced by checkout.
type OrderRecorder interface {
	Record(ctx context.Context, order models.Order) error
}

// snapshot is the persisted cart document.
type snapshot struct {
	Items     []models.LineItem `json:"items"`
	PromoCode string            `json:"activePromoCode,omitempty"`
	SavedAt   time.Time         `json:"savedAt"`
}

// decodeSnapshot rebuilds a cart from a stored payload. Corrupt data and
// snapshots older than maxAge both come back as an empty cart; neither is
// an error the caller can act on.
func decodeSnapshot(data []byte, now time.Time, maxAge time.Duration) Cart {
	if len(data) == 0 {
		return Cart{}
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Println("cart snapshot decode error, starting empty:", err)
		return Cart{}
	}
	if now.Sub(snap.SavedAt) > maxAge {
		return Cart{}
	}
	return Cart{Items: snap.Items, PromoCode: snap.PromoCode}
}

// Store persists one cart per session key. Every mutation runs
// load → mutate → recompute → save synchronously; the last writer wins.
type Store struct {
	persister Persister
	recorder  OrderRecorder
	maxAge    time.Duration
	now       func() time.Time
}

func NewStore(p Persister, rec OrderRecorder) *Store {
	return &Store{
		persister: p,
		recorder:  rec,
		maxAge:    MaxAge,
		now:       time.Now,
	}
}

func cartKey(sessionKey string) string {
	return "cart:" + sessionKey
}

func (s *Store) load(ctx context.Context, key string) (Cart, error) {
	data, err := s.persister.Load(ctx, cartKey(key))
	if err != nil {
		return Cart{}, err
	}
	return decodeSnapshot(data, s.now(), s.maxAge), nil
}

func (s *Store) save(ctx context.Context, key string, c Cart) error {
	data, err := json.Marshal(snapshot{
		Items:     c.Items,
		PromoCode: c.PromoCode,
		SavedAt:   s.now(),
	})
	if err != nil {
		return err
	}
	return s.persister.Save(ctx, cartKey(key), data, s.maxAge)
}

// Get returns the current derived view without mutating anything.
func (s *Store) Get(ctx context.Context, key string) (models.CartView, error) {
	c, err := s.load(ctx, key)
	if err != nil {
		return models.CartView{}, err
	}
	return c.View(), nil
}

// AddItem merges or appends an item and persists the result.
func (s *Store) AddItem(ctx context.Context, key string, item models.LineItem, quantity int) (models.CartView, error) {
	c, err := s.load(ctx, key)
	if err != nil {
		return models.CartView{}, err
	}
	c.AddItem(item, quantity, s.now())
	if err := s.save(ctx, key, c); err != nil {
		return models.CartView{}, err
	}
	return c.View(), nil
}

// RemoveItem drops a line item and persists the result.
func (s *Store) RemoveItem(ctx context.Context, key, itemID string) (models.CartView, error) {
	c, err := s.load(ctx, key)
	if err != nil {
		return models.CartView{}, err
	}
	c.RemoveItem(itemID)
	if err := s.save(ctx, key, c); err != nil {
		return models.CartView{}, err
	}
	return c.View(), nil
}

// UpdateQuantity sets an absolute quantity; zero or less removes the item.
func (s *Store) UpdateQuantity(ctx context.Context, key, itemID string, quantity int) (models.CartView, error) {
	c, err := s.load(ctx, key)
	if err != nil {
		return models.CartView{}, err
	}
	c.UpdateQuantity(itemID, quantity)
	if err := s.save(ctx, key, c); err != nil {
		return models.CartView{}, err
	}
	return c.View(), nil
}

// Clear empties the cart and its promo.
func (s *Store) Clear(ctx context.Context, key string) (models.CartView, error) {
	c := Cart{}
	if err := s.save(ctx, key, c); err != nil {
		return models.CartView{}, err
	}
	return c.View(), nil
}

// ApplyPromo activates a code, replacing any previous one. Invalid codes
// leave the persisted cart untouched.
func (s *Store) ApplyPromo(ctx context.Context, key, code string) (models.CartView, promo.Code, error) {
	c, err := s.load(ctx, key)
	if err != nil {
		return models.CartView{}, promo.Code{}, err
	}
	p, err := c.ApplyPromo(code)
	if err != nil {
		return models.CartView{}, promo.Code{}, err
	}
	if err := s.save(ctx, key, c); err != nil {
		return models.CartView{}, promo.Code{}, err
	}
	return c.View(), p, nil
}

// RemovePromo clears the active promo code.
func (s *Store) RemovePromo(ctx context.Context, key string) (models.CartView, error) {
	c, err := s.load(ctx, key)
	if err != nil {
		return models.CartView{}, err
	}
	c.RemovePromo()
	if err := s.save(ctx, key, c); err != nil {
		return models.CartView{}, err
	}
	return c.View(), nil
}

// Checkout snapshots the cart into an order, records it, then clears the
// persisted cart. A recording failure leaves the cart exactly as it was.
func (s *Store) Checkout(ctx context.Context, key, ownerID string) (models.Order, error) {
	c, err := s.load(ctx, key)
	if err != nil {
		return models.Order{}, err
	}

	order, err := c.Checkout(ownerID, s.now())
	if err != nil {
		return models.Order{}, err
	}
	order.SessionKey = key

	if err := s.recorder.Record(ctx, order); err != nil {
		return models.Order{}, err
	}

	if err := s.save(ctx, key, c); err != nil {
		// The order is already recorded; a stale cart snapshot will age
		// out within MaxAge.
		log.Println("cart clear after checkout failed:", err)
	}
	return order, nil
}
