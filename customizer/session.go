// Package customizer implements the build-your-own-bar wizard: a partial
// slot selection with derived price, name and description, materialized
// into an immutable custom line item once complete.
package customizer

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"fleur/catalog"
	"fleur/models"

	"github.com/google/uuid"
)

var ErrIncompleteSelection = errors.New("all customization steps must be completed")

// DefaultBasePrice is the standard-edition bar price; the deluxe edition
// runs at 24.99 via BAR_BASE_PRICE.
const DefaultBasePrice = 12.99

const placeholderName = "Your Custom Creation"
const placeholderDescription = "Select your preferences to see your unique bar"

// Session holds one in-progress bar build. A session is shared by every
// request carrying the same session key, so all state is guarded by its
// own mutex.
type Session struct {
	mu         sync.Mutex
	basePrice  float64
	selections map[models.Slot]string
	step       int
}

func NewSession(basePrice float64) *Session {
	return &Session{
		basePrice:  basePrice,
		selections: make(map[models.Slot]string),
	}
}

// SelectOption records a choice for a slot, replacing any prior choice.
// Unknown option keys are a silent no-op, so the invariant that every
// stored value exists in its slot's table holds by construction. A valid
// selection advances the step pointer, clamped at the last slot.
func (s *Session) SelectOption(slot models.Slot, key string) bool {
	if _, ok := catalog.Option(slot, key); !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections[slot] = key

	for i, ordered := range models.SlotOrder {
		if ordered == slot {
			next := i + 1
			if next > len(models.SlotOrder)-1 {
				next = len(models.SlotOrder) - 1
			}
			s.step = next
			break
		}
	}
	return true
}

// CurrentStep returns the slot the wizard is on.
func (s *Session) CurrentStep() models.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SlotOrder[s.step]
}

// CurrentPrice is the base price plus the deltas of every chosen option;
// unfilled slots contribute zero.
func (s *Session) CurrentPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.price()
}

// IsComplete reports whether all three slots have a selection.
func (s *Session) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complete()
}

// Name composes the bar name once all slots are filled, otherwise the
// placeholder.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name()
}

// Description composes the bar description once all slots are filled,
// otherwise the placeholder.
func (s *Session) Description() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.description()
}

// Materialize freezes the completed build into a custom line item with a
// fresh id. The session itself is left untouched; callers reset it
// explicitly after adding the item to a cart.
func (s *Session) Materialize(now time.Time) (models.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.complete() {
		return models.LineItem{}, ErrIncompleteSelection
	}

	return models.LineItem{
		Kind:        models.LineItemCustom,
		ItemID:      "custom-" + uuid.New().String(),
		Name:        s.name(),
		Description: s.description(),
		UnitPrice:   s.price(),
		Customization: &models.Selection{
			Base:    s.selections[models.SlotBase],
			Fruit:   s.selections[models.SlotFruit],
			Emotion: s.selections[models.SlotEmotion],
		},
		Quantity: 1,
		AddedAt:  now,
	}, nil
}

// Reset clears all selections and returns the wizard to the first slot.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections = make(map[models.Slot]string)
	s.step = 0
}

// View is the session state returned to the builder UI.
type View struct {
	Selections  map[models.Slot]string `json:"selections"`
	CurrentStep models.Slot            `json:"currentStep"`
	Price       float64                `json:"price"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Complete    bool                   `json:"complete"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := make(map[models.Slot]string, len(s.selections))
	for k, v := range s.selections {
		sel[k] = v
	}
	return View{
		Selections:  sel,
		CurrentStep: models.SlotOrder[s.step],
		Price:       s.price(),
		Name:        s.name(),
		Description: s.description(),
		Complete:    s.complete(),
	}
}

// Callers of the helpers below hold s.mu.

func (s *Session) price() float64 {
	total := s.basePrice
	for slot, key := range s.selections {
		if opt, ok := catalog.Option(slot, key); ok {
			total += opt.Price
		}
	}
	return total
}

func (s *Session) complete() bool {
	for _, slot := range models.SlotOrder {
		if _, ok := s.selections[slot]; !ok {
			return false
		}
	}
	return true
}

func (s *Session) name() string {
	if !s.complete() {
		return placeholderName
	}
	base, _ := catalog.Option(models.SlotBase, s.selections[models.SlotBase])
	fruit, _ := catalog.Option(models.SlotFruit, s.selections[models.SlotFruit])
	emotion, _ := catalog.Option(models.SlotEmotion, s.selections[models.SlotEmotion])
	return fmt.Sprintf("%s %s with %s", emotion.Name, base.Name, fruit.Name)
}

func (s *Session) description() string {
	if !s.complete() {
		return placeholderDescription
	}
	base, _ := catalog.Option(models.SlotBase, s.selections[models.SlotBase])
	fruit, _ := catalog.Option(models.SlotFruit, s.selections[models.SlotFruit])
	emotion, _ := catalog.Option(models.SlotEmotion, s.selections[models.SlotEmotion])
	return fmt.Sprintf("%s enhanced with %s and %s",
		base.Description,
		strings.ToLower(fruit.Description),
		strings.ToLower(emotion.Description))
}
