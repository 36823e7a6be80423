package customizer

import (
	"strings"
	"sync"
	"testing"
	"time"

	"fleur/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectOptionAdvancesAndClamps(t *testing.T) {
	s := NewSession(DefaultBasePrice)
	assert.Equal(t, models.SlotBase, s.CurrentStep())

	require.True(t, s.SelectOption(models.SlotBase, "dark"))
	assert.Equal(t, models.SlotFruit, s.CurrentStep())

	require.True(t, s.SelectOption(models.SlotFruit, "berry"))
	assert.Equal(t, models.SlotEmotion, s.CurrentStep())

	require.True(t, s.SelectOption(models.SlotEmotion, "bold"))
	assert.Equal(t, models.SlotEmotion, s.CurrentStep(), "step clamps at the last slot")
}

func TestSelectOptionUnknownKeyIsNoOp(t *testing.T) {
	s := NewSession(DefaultBasePrice)
	priceBefore := s.CurrentPrice()
	stepBefore := s.CurrentStep()

	assert.False(t, s.SelectOption(models.SlotBase, "ruby"))
	assert.Equal(t, priceBefore, s.CurrentPrice())
	assert.Equal(t, stepBefore, s.CurrentStep())
	assert.False(t, s.IsComplete())
}

func TestSelectOptionOverwritesSlot(t *testing.T) {
	s := NewSession(DefaultBasePrice)
	require.True(t, s.SelectOption(models.SlotFruit, "berry"))
	require.True(t, s.SelectOption(models.SlotFruit, "exotic"))

	// only the second choice counts: base 12.99 + exotic 3
	assert.InDelta(t, 15.99, s.CurrentPrice(), 1e-9)
}

func TestCurrentPriceSumsSelectedDeltas(t *testing.T) {
	s := NewSession(DefaultBasePrice)
	assert.InDelta(t, 12.99, s.CurrentPrice(), 1e-9)

	s.SelectOption(models.SlotBase, "dark")    // +0
	s.SelectOption(models.SlotFruit, "berry")  // +2
	s.SelectOption(models.SlotEmotion, "bold") // +1
	assert.InDelta(t, 15.99, s.CurrentPrice(), 1e-9)
}

func TestMaterializeRequiresCompleteSelection(t *testing.T) {
	s := NewSession(DefaultBasePrice)
	s.SelectOption(models.SlotBase, "dark")
	s.SelectOption(models.SlotFruit, "berry")

	_, err := s.Materialize(time.Now())
	assert.ErrorIs(t, err, ErrIncompleteSelection)
}

func TestMaterializeFreezesItem(t *testing.T) {
	s := NewSession(DefaultBasePrice)
	s.SelectOption(models.SlotBase, "dark")
	s.SelectOption(models.SlotFruit, "berry")
	s.SelectOption(models.SlotEmotion, "bold")

	now := time.Now()
	item, err := s.Materialize(now)
	require.NoError(t, err)

	assert.Equal(t, models.LineItemCustom, item.Kind)
	assert.True(t, strings.HasPrefix(item.ItemID, "custom-"))
	assert.Equal(t, "Bold Spirit Dark Chocolate with Berry Blend", item.Name)
	assert.InDelta(t, 15.99, item.UnitPrice, 1e-9)
	require.NotNil(t, item.Customization)
	assert.Equal(t, models.Selection{Base: "dark", Fruit: "berry", Emotion: "bold"}, *item.Customization)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, now, item.AddedAt)

	// materializing does not mutate the session
	assert.True(t, s.IsComplete())
	assert.InDelta(t, 15.99, s.CurrentPrice(), 1e-9)

	// ids are unique across materializations
	again, err := s.Materialize(now)
	require.NoError(t, err)
	assert.NotEqual(t, item.ItemID, again.ItemID)
}

func TestPlaceholderNameUntilComplete(t *testing.T) {
	s := NewSession(DefaultBasePrice)
	assert.Equal(t, "Your Custom Creation", s.Name())

	s.SelectOption(models.SlotBase, "milk")
	assert.Equal(t, "Your Custom Creation", s.Name())

	s.SelectOption(models.SlotFruit, "citrus")
	s.SelectOption(models.SlotEmotion, "calm")
	assert.Equal(t, "Calm Essence Milk Chocolate with Citrus Burst", s.Name())
	assert.Equal(t,
		"Creamy and smooth enhanced with orange, lemon, lime zest and lavender and chamomile notes",
		s.Description())
}

func TestReset(t *testing.T) {
	s := NewSession(DefaultBasePrice)
	s.SelectOption(models.SlotBase, "white")
	s.SelectOption(models.SlotFruit, "exotic")
	s.Reset()

	assert.Equal(t, models.SlotBase, s.CurrentStep())
	assert.InDelta(t, DefaultBasePrice, s.CurrentPrice(), 1e-9)
	assert.False(t, s.IsComplete())
}

func TestDeluxeEditionBasePrice(t *testing.T) {
	s := NewSession(24.99)
	s.SelectOption(models.SlotBase, "white") // +1
	assert.InDelta(t, 25.99, s.CurrentPrice(), 1e-9)
}

func TestSessionConcurrentUse(t *testing.T) {
	s := NewSession(DefaultBasePrice)

	// overlapping requests for the same session key share one Session
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.SelectOption(models.SlotBase, "dark")
			s.SelectOption(models.SlotFruit, "berry")
			s.SelectOption(models.SlotEmotion, "bold")
			_ = s.CurrentPrice()
			_ = s.View()
		}()
	}
	wg.Wait()

	require.True(t, s.IsComplete())
	assert.InDelta(t, 15.99, s.CurrentPrice(), 1e-9)
	assert.Equal(t, "Bold Spirit Dark Chocolate with Berry Blend", s.Name())
}

func TestStoreKeyedSessions(t *testing.T) {
	st := NewStore(DefaultBasePrice)

	a := st.Session("guest-a")
	b := st.Session("guest-b")
	require.NotSame(t, a, b)

	a.SelectOption(models.SlotBase, "dark")
	assert.False(t, b.IsComplete())
	assert.Same(t, a, st.Session("guest-a"), "same key returns the active session")

	st.Drop("guest-a")
	assert.NotSame(t, a, st.Session("guest-a"))
}
