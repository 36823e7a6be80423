package promo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupNormalizesCase(t *testing.T) {
	for _, code := range []string{"love10", "LOVE10", " Love10 "} {
		p, err := Lookup(code)
		require.NoError(t, err, "code %q", code)
		assert.Equal(t, "LOVE10", p.Code)
		assert.Equal(t, KindPercentage, p.Kind)
	}
}

func TestLookupUnknownCode(t *testing.T) {
	_, err := Lookup("CHOCOHOLIC99")
	assert.ErrorIs(t, err, ErrInvalidPromo)
}

func TestPercentageAmount(t *testing.T) {
	p, err := Lookup("LOVE10")
	require.NoError(t, err)
	assert.InDelta(t, 5.00, p.Amount(50.00), 1e-9)
}

func TestFixedAmountCappedAtSubtotal(t *testing.T) {
	p, err := Lookup("SWEET5")
	require.NoError(t, err)

	assert.InDelta(t, 3.00, p.Amount(3.00), 1e-9, "fixed discount never exceeds subtotal")
	assert.InDelta(t, 5.00, p.Amount(20.00), 1e-9)
	assert.Zero(t, p.Amount(0))
}
