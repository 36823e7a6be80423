package catalog

import (
	"testing"

	"fleur/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByID(t *testing.T) {
	p, err := ByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Midnight Berry", p.Name)

	_, err = ByID(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFilter(t *testing.T) {
	limited := Filter("limited", "")
	require.Len(t, limited, 2)
	for _, p := range limited {
		assert.Equal(t, "limited", p.Category)
	}

	bold := Filter("Limited", "BOLD")
	require.Len(t, bold, 1)
	assert.Equal(t, 4, bold[0].ProductID)

	assert.Len(t, Filter("all", "all"), len(All()))
	assert.Empty(t, Filter("signature", "mystery"))
}

func TestFilterDoesNotMutateCatalog(t *testing.T) {
	out := Filter("limited", "")
	out[0].Name = "tampered"

	p, err := ByID(out[0].ProductID)
	require.NoError(t, err)
	assert.NotEqual(t, "tampered", p.Name)
}

func TestSearch(t *testing.T) {
	// ingredient substring, case-insensitive
	hits := Search("cardamom")
	require.Len(t, hits, 1)
	assert.Equal(t, "Bold Spice Adventure", hits[0].Name)

	// name substring
	assert.NotEmpty(t, Search("berry"))

	// no match
	assert.Empty(t, Search("licorice"))

	// blank query returns everything
	assert.Len(t, Search("  "), len(All()))
}

func TestOptionTables(t *testing.T) {
	base := Options(models.SlotBase)
	require.Len(t, base, 3)

	dark, ok := Option(models.SlotBase, "dark")
	require.True(t, ok)
	assert.Zero(t, dark.Price)

	exotic, ok := Option(models.SlotFruit, "exotic")
	require.True(t, ok)
	assert.InDelta(t, 3.0, exotic.Price, 1e-9)

	_, ok = Option(models.SlotEmotion, "dark")
	assert.False(t, ok, "keys belong to one slot only")
}
