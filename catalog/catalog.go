// Package catalog holds the static product list and the bar-builder option
// tables. Everything here is read-only after process start; lookups,
// filtering and search are pure functions over the fixed data.
package catalog

import (
	"errors"
	"strings"

	"fleur/models"
)

var ErrNotFound = errors.New("product not found")

var products = []models.Product{
	{
		ProductID:   1,
		Name:        "Midnight Berry",
		Description: "Dark chocolate infused with wild berries and a whisper of nostalgia",
		Price:       14.99,
		Image:       "dark-berry.jpg",
		Category:    "signature",
		Ingredients: []string{"Dark Chocolate 70%", "Wild Berries", "Natural Vanilla"},
		Emotion:     "nostalgia",
		Story:       "Born from memories of midnight walks through berry fields under starlit skies.",
	},
	{
		ProductID:   2,
		Name:        "Golden Citrus Dream",
		Description: "Milk chocolate embracing bright citrus notes for moments of pure joy",
		Price:       13.99,
		Image:       "milk-citrus.jpg",
		Category:    "signature",
		Ingredients: []string{"Milk Chocolate", "Orange Zest", "Lemon Oil", "Honey"},
		Emotion:     "joy",
		Story:       "Inspired by sun-drenched mornings and the first taste of summer.",
	},
	{
		ProductID:   3,
		Name:        "Serene White Exotic",
		Description: "White chocolate with exotic fruits, crafted for moments of calm reflection",
		Price:       15.99,
		Image:       "white-exotic.jpg",
		Category:    "signature",
		Ingredients: []string{"White Chocolate", "Passion Fruit", "Mango", "Coconut"},
		Emotion:     "calm",
		Story:       "A gentle embrace of tranquility, like watching clouds drift on a peaceful afternoon.",
	},
	{
		ProductID:   4,
		Name:        "Bold Spice Adventure",
		Description: "Dark chocolate with warming spices for the adventurous soul",
		Price:       16.99,
		Image:       "dark-spice.jpg",
		Category:    "limited",
		Ingredients: []string{"Dark Chocolate 85%", "Cinnamon", "Cardamom", "Pink Pepper"},
		Emotion:     "bold",
		Story:       "For those who dare to explore the depths of flavor and emotion.",
	},
	{
		ProductID:   5,
		Name:        "Comfort Berry Milk",
		Description: "Creamy milk chocolate with comforting berry notes",
		Price:       12.99,
		Image:       "milk-berry.jpg",
		Category:    "signature",
		Ingredients: []string{"Milk Chocolate", "Strawberries", "Raspberries", "Vanilla"},
		Emotion:     "comfort",
		Story:       "Like a warm hug from someone who truly understands you.",
	},
	{
		ProductID:   6,
		Name:        "Mysterious Dark Forest",
		Description: "Complex dark chocolate with forest fruit mysteries",
		Price:       17.99,
		Image:       "dark-forest.jpg",
		Category:    "limited",
		Ingredients: []string{"Dark Chocolate 90%", "Blackcurrant", "Elderberry", "Sage"},
		Emotion:     "mystery",
		Story:       "Secrets whispered by ancient trees, captured in every bite.",
	},
}

var options = map[models.Slot][]models.Option{
	models.SlotBase: {
		{Key: "dark", Name: "Dark Chocolate", Description: "Rich, intense 70% cocoa", Color: "#3E2723", Price: 0},
		{Key: "milk", Name: "Milk Chocolate", Description: "Creamy and smooth", Color: "#8D6E63", Price: 0},
		{Key: "white", Name: "White Chocolate", Description: "Pure and delicate", Color: "#FFF8E1", Price: 1},
	},
	models.SlotFruit: {
		{Key: "berry", Name: "Berry Blend", Description: "Strawberries, raspberries, blueberries", Color: "#E91E63", Price: 2},
		{Key: "citrus", Name: "Citrus Burst", Description: "Orange, lemon, lime zest", Color: "#FF9800", Price: 2},
		{Key: "exotic", Name: "Exotic Dreams", Description: "Passion fruit, mango, dragon fruit", Color: "#4CAF50", Price: 3},
	},
	models.SlotEmotion: {
		{Key: "calm", Name: "Calm Essence", Description: "Lavender and chamomile notes", Color: "#2196F3", Price: 1},
		{Key: "bold", Name: "Bold Spirit", Description: "Spices and warming elements", Color: "#F44336", Price: 1},
		{Key: "nostalgic", Name: "Nostalgic Touch", Description: "Vanilla and comforting aromatics", Color: "#795548", Price: 1},
	},
}

// All returns the full catalog in definition order.
func All() []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}

// ByID looks up a product by catalog id.
func ByID(id int) (models.Product, error) {
	for _, p := range products {
		if p.ProductID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

// Filter returns products matching the given category and emotion tags.
// Empty or "all" means no constraint for that axis. Matching is exact
// after case normalization.
func Filter(category, emotion string) []models.Product {
	category = strings.ToLower(strings.TrimSpace(category))
	emotion = strings.ToLower(strings.TrimSpace(emotion))

	out := []models.Product{}
	for _, p := range products {
		if category != "" && category != "all" && strings.ToLower(p.Category) != category {
			continue
		}
		if emotion != "" && emotion != "all" && strings.ToLower(p.Emotion) != emotion {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Search returns products whose name, description or any ingredient
// contains the query, case-insensitively.
func Search(query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return All()
	}

	out := []models.Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
			continue
		}
		for _, ing := range p.Ingredients {
			if strings.Contains(strings.ToLower(ing), q) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Options returns the option table for a slot, in display order.
func Options(slot models.Slot) []models.Option {
	table, ok := options[slot]
	if !ok {
		return nil
	}
	out := make([]models.Option, len(table))
	copy(out, table)
	return out
}

// Option looks up a single option by slot and key.
func Option(slot models.Slot, key string) (models.Option, bool) {
	for _, opt := range options[slot] {
		if opt.Key == key {
			return opt, true
		}
	}
	return models.Option{}, false
}

// AllOptions returns every slot's table, for the builder UI.
func AllOptions() map[models.Slot][]models.Option {
	out := make(map[models.Slot][]models.Option, len(options))
	for slot := range options {
		out[slot] = Options(slot)
	}
	return out
}
