package models

// Product is a catalog-defined bar. The catalog is fixed at process start
// and never mutated.
type Product struct {
	ProductID   int      `json:"id" bson:"id"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description" bson:"description"`
	Price       float64  `json:"price" bson:"price"`
	Image       string   `json:"image" bson:"image"`
	Category    string   `json:"category" bson:"category"`
	Ingredients []string `json:"ingredients" bson:"ingredients"`
	Emotion     string   `json:"emotion" bson:"emotion"`
	Story       string   `json:"story" bson:"story"`
}
