package models

// Slot is one of the three customization axes of the bar builder.
type Slot string

const (
	SlotBase    Slot = "base"
	SlotFruit   Slot = "fruit"
	SlotEmotion Slot = "emotion"
)

// SlotOrder is the fixed order the builder wizard visits slots in.
var SlotOrder = []Slot{SlotBase, SlotFruit, SlotEmotion}

// Option is one choice within a slot's table.
type Option struct {
	Key         string  `json:"key" bson:"key"`
	Name        string  `json:"name" bson:"name"`
	Description string  `json:"description" bson:"description"`
	Color       string  `json:"color" bson:"color"`
	Price       float64 `json:"price" bson:"price"`
}

// Selection is a frozen copy of a completed set of builder choices,
// carried by the custom bar it produced.
type Selection struct {
	Base    string `json:"base" bson:"base"`
	Fruit   string `json:"fruit" bson:"fruit"`
	Emotion string `json:"emotion" bson:"emotion"`
}
