package models

import "time"

// User is a registered customer. Passwords are stored and compared in
// plaintext; that is preserved source behavior, not an endorsement.
type User struct {
	UserID      string      `json:"userid" bson:"userid"`
	Name        string      `json:"name" bson:"name"`
	Email       string      `json:"email" bson:"email"`
	Password    string      `json:"-" bson:"password"`
	JoinedAt    time.Time   `json:"joinedAt" bson:"joinedAt"`
	Preferences Preferences `json:"preferences" bson:"preferences"`
	Avatar      string      `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Transient   bool        `json:"transient,omitempty" bson:"-"`
}

// Preferences is the user's taste profile.
type Preferences struct {
	FavoriteEmotions   []string `json:"favoriteEmotions" bson:"favoriteEmotions"`
	PreferredChocolate string   `json:"preferredChocolate" bson:"preferredChocolate"`
}

// DefaultPreferences returns the preference bag new accounts start with.
func DefaultPreferences() Preferences {
	return Preferences{
		FavoriteEmotions:   []string{},
		PreferredChocolate: "dark",
	}
}
