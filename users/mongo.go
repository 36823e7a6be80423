package users

import (
	"context"

	"fleur/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepo backs the user store with the users collection.
type MongoRepo struct {
	coll *mongo.Collection
}

func NewMongoRepo(coll *mongo.Collection) *MongoRepo {
	return &MongoRepo{coll: coll}
}

func (m *MongoRepo) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := m.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (m *MongoRepo) FindByID(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := m.coll.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (m *MongoRepo) Insert(ctx context.Context, user models.User) error {
	_, err := m.coll.InsertOne(ctx, user)
	return err
}

func (m *MongoRepo) UpdatePreferences(ctx context.Context, userID string, prefs models.Preferences) error {
	res, err := m.coll.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"preferences": prefs}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) SetAvatar(ctx context.Context, userID, path string) error {
	res, err := m.coll.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"avatar": path}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
