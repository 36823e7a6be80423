// Package orders keeps the append-only order history: recording at
// checkout, per-owner listing, receipts and export. Orders are never
// edited or deleted here.
package orders

import (
	"context"
	"errors"

	"fleur/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("order not found")

// Repo is the durable backing for order records.
type Repo interface {
	Insert(ctx context.Context, order models.Order) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Order, error)
	FindByID(ctx context.Context, orderID string) (models.Order, error)
}

// Recorder is the append-only order history.
type Recorder struct {
	repo Repo
}

func NewRecorder(repo Repo) *Recorder {
	return &Recorder{repo: repo}
}

// Record appends a finalized order. The snapshot is already immutable by
// the time it gets here.
func (r *Recorder) Record(ctx context.Context, order models.Order) error {
	return r.repo.Insert(ctx, order)
}

// ListFor returns the orders owned by exactly this owner. Guest orders
// (empty owner) are never mixed into a user's history.
func (r *Recorder) ListFor(ctx context.Context, ownerID string) ([]models.Order, error) {
	if ownerID == "" {
		return []models.Order{}, nil
	}
	return r.repo.ListByOwner(ctx, ownerID)
}

// FindByID fetches one order; unknown ids get ErrNotFound.
func (r *Recorder) FindByID(ctx context.Context, orderID string) (models.Order, error) {
	return r.repo.FindByID(ctx, orderID)
}

// MongoRepo backs the recorder with the orders collection.
type MongoRepo struct {
	coll *mongo.Collection
}

func NewMongoRepo(coll *mongo.Collection) *MongoRepo {
	return &MongoRepo{coll: coll}
}

func (m *MongoRepo) Insert(ctx context.Context, order models.Order) error {
	_, err := m.coll.InsertOne(ctx, order)
	return err
}

func (m *MongoRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Order, error) {
	cursor, err := m.coll.Find(ctx,
		bson.M{"ownerId": ownerID},
		options.Find().SetSort(bson.M{"createdAt": -1}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Order{}
	}
	return list, nil
}

func (m *MongoRepo) FindByID(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := m.coll.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}
