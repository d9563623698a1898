package storage

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// slotDocument is the shape of a slot in the "slots" collection
type slotDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoSlot keeps one document per key.
type MongoSlot struct {
	collection *mongo.Collection
}

func NewMongoSlot(collection *mongo.Collection) *MongoSlot {
	return &MongoSlot{collection: collection}
}

func (m *MongoSlot) Get(ctx context.Context, key string) (string, error) {
	var doc slotDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrSlotEmpty
	}
	if err != nil {
		return "", err
	}
	return doc.Value, nil
}

func (m *MongoSlot) Set(ctx context.Context, key, value string) error {
	update := bson.M{"$set": bson.M{"value": value, "updatedAt": time.Now()}}
	_, err := m.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	return err
}
