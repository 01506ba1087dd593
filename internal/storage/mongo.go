package storage

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoItem struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type MongoStorage struct {
	col *mongo.Collection
}

func NewMongo(col *mongo.Collection) *MongoStorage {
	return &MongoStorage{col: col}
}

func (m *MongoStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var item mongoItem
	if err := m.col.FindOne(ctx, bson.M{"_id": key}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, err
	}
	return item.Value, true, nil
}

func (m *MongoStorage) SetItem(ctx context.Context, key, value string) error {
	update := bson.M{"$set": bson.M{
		"value":      value,
		"updated_at": time.Now().UTC(),
	}}
	_, err := m.col.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	return err
}

func (m *MongoStorage) RemoveItem(ctx context.Context, key string) error {
	_, err := m.col.DeleteOne(ctx, bson.M{"_id": key})
	return err
}
