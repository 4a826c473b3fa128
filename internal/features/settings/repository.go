package settings

import (
	"context"
	"time"

	"go-dashboard/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConfigRepository is a key-scoped get/set over per-user configuration
// documents. A nil userID addresses the platform-wide value.
type ConfigRepository interface {
	Get(ctx context.Context, userID *primitive.ObjectID, module, name string) (interface{}, error)
	Set(ctx context.Context, userID *primitive.ObjectID, module, name string, value interface{}) error
	SetKey(ctx context.Context, userID *primitive.ObjectID, module, name, key string, value interface{}) error
}

type ConfigRepositoryImpl struct {
	collection *mongo.Collection
}

func NewConfigRepository(db *database.MongodbDB) ConfigRepository {
	return &ConfigRepositoryImpl{
		collection: db.DB.Collection("configurations"),
	}
}

func scopeFilter(userID *primitive.ObjectID, module, name string) bson.M {
	filter := bson.M{"module": module, "name": name}
	if userID != nil {
		filter["user_id"] = *userID
	} else {
		filter["user_id"] = bson.M{"$exists": false}
	}
	return filter
}

func (r *ConfigRepositoryImpl) Get(ctx context.Context, userID *primitive.ObjectID, module, name string) (interface{}, error) {
	var configuration Configuration
	err := r.collection.FindOne(ctx, scopeFilter(userID, module, name)).Decode(&configuration)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return configuration.Value, nil
}

func (r *ConfigRepositoryImpl) Set(ctx context.Context, userID *primitive.ObjectID, module, name string, value interface{}) error {
	update := bson.M{
		"$set": bson.M{
			"value":      value,
			"updated_at": time.Now(),
		},
	}
	if userID != nil {
		update["$setOnInsert"] = bson.M{"user_id": *userID}
	}

	_, err := r.collection.UpdateOne(ctx, scopeFilter(userID, module, name), update, options.Update().SetUpsert(true))
	return err
}

// SetKey updates a single key of the stored value, leaving siblings alone.
func (r *ConfigRepositoryImpl) SetKey(ctx context.Context, userID *primitive.ObjectID, module, name, key string, value interface{}) error {
	update := bson.M{
		"$set": bson.M{
			"value." + key: value,
			"updated_at":   time.Now(),
		},
	}
	if userID != nil {
		update["$setOnInsert"] = bson.M{"user_id": *userID}
	}

	_, err := r.collection.UpdateOne(ctx, scopeFilter(userID, module, name), update, options.Update().SetUpsert(true))
	return err
}
