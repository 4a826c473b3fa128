package dashboard

import (
	"context"
	"time"

	"go-dashboard/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListOptions filters and pages the dashboard listing.
type ListOptions struct {
	Creator *primitive.ObjectID
	Offset  int64
	Limit   int64
}

// DashboardRepository is the persistence surface of the feature. Lookups
// return (nil, nil) when nothing matches; only store failures are errors.
type DashboardRepository interface {
	List(ctx context.Context, opts ListOptions) ([]Dashboard, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Dashboard, error)
	GetForUser(ctx context.Context, id, userID primitive.ObjectID) (*Dashboard, error)
	Create(ctx context.Context, d *Dashboard) error
	Remove(ctx context.Context, id primitive.ObjectID) (*Dashboard, error)
	Rename(ctx context.Context, id primitive.ObjectID, name string) (*Dashboard, error)
	ReplaceWidgetOrder(ctx context.Context, id primitive.ObjectID, order []string) (*Dashboard, error)
	PushWidget(ctx context.Context, id primitive.ObjectID, widget WidgetInstance) (*Dashboard, error)
	PullWidget(ctx context.Context, id primitive.ObjectID, widgetID string) (*Dashboard, error)
	SetWidgetSettings(ctx context.Context, id primitive.ObjectID, widgetID string, value map[string]interface{}) (*Dashboard, error)
	SetWidgetColumns(ctx context.Context, id primitive.ObjectID, widgetID string, columns interface{}) (*Dashboard, error)
}

type DashboardRepositoryImpl struct {
	collection *mongo.Collection
}

func NewDashboardRepository(db *database.MongodbDB) DashboardRepository {
	return &DashboardRepositoryImpl{
		collection: db.DB.Collection("dashboards"),
	}
}

func (r *DashboardRepositoryImpl) List(ctx context.Context, opts ListOptions) ([]Dashboard, error) {
	filter := bson.M{}
	if opts.Creator != nil {
		filter["creator"] = *opts.Creator
	}

	offset, limit := normalizePaging(opts.Offset, opts.Limit)

	findOptions := options.Find().
		SetSkip(offset).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	dashboards := []Dashboard{}
	if err = cursor.All(ctx, &dashboards); err != nil {
		return nil, err
	}

	return dashboards, nil
}

func normalizePaging(offset, limit int64) (int64, int64) {
	if offset < 0 {
		offset = DefaultOffset
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return offset, limit
}

func (r *DashboardRepositoryImpl) Get(ctx context.Context, id primitive.ObjectID) (*Dashboard, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *DashboardRepositoryImpl) GetForUser(ctx context.Context, id, userID primitive.ObjectID) (*Dashboard, error) {
	return r.findOne(ctx, bson.M{"_id": id, "creator": userID})
}

func (r *DashboardRepositoryImpl) findOne(ctx context.Context, filter bson.M) (*Dashboard, error) {
	var d Dashboard
	err := r.collection.FindOne(ctx, filter).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DashboardRepositoryImpl) Create(ctx context.Context, d *Dashboard) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	if d.Widgets.Instances == nil {
		d.Widgets.Instances = []WidgetInstance{}
	}

	_, err := r.collection.InsertOne(ctx, d)
	return err
}

func (r *DashboardRepositoryImpl) Remove(ctx context.Context, id primitive.ObjectID) (*Dashboard, error) {
	var d Dashboard
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DashboardRepositoryImpl) Rename(ctx context.Context, id primitive.ObjectID, name string) (*Dashboard, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name}})
}

func (r *DashboardRepositoryImpl) ReplaceWidgetOrder(ctx context.Context, id primitive.ObjectID, order []string) (*Dashboard, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"widgets.order": order}})
}

func (r *DashboardRepositoryImpl) PushWidget(ctx context.Context, id primitive.ObjectID, widget WidgetInstance) (*Dashboard, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"widgets.instances": widget}})
}

// PullWidget removes the instance and its order entry in one update so no
// reader ever sees a split state.
func (r *DashboardRepositoryImpl) PullWidget(ctx context.Context, id primitive.ObjectID, widgetID string) (*Dashboard, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{
			"widgets.instances": bson.M{"id": widgetID},
			"widgets.order":     widgetID,
		}})
}

func (r *DashboardRepositoryImpl) SetWidgetSettings(ctx context.Context, id primitive.ObjectID, widgetID string, value map[string]interface{}) (*Dashboard, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": id, "widgets.instances.id": widgetID},
		bson.M{"$set": bson.M{"widgets.instances.$.settings": value}})
}

// SetWidgetColumns touches only the columns key of the widget's settings,
// preserving every other stored key.
func (r *DashboardRepositoryImpl) SetWidgetColumns(ctx context.Context, id primitive.ObjectID, widgetID string, columns interface{}) (*Dashboard, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": id, "widgets.instances.id": widgetID},
		bson.M{"$set": bson.M{"widgets.instances.$.settings.columns": columns}})
}

func (r *DashboardRepositoryImpl) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*Dashboard, error) {
	var d Dashboard
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}
