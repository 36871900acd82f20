package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zerotrace/smart-facility/internal/core/domain"
)

const activityCollection = "activity_log"

// ActivityRepository implements ports.ActivityRepository on the activity_log collection.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

// EnsureIndexes creates the compound index used by ListByEntity.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "entity_type", Value: 1},
			{Key: "entity_id", Value: 1},
			{Key: "occurred_at", Value: -1},
		},
		Options: options.Index().SetName("entity_occurred_at"),
	})
	if err != nil {
		return fmt.Errorf("create activity index: %w", err)
	}
	return nil
}

func (r *ActivityRepository) Insert(ctx context.Context, e *domain.ActivityEvent) error {
	doc := bson.M{
		"entity_type": e.EntityType,
		"entity_id":   int64(e.EntityID),
		"action":      e.Action,
		"occurred_at": e.OccurredAt.UTC(),
	}
	if e.Status != "" {
		doc["status"] = e.Status
	}
	if e.Detail != "" {
		doc["detail"] = e.Detail
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListByEntity(ctx context.Context, entityType string, entityID uint, limit int) ([]*domain.ActivityEvent, error) {
	filter := bson.M{"entity_type": entityType, "entity_id": int64(entityID)}
	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find activity: %w", err)
	}
	defer cur.Close(ctx)

	var docs []activityDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode activity: %w", err)
	}

	events := make([]*domain.ActivityEvent, len(docs))
	for i, d := range docs {
		events[i] = &domain.ActivityEvent{
			EntityType: d.EntityType,
			EntityID:   uint(d.EntityID),
			Action:     d.Action,
			Status:     d.Status,
			Detail:     d.Detail,
			OccurredAt: d.OccurredAt.UTC(),
		}
	}
	return events, nil
}

type activityDoc struct {
	EntityType string    `bson:"entity_type"`
	EntityID   int64     `bson:"entity_id"`
	Action     string    `bson:"action"`
	Status     string    `bson:"status,omitempty"`
	Detail     string    `bson:"detail,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
}
