package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/userhub/accounts-api/internal/core/domain"
	"github.com/userhub/accounts-api/internal/core/ports"
)

const eventsCollection = "auth_events"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	events *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) ports.EventRepository {
	return &EventRepository{events: db.Collection(eventsCollection)}
}

// InsertEvent appends one entry to the auth_events audit collection.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.AuthEvent) error {
	doc := bson.M{
		"action":       event.Action,
		"username":     event.Username,
		"timestamp":    event.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.AccountID != 0 {
		doc["account_id"] = event.AccountID
	}
	if event.Reason != "" {
		doc["reason"] = event.Reason
	}

	if _, err := r.events.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

// ListRecent returns the latest audit entries, newest first.
func (r *EventRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuthEvent, error) {
	cur, err := r.events.Find(ctx, bson.M{},
		options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: -1}}).
			SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("list auth events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []struct {
		Action    string    `bson:"action"`
		Username  string    `bson:"username"`
		AccountID int64     `bson:"account_id"`
		Reason    string    `bson:"reason"`
		Timestamp time.Time `bson:"timestamp"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode auth events: %w", err)
	}

	events := make([]domain.AuthEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, domain.AuthEvent{
			Action:    d.Action,
			Username:  d.Username,
			AccountID: d.AccountID,
			Reason:    d.Reason,
			Timestamp: d.Timestamp,
		})
	}
	return events, nil
}
