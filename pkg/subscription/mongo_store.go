package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStoreConfig configures the MongoDB-backed store.
type MongoStoreConfig struct {
	Collection    string `env:"MONGODB_COLLECTION" envDefault:"subscriptions"` // Collection holds subscription documents.
	EnsureIndexes bool   `env:"MONGODB_ENSURE_INDEXES" envDefault:"true"`      // EnsureIndexes creates the userId and isActive indexes on startup.
}

type mongoStore struct {
	coll *mongo.Collection
}

// mongoDocument is the persisted shape. Field names follow the API's camelCase.
type mongoDocument struct {
	ID              bson.ObjectID `bson:"_id"`
	UserID          string        `bson:"userId"`
	Plan            string        `bson:"plan"`
	Duration        string        `bson:"duration"`
	Status          string        `bson:"status"`
	IsTrial         bool          `bson:"isTrial"`
	IsActive        bool          `bson:"isActive"`
	StartedAt       time.Time     `bson:"startedAt"`
	NextBillingDate time.Time     `bson:"nextBillingDate"`
	CanceledAt      *time.Time    `bson:"canceledAt,omitempty"`
}

// NewMongoStore returns a Store persisting subscriptions in db.
// Identifiers are ObjectID hex strings; malformed IDs are reported as not found.
func NewMongoStore(ctx context.Context, db *mongo.Database, cfg MongoStoreConfig) (Store, error) {
	if db == nil {
		panic("subscription: mongo database is required")
	}
	if cfg.Collection == "" {
		cfg.Collection = "subscriptions"
	}

	coll := db.Collection(cfg.Collection)
	if cfg.EnsureIndexes {
		_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "isActive", Value: 1}}},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create subscription indexes: %w", err)
		}
	}

	return &mongoStore{coll: coll}, nil
}

func (s *mongoStore) Insert(ctx context.Context, sub *Subscription) (*Subscription, error) {
	doc := toMongoDocument(sub)
	doc.ID = bson.NewObjectID()

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert subscription: %w", err)
	}
	return doc.toSubscription(), nil
}

func (s *mongoStore) FindByID(ctx context.Context, id string) (*Subscription, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrSubscriptionNotFound
	}

	var doc mongoDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to find subscription %s: %w", id, err)
	}
	return doc.toSubscription(), nil
}

func (s *mongoStore) FindMany(ctx context.Context, filter Filter) ([]*Subscription, error) {
	query := bson.M{}
	if filter.UserID != "" {
		query["userId"] = filter.UserID
	}
	if filter.ActiveOnly {
		query["isActive"] = true
	}

	cur, err := s.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}

	var docs []mongoDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode subscriptions: %w", err)
	}

	subs := make([]*Subscription, 0, len(docs))
	for i := range docs {
		subs = append(subs, docs[i].toSubscription())
	}
	return subs, nil
}

func (s *mongoStore) Save(ctx context.Context, sub *Subscription) (*Subscription, error) {
	oid, err := bson.ObjectIDFromHex(sub.ID)
	if err != nil {
		return nil, ErrSubscriptionNotFound
	}

	doc := toMongoDocument(sub)
	doc.ID = oid

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to save subscription %s: %w", sub.ID, err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrSubscriptionNotFound
	}
	return doc.toSubscription(), nil
}

func toMongoDocument(sub *Subscription) mongoDocument {
	doc := mongoDocument{
		UserID:          sub.UserID,
		Plan:            sub.Plan,
		Duration:        string(sub.Duration),
		Status:          string(sub.Status),
		IsTrial:         sub.IsTrial,
		IsActive:        sub.IsActive,
		StartedAt:       sub.StartedAt,
		NextBillingDate: sub.NextBillingDate,
	}
	if sub.CanceledAt != nil {
		t := *sub.CanceledAt
		doc.CanceledAt = &t
	}
	return doc
}

func (d *mongoDocument) toSubscription() *Subscription {
	sub := &Subscription{
		ID:              d.ID.Hex(),
		UserID:          d.UserID,
		Plan:            d.Plan,
		Duration:        Duration(d.Duration),
		Status:          StatusActive,
		IsTrial:         d.IsTrial,
		IsActive:        d.IsActive,
		StartedAt:       d.StartedAt.UTC(),
		NextBillingDate: d.NextBillingDate.UTC(),
	}
	// Documents written without a status default to active.
	if d.Status != "" {
		sub.Status = Status(d.Status)
	}
	if d.CanceledAt != nil {
		t := d.CanceledAt.UTC()
		sub.CanceledAt = &t
	}
	return sub
}
