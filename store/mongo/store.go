// Package mongo provides a MongoDB-backed Store.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/unchainedshop/unchained-sub022/discount"
	"github.com/unchainedshop/unchained-sub022/id"
	"github.com/unchainedshop/unchained-sub022/store"
)

const (
	collCalculations = "pricing_calculations"
	collDiscounts    = "pricing_applied_discounts"
)

// Config holds the connection settings.
type Config struct {
	URI      string
	Database string
}

// Store implements store.Store on MongoDB. Calculations live in one
// document per order; applied discounts in one document per discount.
type Store struct {
	client *mongo.Client
	db     *mongo.Database

	// ownsClient marks clients created by Connect; only those are
	// disconnected on Close.
	ownsClient bool
}

var _ store.Store = (*Store)(nil)

// Connect creates a client from the config and verifies the connection.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)

		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	return &Store{
		client:     client,
		db:         client.Database(cfg.Database),
		ownsClient: true,
	}, nil
}

// NewWithClient wraps an existing client. Close will not disconnect it.
func NewWithClient(client *mongo.Client, database string) *Store {
	return &Store{client: client, db: client.Database(database)}
}

// SaveOrderCalculation implements store.Store.
func (s *Store) SaveOrderCalculation(ctx context.Context, calc store.OrderCalculation) error {
	doc := newCalculationDoc(calc)

	_, err := s.db.Collection(collCalculations).ReplaceOne(ctx,
		bson.M{"_id": doc.OrderID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo: save calculation: %w", err)
	}

	return nil
}

// OrderCalculation implements store.Store.
func (s *Store) OrderCalculation(ctx context.Context, orderID id.ID) (store.OrderCalculation, error) {
	var doc calculationDoc

	err := s.db.Collection(collCalculations).
		FindOne(ctx, bson.M{"_id": orderID.String()}).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.OrderCalculation{}, store.ErrNotFound
	}
	if err != nil {
		return store.OrderCalculation{}, fmt.Errorf("mongo: load calculation: %w", err)
	}

	return doc.toRecord()
}

// SaveAppliedDiscounts implements store.Store.
func (s *Store) SaveAppliedDiscounts(ctx context.Context, orderID id.ID, discounts []discount.Applied) error {
	coll := s.db.Collection(collDiscounts)

	if _, err := coll.DeleteMany(ctx, bson.M{"order_id": orderID.String()}); err != nil {
		return fmt.Errorf("mongo: clear discounts: %w", err)
	}

	if len(discounts) == 0 {
		return nil
	}

	docs := make([]any, len(discounts))
	for i, applied := range discounts {
		docs[i] = newDiscountDoc(orderID, applied, i)
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("mongo: save discounts: %w", err)
	}

	return nil
}

// AppliedDiscounts implements store.Store.
func (s *Store) AppliedDiscounts(ctx context.Context, orderID id.ID) ([]discount.Applied, error) {
	cursor, err := s.db.Collection(collDiscounts).Find(ctx,
		bson.M{"order_id": orderID.String()},
		options.Find().SetSort(bson.D{{Key: "position", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("mongo: load discounts: %w", err)
	}

	var docs []discountDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decode discounts: %w", err)
	}

	out := make([]discount.Applied, 0, len(docs))
	for _, doc := range docs {
		applied, err := doc.toApplied()
		if err != nil {
			return nil, fmt.Errorf("mongo: decode discount %s: %w", doc.ID, err)
		}

		out = append(out, applied)
	}

	return out, nil
}

// migrationIndexes lists the indexes Migrate ensures per collection.
var migrationIndexes = map[string][]mongo.IndexModel{
	collDiscounts: {
		{
			Keys:    bson.D{{Key: "order_id", Value: 1}, {Key: "position", Value: 1}},
			Options: options.Index().SetName("order_position"),
		},
		{
			Keys:    bson.D{{Key: "order_id", Value: 1}, {Key: "discount_key", Value: 1}},
			Options: options.Index().SetName("order_discount_key"),
		},
	},
}

// Migrate implements store.Store.
func (s *Store) Migrate(ctx context.Context) error {
	for coll, indexes := range migrationIndexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("mongo: create indexes on %s: %w", coll, err)
		}
	}

	return nil
}

// Ping implements store.Store.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close implements store.Store.
func (s *Store) Close(ctx context.Context) error {
	if !s.ownsClient {
		return nil
	}

	return s.client.Disconnect(ctx)
}
