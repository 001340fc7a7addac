package registry

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userDocument is the per-user document shape.
type userDocument struct {
	ID        string   `bson:"_id"`
	Favorites []string `bson:"favorites"`
	History   []string `bson:"history"`
}

// MongoStore is the document-store Store backend. One document per
// user; set semantics come from $addToSet and ordered history from
// $push. Favorite/history updates are issued without upsert so writes
// for unregistered users match nothing and stay no-ops.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store on the given collection.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (s *MongoStore) Register(ctx context.Context, userID string) error {
	_, err := s.coll.UpdateByID(ctx, userID,
		bson.M{"$setOnInsert": bson.M{
			"favorites": []string{},
			"history":   []string{},
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

func (s *MongoStore) AddFavorite(ctx context.Context, userID, title string) error {
	_, err := s.coll.UpdateByID(ctx, userID,
		bson.M{"$addToSet": bson.M{"favorites": title}})
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (s *MongoStore) Favorites(ctx context.Context, userID string) ([]string, error) {
	doc, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.Favorites == nil {
		return []string{}, nil
	}
	return doc.Favorites, nil
}

func (s *MongoStore) RecordHistory(ctx context.Context, userID, query string) error {
	_, err := s.coll.UpdateByID(ctx, userID,
		bson.M{"$push": bson.M{"history": query}})
	if err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	return nil
}

func (s *MongoStore) History(ctx context.Context, userID string) ([]string, error) {
	doc, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.History == nil {
		return []string{}, nil
	}
	return doc.History, nil
}

func (s *MongoStore) UserIDs(ctx context.Context) ([]string, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cur.Close(ctx)

	ids := make([]string, 0)
	for cur.Next(ctx) {
		var doc userDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user document: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %w", err)
	}
	return ids, nil
}

func (s *MongoStore) find(ctx context.Context, userID string) (*userDocument, error) {
	var doc userDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user document: %w", err)
	}
	return &doc, nil
}
