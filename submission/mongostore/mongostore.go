// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package mongostore writes survey responses to a MongoDB collection.
package mongostore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/submission"
)

const backendName = "mongo"

// SurveyDocument is the stored shape of one response.
type SurveyDocument struct {
	ID                string         `bson:"_id"`
	LocationID        string         `bson:"location_id"`
	Score             int            `bson:"score"`
	Comment           string         `bson:"comment"`
	AdditionalRatings map[string]int `bson:"additional_ratings,omitempty"`
	CreatedAt         time.Time      `bson:"created_at"`
}

type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Connect dials the server, pings the primary and binds the collection
func Connect(ctx context.Context, uri, database, collection string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return &Store{client: client, collection: client.Database(database).Collection(collection)}, nil
}

func (s *Store) Insert(ctx context.Context, resp models.SurveyResponse) error {
	doc := toDocument(resp, uuid.NewString(), time.Now().UTC())
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		slog.Error("failed to insert survey document", "error", err, "location_id", resp.LocationID)
		return submission.Wrap(backendName, err)
	}
	return nil
}

// Close disconnects the client
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func toDocument(resp models.SurveyResponse, id string, now time.Time) SurveyDocument {
	doc := SurveyDocument{
		ID:         id,
		LocationID: resp.LocationID,
		Score:      resp.Score,
		Comment:    resp.Comment,
		CreatedAt:  now,
	}
	if resp.AdditionalRatings != nil {
		doc.AdditionalRatings = make(map[string]int, len(resp.AdditionalRatings))
		for aspect, v := range resp.AdditionalRatings {
			doc.AdditionalRatings[string(aspect)] = v
		}
	}
	return doc
}
