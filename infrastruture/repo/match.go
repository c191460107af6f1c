package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/maze-arena/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MatchRepo handles the persistence of match records.
type MatchRepo struct {
	collection *mongo.Collection
}

// NewMatchRepo creates a new MatchRepo with the given MongoDB client,
// database name, and collection name.
func NewMatchRepo(client *mongo.Client, dbName, collectionName string) *MatchRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MatchRepo{
		collection: collection,
	}
}

// Save inserts or updates a match record in the repository.
func (m *MatchRepo) Save(match *dmn.Match) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": match.ID}
	update := bson.M{
		"$set": bson.M{
			"preset":     match.Preset,
			"status":     match.Status,
			"teams":      match.Teams,
			"winners":    match.Winners,
			"teamScores": match.TeamScores,
			"stats":      match.Stats,
			"createdAt":  match.CreatedAt,
			"finishedAt": match.FinishedAt,
			"updatedAt":  time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByID retrieves a match record by its ID.
// Returns an error if the match is not found or if an unexpected error occurs.
func (m *MatchRepo) ByID(id uuid.UUID) (*dmn.Match, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var match dmn.Match
	if err := m.collection.FindOne(ctx, filter).Decode(&match); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("match not found")
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &match, nil
}

// Recent retrieves the most recently created match records, newest first.
func (m *MatchRepo) Recent(limit int64) ([]*dmn.Match, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit)
	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var matches []*dmn.Match
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return matches, nil
}
