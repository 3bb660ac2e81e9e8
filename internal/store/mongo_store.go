package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	domaingames "github.com/preston-bernstein/game-catalog-service/internal/domain/games"
)

// MongoConfig points the mongo backend at a collection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// mongoGame is the persisted shape of a game document.
type mongoGame struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	ReleaseDate string             `bson:"releaseDate"`
	Genre       string             `bson:"genre"`
}

func (d mongoGame) toDomain() domaingames.Game {
	return domaingames.Game{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		ReleaseDate: d.ReleaseDate,
		Genre:       d.Genre,
	}
}

// MongoStore persists games in a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore builds a client for cfg. The driver connects lazily; use Ping to verify reachability.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is required")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Create(ctx context.Context, game domaingames.Game) (domaingames.Game, error) {
	doc := mongoGame{
		ID:          primitive.NewObjectID(),
		Title:       game.Title,
		ReleaseDate: game.ReleaseDate,
		Genre:       game.Genre,
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return domaingames.Game{}, fmt.Errorf("insert game: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *MongoStore) List(ctx context.Context) ([]domaingames.Game, error) {
	cursor, err := s.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find games: %w", err)
	}
	var docs []mongoGame
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode games: %w", err)
	}
	result := make([]domaingames.Game, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.toDomain())
	}
	return result, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (domaingames.Game, error) {
	oid, err := ParseID(id)
	if err != nil {
		return domaingames.Game{}, err
	}
	var doc mongoGame
	if err := s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return domaingames.Game{}, mongoErr("find game", err)
	}
	return doc.toDomain(), nil
}

func (s *MongoStore) UpdateByID(ctx context.Context, id string, patch domaingames.GamePatch) (domaingames.Game, error) {
	oid, err := ParseID(id)
	if err != nil {
		return domaingames.Game{}, err
	}
	set := patchToSet(patch)
	if len(set) == 0 {
		return s.FindByID(ctx, id)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoGame
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		return domaingames.Game{}, mongoErr("update game", err)
	}
	return doc.toDomain(), nil
}

func (s *MongoStore) DeleteByID(ctx context.Context, id string) (domaingames.Game, error) {
	oid, err := ParseID(id)
	if err != nil {
		return domaingames.Game{}, err
	}
	var doc mongoGame
	if err := s.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return domaingames.Game{}, mongoErr("delete game", err)
	}
	return doc.toDomain(), nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func patchToSet(patch domaingames.GamePatch) bson.M {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.ReleaseDate != nil {
		set["releaseDate"] = *patch.ReleaseDate
	}
	if patch.Genre != nil {
		set["genre"] = *patch.Genre
	}
	return set
}

func mongoErr(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
