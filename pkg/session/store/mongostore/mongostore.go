// Package mongostore is a session.Store backed by MongoDB, an
// alternative to redisstore for deployments that already run Mongo
// for other document storage and would rather not add a second
// datastore just for saved sessions.
package mongostore

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/biofabric/biofabric/pkg/session"
)

// Config configures a Store.
type Config struct {
	URI        string
	Database   string
	Collection string
}

func (c Config) withDefaults() Config {
	if c.Database == "" {
		c.Database = "biofabric"
	}
	if c.Collection == "" {
		c.Collection = "sessions"
	}
	return c
}

// document is the on-disk shape of a stored session: the XML encoding
// kept whole in a single field, so the store doesn't need its own
// schema for every layout/annotation type — it defers to
// session.WriteXML/ReadXML exactly like redisstore does.
type document struct {
	ID  string `bson:"_id"`
	XML string `bson:"xml"`
}

// Store is a MongoDB-backed session.Store.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// New connects to cfg.URI and returns a ready Store.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cfg = cfg.withDefaults()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	return &Store{client: client, coll: coll}, nil
}

// Get implements session.Store.
func (s *Store) Get(ctx context.Context, id string) (*session.Session, error) {
	var doc document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	sess, err := session.ReadXML(strings.NewReader(doc.XML))
	if err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	sess.ID = id
	return sess, nil
}

// Set implements session.Store.
func (s *Store) Set(ctx context.Context, sess *session.Session) error {
	var buf strings.Builder
	if err := session.WriteXML(&buf, sess); err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	doc := document{ID: sess.ID, XML: buf.String()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": sess.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert: %w", err)
	}
	return nil
}

// Delete implements session.Store.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}

// List implements session.Store.
func (s *Store) List(ctx context.Context) ([]string, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongo decode: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongo cursor: %w", err)
	}
	return ids, nil
}

// Close implements session.Store.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ session.Store = (*Store)(nil)
