package store

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mkarlsen/pvscene/pkg/errors"
)

// MongoStore persists projects in a MongoDB collection, one document
// per project with the name as _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB backend.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "pvscene"
	}
	if cfg.Collection == "" {
		cfg.Collection = "projects"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connecting to mongodb")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "pinging mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get retrieves a project by name.
func (s *MongoStore) Get(ctx context.Context, name string) (_ *Project, err error) {
	start := time.Now()
	defer func() { observeLoad(ctx, name, start, err) }()
	return s.get(ctx, name)
}

// get is the uninstrumented read shared by Get and Put.
func (s *MongoStore) get(ctx context.Context, name string) (*Project, error) {
	if err := errors.ValidateProjectName(name); err != nil {
		return nil, err
	}
	var p Project
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "loading project %q", name)
	}
	return &p, nil
}

// Put creates or replaces a project document.
func (s *MongoStore) Put(ctx context.Context, p *Project) (err error) {
	start := time.Now()
	defer func() { observeSave(ctx, p.Name, start, err) }()

	if err := errors.ValidateProjectName(p.Name); err != nil {
		return err
	}
	stored := *p
	stored.UpdatedAt = time.Now().UTC()
	if prev, err := s.get(ctx, p.Name); err == nil {
		stored.CreatedAt = prev.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = stored.UpdatedAt
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": p.Name}, stored,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "saving project %q", p.Name)
	}
	return nil
}

// Delete removes a project document.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateProjectName(name); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "deleting project %q", name)
	}
	return nil
}

// List returns all project names, sorted.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	raw, err := s.coll.Distinct(ctx, "_id", bson.M{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "listing projects")
	}
	names := make([]string, 0, len(raw))
	for _, v := range raw {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
