// Package mongo implements storage.Storage on top of a MongoDB collection.
//
// One *mongo.Client is opened at startup and shared by every request; the
// driver pools connections and is safe for concurrent use. No retry or
// transaction logic is layered on top of the driver defaults.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aanand-mishra/college-api/internal/storage"
	"github.com/aanand-mishra/college-api/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo stores students in a single collection.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Options describes where the students collection lives.
type Options struct {
	URL        string
	Database   string
	Collection string
}

// New connects to MongoDB and verifies the connection with a ping.
// ctx bounds the connect and the ping.
func New(ctx context.Context, opts Options) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo.New: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.New: ping: %w", err)
	}

	return &Mongo{
		client:     client,
		collection: client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// CreateStudent inserts the student document. When student.ID is zero the
// driver generates a new ObjectID, which is returned.
func (m *Mongo) CreateStudent(ctx context.Context, student types.Student) (primitive.ObjectID, error) {
	res, err := m.collection.InsertOne(ctx, student)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("CreateStudent: insert: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("CreateStudent: unexpected inserted id type %T", res.InsertedID)
	}

	return id, nil
}

// GetStudentByID finds one student by _id.
func (m *Mongo) GetStudentByID(ctx context.Context, id primitive.ObjectID) (types.Student, error) {
	var student types.Student

	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Student{}, fmt.Errorf("GetStudentByID %s: %w", id.Hex(), storage.ErrNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: find: %w", err)
	}

	return student, nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
