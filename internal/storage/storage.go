// Package storage defines the Storage interface — the contract any
// document store backend must satisfy to work with this application.
//
// Handlers depend only on this interface, so the MongoDB backend used in
// production and the embedded SQLite backend used locally and in tests
// are interchangeable from main.go.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/college-api/internal/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when no document matches the requested id.
var ErrNotFound = errors.New("student not found")

// Storage is the document store contract.
type Storage interface {
	// CreateStudent inserts a student and returns the id it was stored
	// under: the caller's id if student.ID is set, otherwise one the
	// store generated.
	CreateStudent(ctx context.Context, student types.Student) (primitive.ObjectID, error)

	// GetStudentByID fetches a single student. Returns ErrNotFound (wrapped)
	// if nothing matches.
	GetStudentByID(ctx context.Context, id primitive.ObjectID) (types.Student, error)

	// Close releases the connection handle.
	Close(ctx context.Context) error
}
