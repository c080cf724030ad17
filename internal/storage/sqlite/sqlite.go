// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite keeps everything in a single file (or in memory with ":memory:"),
// with no server process. That makes it the embedded store for local runs
// and the in-memory document-store double for tests. It mimics the parts
// of MongoDB the service relies on: an ObjectID primary key that the
// store generates when the caller leaves it empty.
//
// The blank import registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/college-api/internal/storage"
	"github.com/aanand-mishra/college-api/internal/types"
	"go.mongodb.org/mongo-driver/bson/primitive"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path, creates the students table if
// it does not already exist, and returns a ready-to-use *SQLite.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Every pooled connection to ":memory:" would get its own empty
	// database, so pin the pool to one connection.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Schema mirrors the stored document: _id is the 24-char hex form of
	// an ObjectID.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id     TEXT PRIMARY KEY,
			name   TEXT NOT NULL,
			email  TEXT NOT NULL,
			course TEXT NOT NULL,
			gpa    REAL NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateStudent inserts a new row into the students table.
//
// The id is generated here when the caller did not supply one, the same
// way the MongoDB driver fills in a missing _id before the insert.
// Inserting an id that already exists fails on the primary key.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateStudent(ctx context.Context, student types.Student) (primitive.ObjectID, error) {
	id := student.ID
	if id.IsZero() {
		id = primitive.NewObjectID()
	}

	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO students (id, name, email, course, gpa) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, id.Hex(), student.Name, student.Email, student.Course, student.GPA); err != nil {
		return primitive.NilObjectID, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	return id, nil
}

// GetStudentByID fetches exactly one student row matched by id.
func (s *SQLite) GetStudentByID(ctx context.Context, id primitive.ObjectID) (types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT id, name, email, course, gpa FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	var (
		student types.Student
		hex     string
	)

	err = stmt.QueryRowContext(ctx, id.Hex()).Scan(
		&hex,
		&student.Name,
		&student.Email,
		&student.Course,
		&student.GPA,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("GetStudentByID %s: %w", id.Hex(), storage.ErrNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	student.ID, err = primitive.ObjectIDFromHex(hex)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: stored id %q: %w", hex, err)
	}

	return student, nil
}

// CountStudents returns the number of stored rows. It is not part of
// storage.Storage: handler tests use it to assert that rejected payloads
// never reach the store.
func (s *SQLite) CountStudents(ctx context.Context) (int, error) {
	var n int
	if err := s.Db.QueryRowContext(ctx, "SELECT COUNT(*) FROM students").Scan(&n); err != nil {
		return 0, fmt.Errorf("CountStudents: %w", err)
	}
	return n, nil
}

// Close closes the underlying connection pool.
func (s *SQLite) Close(_ context.Context) error {
	return s.Db.Close()
}
