// Package types holds the shared data structures (models) used across
// the application, together with the rules that validate them. Keeping
// them in one place prevents import cycles: handlers, storage, and utils
// can all import types without depending on each other.
package types

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student is a student record exactly as it lives in the document store.
//
// Struct tags:
//
//  1. json:"..."  controls the API shape. ID is a primitive.ObjectID,
//     whose MarshalJSON writes the 24-char hex string, so the store's
//     binary id never leaks into a response.
//
//  2. bson:"..."  controls the stored document shape. omitempty on _id
//     lets the store generate the id when the caller did not supply one.
type Student struct {
	ID     primitive.ObjectID `json:"_id"    bson:"_id,omitempty"`
	Name   string             `json:"name"   bson:"name"`
	Email  string             `json:"email"  bson:"email"`
	Course string             `json:"course" bson:"course"`
	GPA    float64            `json:"gpa"    bson:"gpa"`
}

// StudentPayload is the inbound body of POST /api/student.
//
// GPA is a pointer so a missing value can be told apart from 0.0, which
// is a legitimate grade. An empty ID is treated as absent.
type StudentPayload struct {
	ID     string   `json:"_id"    validate:"omitempty,objectid"`
	Name   string   `json:"name"   validate:"required"`
	Email  string   `json:"email"  validate:"required,email"`
	Course string   `json:"course" validate:"required"`
	GPA    *float64 `json:"gpa"    validate:"required,lte=4"`
}

// UpdateStudentPayload is the partial-update shape: every field optional,
// no range rule on GPA. No route accepts it yet.
type UpdateStudentPayload struct {
	Name   *string  `json:"name,omitempty"`
	Email  *string  `json:"email,omitempty"  validate:"omitempty,email"`
	Course *string  `json:"course,omitempty"`
	GPA    *float64 `json:"gpa,omitempty"`
}

// ToUpdateDocument returns a $set-ready document holding only the fields
// the caller supplied.
func (p UpdateStudentPayload) ToUpdateDocument() bson.M {
	doc := bson.M{}
	if p.Name != nil {
		doc["name"] = *p.Name
	}
	if p.Email != nil {
		doc["email"] = *p.Email
	}
	if p.Course != nil {
		doc["course"] = *p.Course
	}
	if p.GPA != nil {
		doc["gpa"] = *p.GPA
	}
	return doc
}
