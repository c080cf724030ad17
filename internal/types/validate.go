package types

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// validate is shared by every call. A *validator.Validate caches struct
// metadata and is safe for concurrent use once rules are registered.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names ("gpa", "_id") instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// objectid: a 24-char hex string the store accepts as an _id.
	if err := v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("types: register objectid rule: %v", err))
	}

	return v
}

// FieldError describes one offending field of a payload.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, ", ")
}

// NewFieldError builds a single-field ValidationError. Handlers use it for
// problems found while decoding, before struct rules can run.
func NewFieldError(field, rule, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule, Message: message}}}
}

// ValidateStudent checks a create payload and, on success, returns the
// Student ready to insert. On failure the error is a *ValidationError.
func ValidateStudent(p StudentPayload) (Student, error) {
	if err := check(p); err != nil {
		return Student{}, err
	}

	student := Student{
		Name:   p.Name,
		Email:  p.Email,
		Course: p.Course,
		GPA:    *p.GPA,
	}

	if p.ID != "" {
		id, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return Student{}, NewFieldError("_id", "objectid", "field _id must be a valid object id")
		}
		student.ID = id
	}

	return student, nil
}

// ValidateStudentUpdate checks a partial-update payload.
func ValidateStudentUpdate(p UpdateStudentPayload) error {
	return check(p)
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("types: validate: %w", err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(errs))}
	for _, e := range errs {
		out.Fields = append(out.Fields, FieldError{
			Field:   e.Field(),
			Rule:    e.ActualTag(),
			Message: message(e),
		})
	}
	return out
}

func message(e validator.FieldError) string {
	switch e.ActualTag() {
	case "required":
		return fmt.Sprintf("field %s is required", e.Field())
	case "email":
		return fmt.Sprintf("field %s must be a valid email address", e.Field())
	case "lte":
		return fmt.Sprintf("field %s must be less than or equal to %s", e.Field(), e.Param())
	case "objectid":
		return fmt.Sprintf("field %s must be a valid object id", e.Field())
	default:
		return fmt.Sprintf("field %s is invalid", e.Field())
	}
}
