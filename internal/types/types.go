// Package types holds the shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, and the site renderer can all import types without
// depending on each other.
package types

// Student represents one row of the students table.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls how the field appears when encoded to JSON
//     (lowercase names match REST API conventions).
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package. "required" means the name must be non-empty: every
//     persisted student has a non-null name.
type Student struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required"`
}
