// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, and utils can all import types without depending
// on each other.
package types

import "time"

// Student represents a row of the student table.
//
// RegisteredAt is owned by the storage layer: it is stamped on insert and
// ignored on update, so clients never send it.
type Student struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	Age          int       `json:"age"`
	RegisteredAt time.Time `json:"registered_at"`
}

// StudentRequest is the body accepted when creating or updating a student.
//
// validate:"..." tags are checked by the go-playground/validator package.
// Age is a pointer so an omitted age is told apart from an age of 0.
type StudentRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Surname string `json:"surname" validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email"`
	Age     *int   `json:"age"     validate:"required,gte=0"`
}

// Student converts a validated request into a Student. Call it only
// after validation, Age must be set.
func (r StudentRequest) Student() Student {
	return Student{
		Name:    r.Name,
		Surname: r.Surname,
		Email:   r.Email,
		Age:     *r.Age,
	}
}

// Course represents a row of the course table.
type Course struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
}

// String returns the course name; it is the label shown wherever a
// course is listed.
func (c Course) String() string {
	return c.Name
}

// Row is one raw result tuple, column values in table-column order.
type Row []any

// RowSet is a raw query result: the column names reported by the
// driver and the tuples, values in the same order as Columns.
type RowSet struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}
