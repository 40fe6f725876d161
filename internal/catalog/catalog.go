// Package catalog defines the quiz catalog domain model and the storage
// contract shared by the file and database backends.
package catalog

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no quiz matches the requested id.
var ErrNotFound = errors.New("quiz not found")

// Mode identifies which backend a store runs on. It is fixed when the
// store is constructed and never changes for the process lifetime.
type Mode string

const (
	ModeFile     Mode = "file"
	ModeDatabase Mode = "database"
)

// Question holds one prompt with its answer choices.
type Question struct {
	Prompt  string   `json:"prompt"`
	Choices []string `json:"choices"`
	Answer  int      `json:"answer"`
	Hint    string   `json:"hint,omitempty"`
}

// Quiz is a stored quiz document. ID is the lookup key; uniqueness is not
// enforced by the stores, so duplicates are possible and Get returns the
// first match.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Validate checks the structural invariants of a quiz: a non-empty id and,
// for every question, an answer index that points inside its choices.
func (q *Quiz) Validate() error {
	if q.ID == "" {
		return errors.New("quiz id is required")
	}
	if q.Title == "" {
		return errors.New("quiz title is required")
	}
	for i, question := range q.Questions {
		if len(question.Choices) == 0 {
			return fmt.Errorf("question %d has no choices", i)
		}
		if question.Answer < 0 || question.Answer >= len(question.Choices) {
			return fmt.Errorf("question %d answer index %d is out of range", i, question.Answer)
		}
	}
	return nil
}

// Store is the uniform catalog interface, identical in both backend modes.
type Store interface {
	// List returns all quizzes in storage order.
	List(ctx context.Context) ([]Quiz, error)

	// Get returns the first quiz whose id matches, or ErrNotFound.
	Get(ctx context.Context, id string) (*Quiz, error)

	// Create stores a new quiz and returns the stored form. Existing
	// quizzes with the same id are left untouched.
	Create(ctx context.Context, quiz Quiz) (*Quiz, error)

	// Mode reports which backend this store runs on.
	Mode() Mode

	// Close releases backend resources.
	Close() error
}
