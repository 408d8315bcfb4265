// Package store persists named plan documents.
//
// A store maps plan names to serialized plan documents with save metadata.
// Two backends are provided: file-based storage for CLI use and MongoDB for
// server deployments. Lookups of absent names return nil without error so
// callers can distinguish "not saved yet" from storage failures.
package store

import (
	"context"
	"time"

	"github.com/tablewright/seatplan/pkg/planfile"
)

// Record is a saved plan with its metadata.
type Record struct {
	Name     string            `json:"name" bson:"_id"`
	Document planfile.Document `json:"document" bson:"document"`
	SavedAt  time.Time         `json:"saved_at" bson:"saved_at"`
}

// Store is the persistence interface for named plans.
type Store interface {
	// Get returns the record with the given name, or nil when none exists.
	Get(ctx context.Context, name string) (*Record, error)

	// Set saves a record, replacing any existing record of the same name.
	Set(ctx context.Context, rec *Record) error

	// Delete removes a record. Deleting an absent name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the saved plan names in lexical order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}
