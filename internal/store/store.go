// Package store defines the document store contract the repositories are
// built against. Documents live in named collections, carry a
// store-assigned id, and are queried with conjunctions of field
// predicates.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Collection names used by the application.
const (
	Orders    = "orders"
	Customers = "customers"
)

// MaxBatchGet is the largest id set a single GetByIDs call accepts.
const MaxBatchGet = 30

// ErrNotFound indicates the requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Op is a predicate operator.
type Op string

const (
	OpEq  Op = "=="
	OpGte Op = ">="
	OpLte Op = "<="
	OpLt  Op = "<"
)

// Predicate constrains one document field. Values are compared as their
// JSON types: strings lexicographically, numbers numerically.
type Predicate struct {
	Field string
	Op    Op
	Value any
}

// Query describes a filtered, ordered, optionally capped collection scan.
// Predicates are ANDed. Limit <= 0 means no cap.
type Query struct {
	Predicates []Predicate
	OrderBy    string
	Desc       bool
	Limit      int
}

// Record is one stored document: its id plus the raw JSON body. The body
// never contains the id.
type Record struct {
	ID   string
	Data json.RawMessage
}

// Store is the document store adapter. Implementations must treat each
// call as independent; no transaction spans multiple calls.
type Store interface {
	// Query returns the documents matching q, in q's order.
	Query(ctx context.Context, collection string, q Query) ([]Record, error)
	// GetByID returns one document or ErrNotFound.
	GetByID(ctx context.Context, collection, id string) (Record, error)
	// GetByIDs returns the documents whose ids are in ids, in no
	// particular order. Unknown ids are omitted, not an error. Callers
	// must pass at most MaxBatchGet ids.
	GetByIDs(ctx context.Context, collection string, ids []string) ([]Record, error)
	// Insert stores doc (JSON-marshaled) and returns the generated id.
	Insert(ctx context.Context, collection string, doc any) (string, error)
	// UpdateFields merges fields into an existing document. Fields not
	// named keep their prior value. Updating a missing id is not
	// reported as an error.
	UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error
	// DeleteByID removes a document. Deleting a missing id is a no-op.
	DeleteByID(ctx context.Context, collection, id string) error
}
