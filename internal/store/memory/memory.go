// Package memory provides an in-process store.Store for tests, seeding
// and local development without a database.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"orderdesk/internal/store"
)

// Store keeps documents in maps guarded by a RWMutex. Reads return
// copies so callers cannot mutate stored state.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{collections: make(map[string]map[string]json.RawMessage)}
}

var _ store.Store = (*Store)(nil)

func (s *Store) Query(_ context.Context, collection string, q store.Query) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type candidate struct {
		rec    store.Record
		fields map[string]any
	}

	var matched []candidate
	for id, data := range s.collections[collection] {
		var fields map[string]any
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("decode document %s/%s: %w", collection, id, err)
		}
		if !matchesAll(fields, q.Predicates) {
			continue
		}
		matched = append(matched, candidate{
			rec:    store.Record{ID: id, Data: cloneRaw(data)},
			fields: fields,
		})
	}

	if q.OrderBy != "" {
		sort.Slice(matched, func(i, j int) bool {
			c, _ := compare(matched[i].fields[q.OrderBy], matched[j].fields[q.OrderBy])
			if c == 0 {
				// Tie-break on id so results are reproducible.
				c, _ = compare(matched[i].rec.ID, matched[j].rec.ID)
			}
			if q.Desc {
				return c > 0
			}
			return c < 0
		})
	}

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	records := make([]store.Record, 0, len(matched))
	for _, c := range matched {
		records = append(records, c.rec)
	}
	return records, nil
}

func (s *Store) GetByID(_ context.Context, collection, id string) (store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.collections[collection][id]
	if !ok {
		return store.Record{}, store.ErrNotFound
	}
	return store.Record{ID: id, Data: cloneRaw(data)}, nil
}

func (s *Store) GetByIDs(_ context.Context, collection string, ids []string) ([]store.Record, error) {
	if len(ids) > store.MaxBatchGet {
		return nil, fmt.Errorf("batch get of %d ids exceeds limit of %d", len(ids), store.MaxBatchGet)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []store.Record
	for _, id := range ids {
		if data, ok := s.collections[collection][id]; ok {
			records = append(records, store.Record{ID: id, Data: cloneRaw(data)})
		}
	}
	return records, nil
}

func (s *Store) Insert(_ context.Context, collection string, doc any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]json.RawMessage)
	}
	id := uuid.NewString()
	s.collections[collection][id] = data
	return id, nil
}

func (s *Store) UpdateFields(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.collections[collection][id]
	if !ok {
		// Mirrors the backing store: updating a missing document is not
		// distinguished from success.
		return nil
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode document %s/%s: %w", collection, id, err)
	}
	for k, v := range fields {
		doc[k] = v
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %s/%s: %w", collection, id, err)
	}
	s.collections[collection][id] = merged
	return nil
}

func (s *Store) DeleteByID(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	return nil
}

func matchesAll(fields map[string]any, preds []store.Predicate) bool {
	for _, p := range preds {
		v, present := fields[p.Field]
		if !present {
			return false
		}
		c, comparable := compare(v, p.Value)
		if !comparable {
			return false
		}
		switch p.Op {
		case store.OpEq:
			if c != 0 {
				return false
			}
		case store.OpGte:
			if c < 0 {
				return false
			}
		case store.OpLte:
			if c > 0 {
				return false
			}
		case store.OpLt:
			if c >= 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// compare orders JSON scalar values: strings lexicographically, numbers
// numerically. The second return is false for mismatched or unsupported
// types, which never satisfy a predicate.
func compare(a, b any) (int, bool) {
	if av, ok := a.(string); ok {
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		}
		return 0, true
	}
	if av, ok := toFloat(a); ok {
		bv, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func cloneRaw(data json.RawMessage) json.RawMessage {
	out := make(json.RawMessage, len(data))
	copy(out, data)
	return out
}
