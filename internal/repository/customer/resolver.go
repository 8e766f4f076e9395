package customer

import (
	"context"
	"encoding/json"
	"sync"

	"orderdesk/internal/domain"
	"orderdesk/internal/store"
)

// Resolver turns a set of customer ids into an id -> Customer map,
// working around the store's batch-get cap by splitting the set into
// chunks. Chunks are fetched concurrently; the map union is commutative
// so completion order does not matter. Ids with no matching customer are
// simply absent from the result.
type Resolver struct {
	store     store.Store
	chunkSize int
}

// NewResolver builds a Resolver using the store's batch-get limit.
func NewResolver(st store.Store) *Resolver {
	return &Resolver{store: st, chunkSize: store.MaxBatchGet}
}

// Resolve deduplicates ids and fetches the matching customers.
func (r *Resolver) Resolve(ctx context.Context, ids []string) (map[string]domain.Customer, error) {
	distinct := dedupe(ids)
	if len(distinct) == 0 {
		return map[string]domain.Customer{}, nil
	}

	result := make(map[string]domain.Customer, len(distinct))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for start := 0; start < len(distinct); start += r.chunkSize {
		end := start + r.chunkSize
		if end > len(distinct) {
			end = len(distinct)
		}
		chunk := distinct[start:end]

		wg.Add(1)
		go func() {
			defer wg.Done()
			records, err := r.store.GetByIDs(ctx, store.Customers, chunk)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			for _, rec := range records {
				var c domain.Customer
				if err := json.Unmarshal(rec.Data, &c); err != nil {
					if firstErr == nil {
						firstErr = err
					}
					return
				}
				c.ID = rec.ID
				result[rec.ID] = c
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, domain.StoreError(firstErr)
	}
	return result, nil
}

// dedupe keeps the first occurrence of each id, preserving input order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	distinct := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	return distinct
}
