// Package postgres implements store.Store on a single jsonb documents
// table, so the same repositories run against Postgres or the in-memory
// store unchanged.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"orderdesk/internal/store"
)

// Store reads and writes documents through a pgx pool. Every queried
// field in this application is a string (ISO dates, status values, ids,
// names), so predicates and ordering compare the jsonb text projection.
type Store struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// New builds a Store. A nil logger disables logging.
func New(pool *pgxpool.Pool, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{pool: pool, logger: logger}
}

var _ store.Store = (*Store)(nil)

func (s *Store) Query(ctx context.Context, collection string, q store.Query) ([]store.Record, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id::text, data FROM documents WHERE collection = $1`)
	args := []any{collection}

	for _, p := range q.Predicates {
		if err := validateField(p.Field); err != nil {
			return nil, err
		}
		op, err := sqlOp(p.Op)
		if err != nil {
			return nil, err
		}
		args = append(args, fmt.Sprint(p.Value))
		fmt.Fprintf(&sb, ` AND data->>'%s' %s $%d`, p.Field, op, len(args))
	}

	if q.OrderBy != "" {
		if err := validateField(q.OrderBy); err != nil {
			return nil, err
		}
		dir := "ASC"
		if q.Desc {
			dir = "DESC"
		}
		fmt.Fprintf(&sb, ` ORDER BY data->>'%s' %s, id %s`, q.OrderBy, dir, dir)
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		s.logger.Printf("store: query collection=%s error=%v", collection, err)
		return nil, err
	}
	defer rows.Close()

	var records []store.Record
	for rows.Next() {
		var rec store.Record
		if err := rows.Scan(&rec.ID, &rec.Data); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		s.logger.Printf("store: query rows collection=%s error=%v", collection, err)
		return nil, err
	}
	return records, nil
}

func (s *Store) GetByID(ctx context.Context, collection, id string) (store.Record, error) {
	const q = `SELECT id::text, data FROM documents WHERE collection = $1 AND id = $2::uuid`

	var rec store.Record
	err := s.pool.QueryRow(ctx, q, collection, id).Scan(&rec.ID, &rec.Data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Record{}, store.ErrNotFound
		}
		s.logger.Printf("store: get collection=%s id=%s error=%v", collection, id, err)
		return store.Record{}, err
	}
	return rec, nil
}

func (s *Store) GetByIDs(ctx context.Context, collection string, ids []string) ([]store.Record, error) {
	if len(ids) > store.MaxBatchGet {
		return nil, fmt.Errorf("batch get of %d ids exceeds limit of %d", len(ids), store.MaxBatchGet)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	const q = `SELECT id::text, data FROM documents WHERE collection = $1 AND id = ANY($2::uuid[])`

	rows, err := s.pool.Query(ctx, q, collection, ids)
	if err != nil {
		s.logger.Printf("store: batch get collection=%s ids=%d error=%v", collection, len(ids), err)
		return nil, err
	}
	defer rows.Close()

	var records []store.Record
	for rows.Next() {
		var rec store.Record
		if err := rows.Scan(&rec.ID, &rec.Data); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) Insert(ctx context.Context, collection string, doc any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	const q = `INSERT INTO documents (collection, data) VALUES ($1, $2) RETURNING id::text`

	var id string
	if err := s.pool.QueryRow(ctx, q, collection, data).Scan(&id); err != nil {
		s.logger.Printf("store: insert collection=%s error=%v", collection, err)
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode patch: %w", err)
	}

	const q = `UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2::uuid`

	if _, err := s.pool.Exec(ctx, q, collection, id, patch); err != nil {
		s.logger.Printf("store: update collection=%s id=%s error=%v", collection, id, err)
		return err
	}
	return nil
}

func (s *Store) DeleteByID(ctx context.Context, collection, id string) error {
	const q = `DELETE FROM documents WHERE collection = $1 AND id = $2::uuid`

	if _, err := s.pool.Exec(ctx, q, collection, id); err != nil {
		s.logger.Printf("store: delete collection=%s id=%s error=%v", collection, id, err)
		return err
	}
	return nil
}

// validateField keeps document field names out of SQL injection range;
// they are interpolated into the jsonb path expression.
func validateField(field string) error {
	if field == "" {
		return errors.New("empty predicate field")
	}
	for _, r := range field {
		ok := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
		if !ok {
			return fmt.Errorf("unsupported predicate field %q", field)
		}
	}
	return nil
}

func sqlOp(op store.Op) (string, error) {
	switch op {
	case store.OpEq:
		return "=", nil
	case store.OpGte:
		return ">=", nil
	case store.OpLte:
		return "<=", nil
	case store.OpLt:
		return "<", nil
	}
	return "", fmt.Errorf("unsupported operator %q", op)
}
