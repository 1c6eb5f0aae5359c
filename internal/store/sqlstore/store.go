package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"crudkit/internal/domain"
	"crudkit/internal/model"
)

// Store persists one resource's records as JSON documents in the shared
// records table. The seq column keeps insertion order.
type Store[T model.Entity[T]] struct {
	db       *DB
	resource string
	now      func() time.Time
}

func New[T model.Entity[T]](db *DB, resource string) *Store[T] {
	return &Store[T]{db: db, resource: resource, now: time.Now}
}

func (s *Store[T]) List(ctx context.Context, offset, limit int) ([]T, error) {
	offset, limit = domain.ClampPage(offset, limit)
	result := make([]T, 0)
	if limit == 0 {
		return result, nil
	}
	rows, err := s.db.sql.QueryContext(ctx, s.db.dialect.Rebind(
		`SELECT id, body, created_at, updated_at
		   FROM records
		  WHERE resource = ?
		  ORDER BY seq ASC
		  LIMIT ? OFFSET ?`),
		s.resource, int64(limit), int64(offset),
	)
	if err != nil {
		s.db.log.Error("sql list records failed", zap.String("resource", s.resource), zap.Error(err))
		return nil, fmt.Errorf("list %s: %w", s.resource, err)
	}
	defer rows.Close()

	for rows.Next() {
		record, err := s.scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", s.resource, err)
	}
	return result, nil
}

func (s *Store[T]) Get(ctx context.Context, id string) (T, error) {
	row := s.db.sql.QueryRowContext(ctx, s.db.dialect.Rebind(
		`SELECT id, body, created_at, updated_at
		   FROM records
		  WHERE resource = ? AND id = ?`),
		s.resource, id,
	)
	record, err := s.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, domain.NewNotFound(s.resource, id)
	}
	return record, err
}

func (s *Store[T]) Create(ctx context.Context, record T) (T, error) {
	meta := model.NewMeta(s.now())
	record = record.WithMetadata(meta)
	body, err := json.Marshal(record)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("encode %s: %w", s.resource, err)
	}
	if _, err := s.db.sql.ExecContext(ctx, s.db.dialect.Rebind(
		`INSERT INTO records (resource, id, body, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`),
		s.resource, meta.ID, string(body), meta.CreatedAt.UnixNano(), meta.UpdatedAt.UnixNano(),
	); err != nil {
		s.db.log.Error("sql create record failed", zap.String("resource", s.resource), zap.String("id", meta.ID), zap.Error(err))
		var zero T
		return zero, fmt.Errorf("create %s: %w", s.resource, err)
	}
	return record, nil
}

func (s *Store[T]) Update(ctx context.Context, id string, patch model.Patch[T]) (T, error) {
	var zero T
	tx, err := s.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("update %s: begin: %w", s.resource, err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, s.db.dialect.Rebind(
		`SELECT id, body, created_at, updated_at
		   FROM records
		  WHERE resource = ? AND id = ?`+s.db.dialect.ForUpdate),
		s.resource, id,
	)
	current, err := s.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, domain.NewNotFound(s.resource, id)
	}
	if err != nil {
		return zero, err
	}

	meta := current.Metadata().Touch(s.now())
	updated := patch.Apply(current).WithMetadata(meta)
	body, err := json.Marshal(updated)
	if err != nil {
		return zero, fmt.Errorf("encode %s: %w", s.resource, err)
	}
	if _, err := tx.ExecContext(ctx, s.db.dialect.Rebind(
		`UPDATE records SET body = ?, updated_at = ?
		  WHERE resource = ? AND id = ?`),
		string(body), meta.UpdatedAt.UnixNano(), s.resource, id,
	); err != nil {
		s.db.log.Error("sql update record failed", zap.String("resource", s.resource), zap.String("id", id), zap.Error(err))
		return zero, fmt.Errorf("update %s: %w", s.resource, err)
	}
	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("update %s: commit: %w", s.resource, err)
	}
	return updated, nil
}

func (s *Store[T]) Delete(ctx context.Context, id string) error {
	result, err := s.db.sql.ExecContext(ctx, s.db.dialect.Rebind(
		`DELETE FROM records WHERE resource = ? AND id = ?`),
		s.resource, id,
	)
	if err != nil {
		s.db.log.Error("sql delete record failed", zap.String("resource", s.resource), zap.String("id", id), zap.Error(err))
		return fmt.Errorf("delete %s: %w", s.resource, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: rows affected: %w", s.resource, err)
	}
	if affected == 0 {
		return domain.NewNotFound(s.resource, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store[T]) scan(row scanner) (T, error) {
	var (
		record    T
		meta      model.Meta
		body      []byte
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&meta.ID, &body, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record, err
		}
		return record, fmt.Errorf("scan %s: %w", s.resource, err)
	}
	if err := json.Unmarshal(body, &record); err != nil {
		return record, fmt.Errorf("decode %s %s: %w", s.resource, meta.ID, err)
	}
	meta.CreatedAt = time.Unix(0, createdAt).UTC()
	meta.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return record.WithMetadata(meta), nil
}
