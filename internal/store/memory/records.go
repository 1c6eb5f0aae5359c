package memory

import (
	"context"
	"slices"

	"crudkit/internal/domain"
	"crudkit/internal/model"
)

func (s *Store[T]) List(_ context.Context, offset, limit int) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start, end := domain.PageBounds(len(s.records), offset, limit)
	result := make([]T, end-start)
	copy(result, s.records[start:end])
	return result, nil
}

func (s *Store[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		var zero T
		return zero, domain.NewNotFound(s.resource, id)
	}
	return s.records[pos], nil
}

func (s *Store[T]) Create(_ context.Context, record T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta := model.NewMeta(s.now())
	for {
		if _, taken := s.index[meta.ID]; !taken {
			break
		}
		meta = model.NewMeta(meta.CreatedAt)
	}
	record = record.WithMetadata(meta)
	s.index[meta.ID] = len(s.records)
	s.records = append(s.records, record)
	return record, nil
}

func (s *Store[T]) Update(_ context.Context, id string, patch model.Patch[T]) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		var zero T
		return zero, domain.NewNotFound(s.resource, id)
	}
	current := s.records[pos]
	updated := patch.Apply(current).WithMetadata(current.Metadata().Touch(s.now()))
	s.records[pos] = updated
	return updated, nil
}

func (s *Store[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return domain.NewNotFound(s.resource, id)
	}
	s.records = slices.Delete(s.records, pos, pos+1)
	delete(s.index, id)
	for i := pos; i < len(s.records); i++ {
		s.index[s.records[i].Metadata().ID] = i
	}
	return nil
}
