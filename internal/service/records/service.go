package records

import (
	"context"

	"go.uber.org/zap"

	"crudkit/internal/domain"
	"crudkit/internal/model"
	"crudkit/internal/repository"
)

type Service[T model.Entity[T]] struct {
	resource string
	store    repository.Repository[T]
	notifier *Notifier
	log      *zap.Logger
}

func NewService[T model.Entity[T]](resource string, store repository.Repository[T], notifier *Notifier, logger *zap.Logger) *Service[T] {
	return &Service[T]{resource: resource, store: store, notifier: notifier, log: logger}
}

func (s *Service[T]) Resource() string {
	return s.resource
}

func (s *Service[T]) List(ctx context.Context, offset, limit int) ([]T, error) {
	items, err := s.store.List(ctx, offset, limit)
	if err != nil {
		s.log.Error("store list failed",
			zap.String("resource", s.resource),
			zap.Int("skip", offset),
			zap.Int("limit", limit),
			zap.Error(err),
		)
		return nil, err
	}
	return items, nil
}

func (s *Service[T]) Get(ctx context.Context, id string) (T, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		s.logFailure("store get failed", id, err)
		return record, err
	}
	return record, nil
}

func (s *Service[T]) Create(ctx context.Context, record T) (T, error) {
	created, err := s.store.Create(ctx, record)
	if err != nil {
		s.logFailure("store create failed", "", err)
		return created, err
	}
	s.notify(ctx, domain.ActionCreated, created.Metadata().ID, created)
	return created, nil
}

func (s *Service[T]) Update(ctx context.Context, id string, patch model.Patch[T]) (T, error) {
	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		s.logFailure("store update failed", id, err)
		return updated, err
	}
	s.notify(ctx, domain.ActionUpdated, id, updated)
	return updated, nil
}

func (s *Service[T]) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.logFailure("store delete failed", id, err)
		return err
	}
	s.notify(ctx, domain.ActionDeleted, id, nil)
	return nil
}

func (s *Service[T]) notify(ctx context.Context, action, id string, record any) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, s.resource, action, id, record)
}

// NotFound is an expected outcome and is not logged.
func (s *Service[T]) logFailure(msg, id string, err error) {
	if domain.IsNotFound(err) {
		return
	}
	s.log.Error(msg, zap.String("resource", s.resource), zap.String("id", id), zap.Error(err))
}
