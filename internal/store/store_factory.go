package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"crudkit/internal/config"
	"crudkit/internal/model"
	"crudkit/internal/repository"
	"crudkit/internal/store/memory"
	"crudkit/internal/store/sqlstore"
)

// Backend is the storage selected by configuration. A nil db means every
// resource lives in process memory.
type Backend struct {
	db  *sqlstore.DB
	log *zap.Logger
}

// NewBackend picks MySQL, PostgreSQL or SQLite in that order when a DSN is
// configured, and the in-memory store otherwise.
func NewBackend(cfg *config.Config, logger *zap.Logger) (*Backend, func(), error) {
	dialect, dsn, ok := selectDialect(cfg)
	if !ok {
		logger.Info("using in-memory store")
		return &Backend{log: logger}, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := sqlstore.Open(ctx, dialect, dsn, logger)
	if err != nil {
		logger.Error("sql store open failed", zap.String("dialect", dialect.Name), zap.Error(err))
		return nil, nil, err
	}
	logger.Info("using sql store", zap.String("dialect", dialect.Name))

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Error("sql store close failed", zap.Error(err))
		}
	}
	return &Backend{db: db, log: logger}, cleanup, nil
}

func selectDialect(cfg *config.Config) (sqlstore.Dialect, string, bool) {
	switch {
	case cfg.MySQLDSN != "":
		return sqlstore.MySQL, cfg.MySQLDSN, true
	case cfg.PostgresDSN != "":
		return sqlstore.Postgres, cfg.PostgresDSN, true
	case cfg.SQLitePath != "":
		return sqlstore.SQLite, sqlstore.SQLiteDSN(cfg.SQLitePath), true
	default:
		return sqlstore.Dialect{}, "", false
	}
}

// Kind reports "memory" or the SQL dialect name.
func (b *Backend) Kind() string {
	if b.db == nil {
		return "memory"
	}
	return b.db.Dialect().Name
}

// Open returns the repository of one resource on the backend.
func Open[T model.Entity[T]](b *Backend, resource string) repository.Repository[T] {
	if b == nil || b.db == nil {
		return memory.New[T](resource)
	}
	return sqlstore.New[T](b.db, resource)
}
