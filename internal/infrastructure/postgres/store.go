package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"user-access-service/internal/domain/repository"
)

// Store hands out request-scoped unit-of-work/repository pairs over a
// shared connection pool.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) NewUnitOfWork() (repository.UserRepository, repository.UnitOfWork) {
	uow := NewUnitOfWork(s.pool)
	return NewUserRepository(uow), uow
}

var _ repository.Store = (*Store)(nil)
