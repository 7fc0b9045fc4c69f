package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"user-access-service/internal/domain/entity"
	"user-access-service/internal/domain/repository"
	"user-access-service/internal/principal"
)

type changeKind int

const (
	changeInsert changeKind = iota
	changeUpdate
	changeDelete
)

// change is one staged write. The kind records whether this is the row's
// first write, so audit stamping never depends on change tracking.
type change struct {
	kind   changeKind
	entity entity.Auditable
	exec   func(ctx context.Context, tx pgx.Tx) error
}

// UnitOfWork stages writes for one request and commits them in a single
// transaction. Before the commit it stamps audit metadata on every staged
// auditable entity: creation actor/time on inserts, modification actor/time
// on updates. Update statements never carry the creation columns, so
// created/created_by written at row birth stay immutable for the row's
// lifetime no matter what the in-memory object holds.
type UnitOfWork struct {
	pool    *pgxpool.Pool
	pending []change
	now     func() time.Time
}

func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool, now: time.Now}
}

func (u *UnitOfWork) stage(c change) {
	u.pending = append(u.pending, c)
}

// stampPending applies the audit interception over the staged set.
func (u *UnitOfWork) stampPending(actor string) {
	now := u.now().UTC()
	for _, c := range u.pending {
		if c.entity == nil {
			continue
		}
		switch c.kind {
		case changeInsert:
			c.entity.StampCreated(now, actor)
		case changeUpdate:
			c.entity.StampModified(now, actor)
		}
	}
}

// Save commits all staged writes. The acting principal comes from the
// request context, defaulting to the System sentinel. A unique-violation at
// commit surfaces as repository.ErrAlreadyExists so callers can treat it
// like a failed pre-insert uniqueness check.
func (u *UnitOfWork) Save(ctx context.Context) error {
	if len(u.pending) == 0 {
		return nil
	}
	u.stampPending(principal.NameFrom(ctx))

	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, c := range u.pending {
		if err := c.exec(ctx, tx); err != nil {
			return mapConstraint(err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return mapConstraint(err)
	}
	u.pending = nil
	return nil
}

func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return repository.ErrAlreadyExists
	}
	return err
}

var _ repository.UnitOfWork = (*UnitOfWork)(nil)
