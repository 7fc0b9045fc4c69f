package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"user-access-service/internal/domain/entity"
	"user-access-service/internal/domain/repository"
)

func testUser(t *testing.T) *entity.User {
	t.Helper()
	u, err := entity.CreateNew("Ada", "Lovelace", "ada", "ada@example.com", "pw-123456", entity.RoleUser, true, "seed")
	if err != nil {
		t.Fatalf("CreateNew: %v", err)
	}
	return u
}

func TestStampPending(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	uow := &UnitOfWork{now: func() time.Time { return at }}

	inserted := testUser(t)
	updated := testUser(t)
	deleted := testUser(t)

	uow.stage(change{kind: changeInsert, entity: inserted})
	uow.stage(change{kind: changeUpdate, entity: updated})
	uow.stage(change{kind: changeDelete, entity: deleted})

	uow.stampPending("auditor")

	if !inserted.Created.Equal(at) || inserted.CreatedBy != "auditor" {
		t.Fatalf("insert not stamped: %v %q", inserted.Created, inserted.CreatedBy)
	}
	if inserted.LastModified != nil {
		t.Fatal("insert must not carry a modification stamp")
	}

	if updated.LastModified == nil || !updated.LastModified.Equal(at) || *updated.LastModifiedBy != "auditor" {
		t.Fatal("update not stamped")
	}
	if updated.CreatedBy != "seed" {
		t.Fatal("update must not touch the creation stamp")
	}

	if deleted.LastModified != nil && deleted.LastModified.Equal(at) {
		t.Fatal("delete must not be stamped")
	}
}

func TestStampPendingSkipsNilEntity(t *testing.T) {
	uow := &UnitOfWork{now: time.Now}
	uow.stage(change{kind: changeInsert})
	uow.stampPending("auditor") // must not panic
}

func TestMapConstraint(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	if got := mapConstraint(unique); !errors.Is(got, repository.ErrAlreadyExists) {
		t.Fatalf("unique violation mapped to %v", got)
	}

	other := &pgconn.PgError{Code: pgerrcode.SerializationFailure}
	if got := mapConstraint(other); errors.Is(got, repository.ErrAlreadyExists) {
		t.Fatal("non-unique failure must pass through unchanged")
	}

	plain := errors.New("network down")
	if got := mapConstraint(plain); got != plain {
		t.Fatalf("plain error mapped to %v", got)
	}
}
